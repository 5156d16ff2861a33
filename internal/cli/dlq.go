package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BharathRam125/QueueCTL/job"
)

func dlqCmd() *cobra.Command {
	dlq := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and retry dead-letter jobs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List jobs in the dead-letter queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			jobs, err := api.DLQList(ctx, job.ListOpts{})
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("Dead letter queue is empty.")
				return nil
			}
			fmt.Println("ID\tATTEMPTS\tLAST_ERROR")
			for _, j := range jobs {
				fmt.Printf("%s\t%d\t\t%s\n", j.ID, j.Attempts, j.LastError)
			}
			return nil
		},
	}

	retry := &cobra.Command{
		Use:   "retry <job-id>",
		Short: "Reset a dead job back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if err = api.DLQRetry(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Job %s moved from DLQ to pending.\n", args[0])
			return nil
		},
	}

	dlq.AddCommand(list)
	dlq.AddCommand(retry)
	return dlq
}
