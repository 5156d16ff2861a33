package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BharathRam125/QueueCTL/job"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			stateFlag, _ := cmd.Flags().GetString("state")
			limit, _ := cmd.Flags().GetInt("limit")

			state := job.StatePending
			if stateFlag != "" {
				state = job.State(stateFlag)
			}

			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			jobs, err := api.List(ctx, job.ListOpts{State: state, Limit: limit})
			if err != nil {
				return err
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			fmt.Println("ID\tSTATE\t\tATTEMPTS\tCOMMAND")
			for _, j := range jobs {
				fmt.Printf("%s\t%s\t\t%d\t\t%s\n", j.ID, j.State, j.Attempts, j.Command)
			}
			return nil
		},
	}
	cmd.Flags().String("state", "", "filter by state (pending, processing, completed, failed, dead)")
	cmd.Flags().Int("limit", 0, "maximum number of jobs to return (0 = no limit)")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a summary of job and worker counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			counts, err := api.Counts(ctx)
			if err != nil {
				return err
			}

			fmt.Println("--- Job Queue Status ---")
			for _, state := range []job.State{job.StatePending, job.StateProcessing, job.StateCompleted, job.StateFailed, job.StateDead} {
				fmt.Printf("%s=%d\n", state, counts[state])
			}

			workers, err := api.ListWorkers(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("\n--- Workers (%d) ---\n", len(workers))
			for _, w := range workers {
				fmt.Printf("%s\tpid=%d\tstarted=%s\n", w.WorkerID, w.PID, w.StartedAt.Format("2006-01-02T15:04:05Z"))
			}
			return nil
		},
	}
}
