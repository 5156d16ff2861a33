package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BharathRam125/QueueCTL/job"
)

type enqueueRequest struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	// MaxRetries is a pointer so an omitted key leaves it nil ("use the
	// store's configured default") instead of colliding with an explicit
	// max_retries: 0 ("no retries, die on first failure").
	MaxRetries *int  `json:"max_retries"`
	TimeoutMs  int64 `json:"timeout_ms"`
}

func enqueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue <json>",
		Short: "Add a job to the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req enqueueRequest
			if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
				return fmt.Errorf("invalid job JSON: %w", err)
			}

			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var opts []job.Option
			if req.MaxRetries != nil {
				opts = append(opts, job.WithMaxRetries(*req.MaxRetries))
			}
			if req.ID != "" {
				opts = append(opts, job.WithID(req.ID))
			}
			if req.TimeoutMs > 0 {
				opts = append(opts, job.WithTimeout(time.Duration(req.TimeoutMs)*time.Millisecond))
			}
			spec := job.NewSpec(req.Command, opts...)

			j, err := api.Enqueue(ctx, spec)
			if err != nil {
				return err
			}

			fmt.Printf("Job %s enqueued: %s\n", j.ID, j.Command)
			return nil
		},
	}
}
