package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BharathRam125/QueueCTL/executor"
	"github.com/BharathRam125/QueueCTL/id"
	"github.com/BharathRam125/QueueCTL"
	"github.com/BharathRam125/QueueCTL/worker"
)

func workerCmd() *cobra.Command {
	w := &cobra.Command{
		Use:   "worker",
		Short: "Manage worker processes",
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start N worker processes (with --foreground, supervise them until SIGTERM/SIGINT)",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count < 1 {
				count = 1
			}
			foreground, _ := cmd.Flags().GetBool("foreground")

			var opts []queuectl.Option
			if dbPathFlag != "" {
				opts = append(opts, queuectl.WithDBPath(dbPathFlag))
			}
			cfg := queuectl.LoadConfig(opts...)

			manager := worker.NewManager(count, cfg.DBPath, slog.Default(), cfg.ShutdownTimeout)
			if foreground {
				fmt.Printf("Starting %d worker(s) in the foreground. Press Ctrl+C to shut down gracefully.\n", count)
				return manager.Start(cmd.Context(), true)
			}
			if err := manager.Start(cmd.Context(), false); err != nil {
				return err
			}
			fmt.Printf("Started %d worker(s) in the background.\n", count)
			return nil
		},
	}
	start.Flags().Int("count", 1, "number of worker processes to start")
	start.Flags().Bool("foreground", false, "block and supervise the workers instead of detaching")

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Send SIGTERM to every registered worker process",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			api, closeFn, err := newAPI(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			workers, err := api.ListWorkers(ctx)
			if err != nil {
				return err
			}
			for _, reg := range workers {
				if sigErr := syscall.Kill(reg.PID, syscall.SIGTERM); sigErr != nil {
					fmt.Fprintf(os.Stderr, "failed to signal worker %s (pid %d): %v\n", reg.WorkerID, reg.PID, sigErr)
					continue
				}
				fmt.Printf("Sent SIGTERM to worker %s (pid %d)\n", reg.WorkerID, reg.PID)
			}
			return nil
		},
	}

	w.AddCommand(start)
	w.AddCommand(stop)
	return w
}

// hiddenWorkerRunCmd runs a single worker loop in this process. It is
// invoked only by worker.Manager's re-exec; it is hidden from --help
// and not part of the documented CLI surface.
func hiddenWorkerRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    worker.WorkerRunSubcommand,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			workerIDStr, _ := cmd.Flags().GetString("id")

			var opts []queuectl.Option
			if dbPathFlag != "" {
				opts = append(opts, queuectl.WithDBPath(dbPathFlag))
			}
			cfg := queuectl.LoadConfig(opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			s, closeFn, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var workerOpts []worker.Option
			if workerIDStr != "" {
				parsed, parseErr := id.ParseWorkerID(workerIDStr)
				if parseErr == nil {
					workerOpts = append(workerOpts, worker.WithID(parsed))
				}
			}

			w := worker.New(s, executor.New(), cfg.PollInterval, cfg.PollBurst, workerOpts...)
			return w.Run(ctx)
		},
	}
	cmd.Flags().String("id", "", "worker id assigned by the manager")
	return cmd
}
