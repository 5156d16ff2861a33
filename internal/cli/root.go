// Package cli wires the queuectl CLI surface to the control API.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BharathRam125/QueueCTL/controlapi"
	"github.com/BharathRam125/QueueCTL"
	"github.com/BharathRam125/QueueCTL/store"
	"github.com/BharathRam125/QueueCTL/store/sqlite"
)

var dbPathFlag string

var rootCmd = &cobra.Command{
	Use:           "queuectl",
	Short:         "A CLI-operated persistent job queue",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI, resolving the active store once for the
// invoked command and reporting errors on a single `Error:`-prefixed
// line with the exit code assigned to the error kind.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to the queuectl database file (overrides QUEUECTL_DB_PATH)")

	rootCmd.AddCommand(enqueueCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(dlqCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(workerCmd())
	rootCmd.AddCommand(hiddenWorkerRunCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(controlapi.ExitCode(err))
	}
}

// openStore resolves the configured database path and opens+migrates
// the sqlite-backed Store for a single command invocation.
func openStore(ctx context.Context) (store.Store, func(), error) {
	var opts []queuectl.Option
	if dbPathFlag != "" {
		opts = append(opts, queuectl.WithDBPath(dbPathFlag))
	}
	cfg := queuectl.LoadConfig(opts...)

	s, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", queuectl.ErrStoreUnavailable, err)
	}
	if err = s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, nil, fmt.Errorf("%w: %v", queuectl.ErrStoreUnavailable, err)
	}
	return s, func() { _ = s.Close() }, nil
}

func newAPI(ctx context.Context) (*controlapi.API, func(), error) {
	s, closeFn, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return controlapi.New(s), closeFn, nil
}
