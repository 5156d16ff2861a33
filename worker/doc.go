// Package worker implements the job-processing worker and its process
// supervisor.
//
// Worker is a single poll/claim/execute loop: it registers itself with
// the store, repeatedly claims the next eligible job at a rate-limited
// pace, runs it through a middleware chain (recover, tracing, metrics,
// logging, timeout), and reports success or failure back to the store
// before unregistering on shutdown.
//
// Manager provides multi-process parallelism: it
// re-execs the queuectl binary N times under a hidden __worker-run
// subcommand, one OS process per worker, and supervises them with an
// errgroup.Group, forwarding SIGTERM/SIGINT to each child's process
// group.
package worker
