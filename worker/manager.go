package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BharathRam125/QueueCTL/id"
)

// WorkerRunSubcommand is the hidden CLI subcommand the Manager re-execs
// itself with to spawn a single worker process. Not part of the
// user-facing command list.
const WorkerRunSubcommand = "__worker-run"

// Manager supervises N worker OS processes, one per logical worker,
// forwarding shutdown signals and aggregating exit errors.
type Manager struct {
	count           int
	dbPath          string
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// NewManager creates a Manager that will spawn count worker processes
// against the database at dbPath. shutdownTimeout bounds how long a
// foreground Start waits for children to exit after SIGTERM before it
// force-kills their process groups with SIGKILL; zero means wait
// indefinitely.
func NewManager(count int, dbPath string, logger *slog.Logger, shutdownTimeout time.Duration) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{count: count, dbPath: dbPath, logger: logger, shutdownTimeout: shutdownTimeout}
}

// Start re-execs the current binary count times with the hidden
// __worker-run subcommand. In foreground mode it blocks, forwarding
// SIGTERM/SIGINT to the child group and returning once every child has
// exited or ctx is cancelled; if children haven't exited within
// shutdownTimeout of that signal, it force-kills their process groups
// with SIGKILL. In background mode it starts the children detached from
// ctx's lifetime and returns immediately; they keep running after Start
// returns and are later reached via `worker stop`, which signals their
// registered pids directly.
func (m *Manager) Start(ctx context.Context, foreground bool) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("queuectl/worker: resolve executable: %w", err)
	}

	if !foreground {
		return m.startDetached(self)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	cmds := make([]*exec.Cmd, 0, m.count)

	for i := 0; i < m.count; i++ {
		workerID := id.NewWorkerID()
		cmd := exec.CommandContext(groupCtx, self, WorkerRunSubcommand, "--id", workerID.String(), "--db", m.dbPath)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		cmds = append(cmds, cmd)

		m.logger.Info("spawning worker process", slog.String("worker_id", workerID.String()), slog.Int("index", i))

		group.Go(func() error {
			if startErr := cmd.Start(); startErr != nil {
				return fmt.Errorf("queuectl/worker: start worker %s: %w", workerID.String(), startErr)
			}
			if waitErr := cmd.Wait(); waitErr != nil {
				return fmt.Errorf("queuectl/worker: worker %s exited: %w", workerID.String(), waitErr)
			}
			return nil
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			m.forwardSignal(cmds, syscall.SIGTERM)
			m.killAfterTimeout(cmds, groupCtx)
		case <-groupCtx.Done():
		}
	}()

	return group.Wait()
}

// killAfterTimeout force-kills every child's process group with SIGKILL
// if it hasn't exited within m.shutdownTimeout of a graceful signal.
// A zero shutdownTimeout disables the forced kill.
func (m *Manager) killAfterTimeout(cmds []*exec.Cmd, groupCtx context.Context) {
	if m.shutdownTimeout <= 0 {
		return
	}
	timer := time.NewTimer(m.shutdownTimeout)
	defer timer.Stop()
	select {
	case <-timer.C:
		m.logger.Warn("shutdown timeout elapsed, force-killing workers", slog.Duration("timeout", m.shutdownTimeout))
		m.forwardSignal(cmds, syscall.SIGKILL)
	case <-groupCtx.Done():
	}
}

// startDetached launches count worker processes with no parent context,
// so they survive past this command's exit, and returns without waiting.
func (m *Manager) startDetached(self string) error {
	for i := 0; i < m.count; i++ {
		workerID := id.NewWorkerID()
		cmd := exec.Command(self, WorkerRunSubcommand, "--id", workerID.String(), "--db", m.dbPath)
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

		if err := cmd.Start(); err != nil {
			return fmt.Errorf("queuectl/worker: start worker %s: %w", workerID.String(), err)
		}
		m.logger.Info("spawned detached worker process",
			slog.String("worker_id", workerID.String()), slog.Int("pid", cmd.Process.Pid), slog.Int("index", i))

		go func() { _ = cmd.Wait() }()
	}
	return nil
}

// forwardSignal delivers sig to every started child's process group.
func (m *Manager) forwardSignal(cmds []*exec.Cmd, sig syscall.Signal) {
	for _, cmd := range cmds {
		if cmd.Process == nil {
			continue
		}
		if err := syscall.Kill(-cmd.Process.Pid, sig); err != nil {
			m.logger.Warn("failed to signal worker process group", slog.Int("pid", cmd.Process.Pid), slog.String("error", err.Error()))
		}
	}
}
