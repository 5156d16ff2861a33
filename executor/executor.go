// Package executor runs a job's shell command and reports the outcome.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"syscall"
)

// stderrTailLimit bounds how much of a failing command's stderr is kept
// in the reported error, so a noisy command can't blow up job rows.
const stderrTailLimit = 4096

// JobExecutor runs a job command through the system shell.
type JobExecutor struct{}

// New creates a JobExecutor.
func New() *JobExecutor {
	return &JobExecutor{}
}

// Execute runs command via `sh -c`, honoring ctx's deadline for
// per-job timeouts: when ctx is done the shell's whole process group is
// killed. On failure the returned error includes the exit status and a
// tail of stderr.
func (e *JobExecutor) Execute(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("command timed out: %w", ctx.Err())
		}
		tail := stderr.Bytes()
		if len(tail) > stderrTailLimit {
			tail = tail[len(tail)-stderrTailLimit:]
		}
		if len(tail) > 0 {
			return fmt.Errorf("%w: %s", err, bytes.TrimSpace(tail))
		}
		return err
	}
	return nil
}
