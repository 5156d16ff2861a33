// Package job defines the job entity, its state machine, and the Store
// interface a backend must satisfy.
//
// A Job is a shell command plus retry bookkeeping. It progresses through
// a closed five-state machine:
//
//	pending → processing → completed
//	pending → processing → failed → (backoff elapses) → processing → ...
//	pending → processing → ... → processing → dead (retry budget exhausted)
//
// Fields of note:
//   - Attempts / MaxRetries: controls the retry budget
//   - RunAt: earliest time the job becomes eligible for claimNextJob
//   - Timeout: per-job execution deadline (zero = unlimited)
package job
