package job

import "time"

// Spec describes a job at enqueue time, before the control API's
// Enqueue assigns it CreatedAt/UpdatedAt and its initial Pending state.
type Spec struct {
	// ID is the caller-supplied job id. Empty means Enqueue generates a
	// random one.
	ID string

	// Command is the shell command to run. Must not be empty.
	Command string

	// MaxRetries caps retry attempts before the job moves to Dead. Nil
	// means "use the store's configured default"; an explicit 0 is a
	// valid retry budget (the first failure goes straight to Dead) and
	// must survive as such, not collapse into "unset".
	MaxRetries *int

	// Timeout bounds a single execution attempt. Zero means no limit,
	// per spec's default.
	Timeout time.Duration

	// RunAt schedules first eligibility. Zero means immediate.
	RunAt time.Time
}

// DefaultSpec returns a Spec with zero values, letting Enqueue apply
// the store's configured max_retries default at enqueue time.
func DefaultSpec() Spec {
	return Spec{}
}

// Option is a functional option for building a Spec.
type Option func(*Spec)

// WithID sets an explicit job id. Omit to let Enqueue generate one.
func WithID(id string) Option {
	return func(s *Spec) { s.ID = id }
}

// WithMaxRetries sets the maximum number of retry attempts. n may be 0
// to mean "no retries, die on first failure".
func WithMaxRetries(n int) Option {
	return func(s *Spec) { s.MaxRetries = &n }
}

// WithTimeout sets the maximum execution duration for a single attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *Spec) { s.Timeout = d }
}

// WithRunAt schedules the job for execution at a specific time.
func WithRunAt(t time.Time) Option {
	return func(s *Spec) { s.RunAt = t }
}

// NewSpec builds a Spec for the given command, applying options.
func NewSpec(command string, opts ...Option) Spec {
	s := DefaultSpec()
	s.Command = command
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
