package queuectl

import "errors"

var (
	// Validation errors.
	ErrEmptyCommand  = errors.New("queuectl: job command must not be empty")
	ErrEmptyJobID    = errors.New("queuectl: job id must not be empty")
	ErrInvalidConfig = errors.New("queuectl: invalid config key or value")

	// Conflict errors.
	ErrJobAlreadyExists = errors.New("queuectl: job already exists")

	// Not found errors.
	ErrJobNotFound    = errors.New("queuectl: job not found")
	ErrConfigNotFound = errors.New("queuectl: config key not found")
	ErrWorkerNotFound = errors.New("queuectl: worker not found")

	// State errors.
	ErrInvalidTransition = errors.New("queuectl: invalid job state transition")
	ErrNotDead           = errors.New("queuectl: job is not in the dead state")

	// Store errors.
	ErrStoreBusy        = errors.New("queuectl: store busy")
	ErrStoreCorrupt     = errors.New("queuectl: store corrupt")
	ErrStoreUnavailable = errors.New("queuectl: store unavailable")

	// Execution errors.
	ErrExecutionFailed = errors.New("queuectl: job execution failed")
)
