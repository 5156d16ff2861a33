// Package queuectl is a small, durable, process-based job queue.
//
// Jobs are shell commands persisted in an embedded SQLite database. A
// WorkerManager spawns one OS process per worker; each worker claims a
// job with an exclusive transaction, runs it, and reports success or
// failure back to the store, which drives retry/backoff and dead-letter
// transitions.
//
// # Quick Start
//
//	queuectl enqueue '{"id":"build-1","command":"make build"}'
//	queuectl worker start --count 3
//	queuectl status
package queuectl
