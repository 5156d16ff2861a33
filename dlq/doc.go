// Package dlq provides dead-letter inspection and replay for jobs that
// have exhausted their retry budget.
//
// There is no separate DLQ storage: a job that exhausts MaxRetries
// transitions to job.StateDead and stays there until an operator calls
// [Service.Retry], which resets attempts to zero and moves the same job
// back to pending.
//
//	svc := dlq.NewService(store)
//	dead, _ := svc.List(ctx, job.ListOpts{Limit: 50})
//	svc.Retry(ctx, dead[0].ID)
package dlq
