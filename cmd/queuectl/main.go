// Command queuectl operates a persistent, local job queue: producers
// enqueue shell-command jobs, worker processes execute them, and
// failures are retried with backoff before landing in a dead-letter
// queue for manual inspection.
package main

import "github.com/BharathRam125/QueueCTL/internal/cli"

func main() {
	cli.Execute()
}
