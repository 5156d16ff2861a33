// Package sqlite implements store.Store using the uptrace/bun ORM over
// an embedded SQLite database file. This is queuectl's sole backend: a
// single-file store with no external services, matching the CLI's
// single-host deployment model.
//
//	import "github.com/BharathRam125/QueueCTL/store/sqlite"
//
//	s, err := sqlite.Open("./queue.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := s.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// ClaimNextJob uses SQLite's BEGIN IMMEDIATE to serialize claims across
// concurrent worker processes sharing the same file, since SQLite has no
// FOR UPDATE SKIP LOCKED.
package sqlite
