// Package store defines the aggregate persistence interface.
//
// [Store] composes job.Store with this package's ConfigStore and
// WorkerStore. A single backend (store/sqlite, a bun.DB over an embedded
// SQLite file) implements all of them.
//
// # Usage
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
package store
