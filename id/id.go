// Package id provides a TypeID-based identifier for worker processes.
// Only WorkerID uses TypeID here: it is always system-generated, so a
// K-sortable, prefix-qualified ("wkr_...") identifier is a natural fit.
// Job IDs, by contrast, must accept arbitrary caller-supplied strings
// (the enqueue command takes a plain "id" field), so they remain
// plain strings in the job package rather than TypeIDs.
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// workerPrefix is the TypeID prefix for worker identifiers.
const workerPrefix = "wkr"

// WorkerID is a type-prefixed, K-sortable, globally unique identifier
// for a worker process, in the format "wkr_<suffix>".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type WorkerID struct {
	inner typeid.TypeID
	valid bool
}

// NilWorkerID is the zero-value WorkerID.
var NilWorkerID WorkerID

// NewWorkerID generates a new unique worker ID.
func NewWorkerID() WorkerID {
	tid, err := typeid.Generate(workerPrefix)
	if err != nil {
		panic(fmt.Sprintf("id: generate worker id: %v", err))
	}
	return WorkerID{inner: tid, valid: true}
}

// ParseWorkerID parses a "wkr_..." string into a WorkerID.
func ParseWorkerID(s string) (WorkerID, error) {
	if s == "" {
		return NilWorkerID, fmt.Errorf("id: parse %q: empty string", s)
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return NilWorkerID, fmt.Errorf("id: parse %q: %w", s, err)
	}
	if tid.Prefix() != workerPrefix {
		return NilWorkerID, fmt.Errorf("id: expected prefix %q, got %q", workerPrefix, tid.Prefix())
	}
	return WorkerID{inner: tid, valid: true}, nil
}

// String returns the "wkr_<suffix>" representation. Empty for the nil ID.
func (i WorkerID) String() string {
	if !i.valid {
		return ""
	}
	return i.inner.String()
}

// IsNil reports whether this ID is the zero value.
func (i WorkerID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i WorkerID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}
	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *WorkerID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = NilWorkerID
		return nil
	}
	parsed, err := ParseWorkerID(string(data))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Value implements driver.Valuer for database storage.
func (i WorkerID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}
	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *WorkerID) Scan(src any) error {
	if src == nil {
		*i = NilWorkerID
		return nil
	}
	switch v := src.(type) {
	case string:
		if v == "" {
			*i = NilWorkerID
			return nil
		}
		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = NilWorkerID
			return nil
		}
		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into WorkerID", src)
	}
}
