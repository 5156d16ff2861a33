package id_test

import (
	"strings"
	"testing"

	"github.com/BharathRam125/QueueCTL/id"
)

func TestNewWorkerID_HasPrefix(t *testing.T) {
	got := id.NewWorkerID().String()
	if !strings.HasPrefix(got, "wkr_") {
		t.Errorf("expected prefix %q, got %q", "wkr_", got)
	}
}

func TestNewWorkerID_Unique(t *testing.T) {
	a := id.NewWorkerID()
	b := id.NewWorkerID()
	if a.String() == b.String() {
		t.Errorf("two consecutive NewWorkerID() calls returned the same ID: %q", a.String())
	}
}

func TestParseWorkerID_RoundTrip(t *testing.T) {
	original := id.NewWorkerID()
	parsed, err := id.ParseWorkerID(original.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
	}
}

func TestParseWorkerID_RejectsEmpty(t *testing.T) {
	if _, err := id.ParseWorkerID(""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestParseWorkerID_RejectsWrongPrefix(t *testing.T) {
	if _, err := id.ParseWorkerID("job_01h2xcejqtf2nbrexx3vqjhp41"); err == nil {
		t.Error("expected error for non-worker prefix")
	}
}

func TestNilWorkerID(t *testing.T) {
	var i id.WorkerID
	if !i.IsNil() {
		t.Error("zero-value WorkerID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewWorkerID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.WorkerID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}
}

func TestValueScan(t *testing.T) {
	original := id.NewWorkerID()
	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned id.WorkerID
	if scanErr := scanned.Scan(val); scanErr != nil {
		t.Fatalf("Scan failed: %v", scanErr)
	}
	if scanned.String() != original.String() {
		t.Errorf("mismatch: %q != %q", scanned.String(), original.String())
	}
}
