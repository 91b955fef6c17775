package storage

import (
	"path/filepath"
	"testing"
)

func TestPromptFingerprint(t *testing.T) {
	a := PromptFingerprint("a landing page for a bakery")
	b := PromptFingerprint("a landing page for a bakery")
	c := PromptFingerprint("a landing page for a florist")

	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(a))
	}
	if a != b {
		t.Error("same prompt must produce the same fingerprint")
	}
	if a == c {
		t.Error("different prompts must produce different fingerprints")
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}
