package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/dosio/internal/catalog"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// beginTestRun inserts a running run with the current catalog.
func beginTestRun(t *testing.T, s *Store, id string) {
	t.Helper()
	err := s.BeginRun(context.Background(), Run{
		ID:                 id,
		Scenario:           "test",
		CatalogFingerprint: catalog.Fingerprint(),
		CatalogSize:        catalog.Len(),
	})
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
}
