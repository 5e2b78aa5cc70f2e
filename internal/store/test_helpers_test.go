package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/relmap/internal/testutil"
)

// createTestStore creates a new store in a temp directory with sequential
// revision IDs rev-1, rev-2, ...
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.SequentialIDGenerator("rev", 16)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRevision creates an unrecorded revision with one table summary.
func createTestRevision(fingerprint, dialect string) Revision {
	return Revision{
		Fingerprint: fingerprint,
		Dialect:     dialect,
		DDL:         "CREATE TABLE \"T\" (\n    \"A\" INTEGER NOT NULL\n);\n",
		Tables:      []TableSummary{{Name: "T", Checks: 0}},
	}
}
