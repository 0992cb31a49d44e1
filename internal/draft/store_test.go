package draft

import (
	"path/filepath"
	"testing"
)

// TestSQLiteStoreRoundTrip verifies set, get, overwrite, and remove against a
// real SQLite file.
func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, found, err := store.Get("missing"); err != nil || found {
		t.Errorf("get missing = found=%v err=%v, want absent", found, err)
	}

	if err := store.Set("k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, found, err := store.Get("k"); err != nil || !found || v != "v1" {
		t.Errorf("get = (%q, %v, %v), want (v1, true, nil)", v, found, err)
	}

	if err := store.Set("k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := store.Get("k"); v != "v2" {
		t.Errorf("after overwrite = %q, want v2", v)
	}

	if err := store.Remove("k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, found, _ := store.Get("k"); found {
		t.Error("key still present after remove")
	}

	// Removing an absent key is fine.
	if err := store.Remove("k"); err != nil {
		t.Errorf("remove absent: %v", err)
	}
}

// TestSQLiteStoreCreatesDir verifies nested paths are created on open.
func TestSQLiteStoreCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "drafts.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("open with nested dir: %v", err)
	}
	store.Close()
}
