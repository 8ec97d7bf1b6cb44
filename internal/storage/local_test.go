package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jlindgren/wayfarer/internal/domain"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()

	tmpDir := t.TempDir()
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })

	store, err := NewLocalStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestReadAbsentToken(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if token != "" {
		t.Errorf("Expected empty token, got %q", token)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("tok_abc123"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	token, err := store.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if token != "tok_abc123" {
		t.Errorf("Expected token tok_abc123, got %q", token)
	}
}

func TestWriteOverwrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("first"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("second"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	token, err := store.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if token != "second" {
		t.Errorf("Expected token second, got %q", token)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("tok_abc123"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	token, err := store.Read()
	if err != nil {
		t.Fatalf("Read after clear failed: %v", err)
	}
	if token != "" {
		t.Errorf("Expected empty token after clear, got %q", token)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Second clear failed: %v", err)
	}
}

func TestCorruptFileIsStorageUnavailable(t *testing.T) {
	store := newTestStore(t)

	if err := os.WriteFile(store.path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	_, err := store.Read()
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("Expected ErrStorageUnavailable, got %v", err)
	}
}

func TestFilePermissions(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("tok_abc123"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	dirInfo, err := os.Stat(filepath.Dir(store.path))
	if err != nil {
		t.Fatalf("Stat dir failed: %v", err)
	}
	if dirInfo.Mode().Perm() != 0700 {
		t.Errorf("Expected dir mode 0700, got %v", dirInfo.Mode().Perm())
	}
}
