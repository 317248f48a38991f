package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func newTestDataFile(t *testing.T) *DataFile {
	t.Helper()
	df, err := NewDataFile(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("Failed to create data file: %v", err)
	}
	return df
}

// TestLoadAbsent verifies that a never-written file reads as uninitialized
func TestLoadAbsent(t *testing.T) {
	df := newTestDataFile(t)

	if _, ok := df.Load(); ok {
		t.Error("Expected absent file to load as uninitialized")
	}
}

// TestSaveLoadRoundTrip verifies byte-for-byte persistence
func TestSaveLoadRoundTrip(t *testing.T) {
	df := newTestDataFile(t)

	doc := []byte(`{"blogs":[],"reminders":[{"id":"r1","text":"buy milk","completed":false}]}`)
	if err := df.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, ok := df.Load()
	if !ok {
		t.Fatal("Expected initialized after save")
	}
	if !bytes.Equal(raw, doc) {
		t.Errorf("Round trip mismatch: got %s, want %s", raw, doc)
	}
}

// TestLoadIdempotent verifies repeated loads return identical bytes
func TestLoadIdempotent(t *testing.T) {
	df := newTestDataFile(t)

	doc := []byte(`{"apps":[{"id":"a1","name":"Gallery"}]}`)
	if err := df.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	first, ok := df.Load()
	if !ok {
		t.Fatal("Expected initialized after save")
	}
	second, ok := df.Load()
	if !ok {
		t.Fatal("Expected initialized on second load")
	}
	if !bytes.Equal(first, second) {
		t.Error("Expected identical bytes from consecutive loads")
	}
}

// TestCorruptFileTreatedAsAbsent verifies corrupt JSON reads as "no data"
func TestCorruptFileTreatedAsAbsent(t *testing.T) {
	df := newTestDataFile(t)

	if err := os.WriteFile(df.Path(), []byte(`{"blogs": [truncated`), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, ok := df.Load(); ok {
		t.Error("Expected corrupt file to load as uninitialized")
	}

	// A save recovers the slot
	if err := df.Save([]byte(`{"blogs":[]}`)); err != nil {
		t.Fatalf("Save over corrupt file failed: %v", err)
	}
	if _, ok := df.Load(); !ok {
		t.Error("Expected initialized after recovery save")
	}
}

// TestSaveOverwritesWholesale verifies the last write fully replaces prior state
func TestSaveOverwritesWholesale(t *testing.T) {
	df := newTestDataFile(t)

	if err := df.Save([]byte(`{"blogs":[{"id":"b1"}],"photos":[{"id":"p1"}]}`)); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	second := []byte(`{"blogs":[]}`)
	if err := df.Save(second); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	raw, ok := df.Load()
	if !ok {
		t.Fatal("Expected initialized")
	}
	if !bytes.Equal(raw, second) {
		t.Errorf("Expected wholesale overwrite, got %s", raw)
	}
}
