package runstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSave(t *testing.T) {
	root := t.TempDir()
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s := New(root, WithNow(func() time.Time { return fixed }))

	id := NewID()
	report := map[string]any{"id": id, "status": "ok"}
	path, err := s.Save("build", id, report)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	wantName := "20260314T092653Z_build_" + id[:8] + ".json"
	if filepath.Base(path) != wantName {
		t.Fatalf("unexpected artifact name: %q, want %q", filepath.Base(path), wantName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back["id"] != id || back["status"] != "ok" {
		t.Fatalf("unexpected report: %v", back)
	}
}

func TestSaveCustomDir(t *testing.T) {
	root := t.TempDir()
	s := New(root, WithDir("reports"))

	path, err := s.Save("plot", "abc", struct{}{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(root, "reports") {
		t.Fatalf("unexpected dir: %q", filepath.Dir(path))
	}
}

func TestSaveEmptyKind(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Save("", "id", struct{}{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewIDUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Fatalf("expected unique ids")
	}
}
