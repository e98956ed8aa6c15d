package springball

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchOptionsRejectsNonYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ball.json")
	if _, err := WatchOptions(path); err == nil {
		t.Error("expected error for a non-YAML path")
	}
}

func TestIsOptionsFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"ball.yaml", true},
		{"dir/ball.YML", true},
		{"ball.json", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := isOptionsFile(tt.path); got != tt.want {
			t.Errorf("isOptionsFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatchOptionsReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ball.yaml")
	if err := os.WriteFile(path, []byte("label: a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := WatchOptions(path)
	if err != nil {
		t.Fatalf("WatchOptions: %v", err)
	}
	defer w.Close()

	// A sibling file must not trigger a reload.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("label: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != w.Path() {
			t.Errorf("event path = %q, want %q", got, w.Path())
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change event")
	}
}

func TestOptionsWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ball.yml")
	w, err := WatchOptions(path)
	if err != nil {
		t.Fatalf("WatchOptions: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := w.Poll(); ok {
		t.Error("Poll after Close reported an event")
	}
}
