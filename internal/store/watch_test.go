package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_SignalsOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := writeFile(t, dir, "people.json", samplePeople)

	w, err := NewWatcher(mustSource(t, p), nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.debounce = 20 * time.Millisecond
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Unrelated files in the same directory are ignored.
	writeFile(t, dir, "other.json", `[]`)
	select {
	case <-w.Reloads():
		t.Fatalf("unexpected reload for unrelated file")
	case <-time.After(150 * time.Millisecond):
	}

	if err := os.WriteFile(p, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	select {
	case <-w.Reloads():
	case <-time.After(3 * time.Second):
		t.Fatalf("expected reload signal after write")
	}
}

func TestWatcher_RejectsRemoteSources(t *testing.T) {
	t.Parallel()

	if _, err := NewWatcher(mustSource(t, "https://example.com/people.json"), nil); err == nil {
		t.Fatalf("expected error watching an http source")
	}
}

func TestWatcher_RunEndsOnClose(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "people.json", samplePeople)
	w, err := NewWatcher(mustSource(t, filepath.Clean(p)), nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	_ = w.Close()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after Close")
	}
	if _, ok := <-w.Reloads(); ok {
		t.Fatalf("expected reloads channel to be closed")
	}
}
