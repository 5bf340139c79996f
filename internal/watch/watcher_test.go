package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()

	builds := make(chan struct{}, 16)
	w := New([]string{dir}, 50*time.Millisecond, func(ctx context.Context) error {
		builds <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, 0) }()

	// Initial build fires before the event loop starts.
	select {
	case <-builds:
	case <-time.After(3 * time.Second):
		t.Fatal("initial build did not run")
	}

	if err := os.WriteFile(filepath.Join(dir, "feature_gate.rs"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-builds:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild after file change did not run")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on shutdown: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestWatcherNothingToWatch(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing")}, time.Millisecond, func(ctx context.Context) error {
		return nil
	})
	if err := w.Run(context.Background(), 0); err != ErrNothingToWatch {
		t.Fatalf("expected ErrNothingToWatch, got %v", err)
	}
}

func TestWatcherFilePathWatchesParent(t *testing.T) {
	dir := t.TempDir()
	gate := filepath.Join(dir, "feature_gate.rs")
	if err := os.WriteFile(gate, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	builds := make(chan struct{}, 16)
	w := New([]string{gate}, 50*time.Millisecond, func(ctx context.Context) error {
		builds <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx, 0) }()

	<-builds // initial

	// Replace-on-save: remove and recreate the file.
	if err := os.Remove(gate); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gate, []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-builds:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild after file replacement did not run")
	}
}
