package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/bookgen/internal/logfields"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
)

// ErrNothingToWatch indicates none of the configured watch paths exist.
var ErrNothingToWatch = errors.New("no watch paths present")

// BuildFunc regenerates the book. Failures are logged and counted but do not
// stop the watcher; the next change triggers another attempt.
type BuildFunc func(ctx context.Context) error

// Watcher rebuilds the book when any of the watched paths change. File events
// are debounced so editor save bursts and bulk checkouts collapse into one
// rebuild.
type Watcher struct {
	paths    []string
	debounce time.Duration
	build    BuildFunc
}

// New creates a watcher over the given paths. Directory paths are watched
// non-recursively; file paths are watched via their parent directory, which
// survives editors that replace the file on save.
func New(paths []string, debounce time.Duration, build BuildFunc) *Watcher {
	return &Watcher{paths: paths, debounce: debounce, build: build}
}

// Run performs an initial build, then blocks rebuilding on changes until ctx
// is cancelled. When resync is positive a scheduled rebuild fires at that
// interval regardless of file events.
func (w *Watcher) Run(ctx context.Context, resync time.Duration) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	watched := 0
	for _, p := range w.paths {
		info, err := os.Stat(p)
		if err != nil {
			slog.Warn("Watch path not present, skipping", logfields.Path(p))
			continue
		}
		target := p
		if !info.IsDir() {
			target = filepath.Dir(p)
		}
		if err := fsw.Add(target); err != nil {
			return fmt.Errorf("failed to watch %s: %w", target, err)
		}
		watched++
		slog.Debug("Watching path", logfields.Path(target))
	}
	if watched == 0 {
		return ErrNothingToWatch
	}

	rebuild := make(chan struct{}, 1)

	if resync > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(gocron.DurationJob(resync), gocron.NewTask(func() {
			requestRebuild(rebuild)
		}))
		if err != nil {
			return fmt.Errorf("failed to schedule resync job: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("Periodic resync enabled", slog.Duration("interval", resync))
	}

	w.runBuild(ctx)

	debounce := time.NewTimer(w.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			debounce.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		case <-debounce.C:
			requestRebuild(rebuild)
		case <-rebuild:
			w.runBuild(ctx)
		}
	}
}

// requestRebuild coalesces: a pending rebuild request absorbs new ones.
func requestRebuild(rebuild chan struct{}) {
	select {
	case rebuild <- struct{}{}:
	default:
	}
}

func (w *Watcher) runBuild(ctx context.Context) {
	runID := uuid.NewString()
	start := time.Now()
	slog.Info("Rebuilding book", logfields.RunID(runID))

	if err := w.build(ctx); err != nil {
		metrics.BuildsFailedTotal.Inc()
		slog.Error("Rebuild failed", logfields.RunID(runID), logfields.Error(err))
		return
	}
	metrics.BuildsTotal.Inc()
	slog.Info("Rebuild complete", logfields.RunID(runID), slog.Duration("elapsed", time.Since(start)))
}
