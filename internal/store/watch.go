package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultWatchDebounce = 250 * time.Millisecond

// Watcher signals when a file-backed source changes on disk. It watches the
// parent directory so editors that replace the file by rename still count.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger

	reloads chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

func NewWatcher(src Source, logger *zap.Logger) (*Watcher, error) {
	p, ok := src.LocalPath()
	if !ok {
		return nil, fmt.Errorf("cannot watch %s source", src.Kind)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: defaultWatchDebounce,
		logger:   logger,
		reloads:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Reloads delivers at most one pending signal at a time. It is closed when
// Run returns.
func (w *Watcher) Reloads() <-chan struct{} { return w.reloads }

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.reloads)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.logger.Debug("people source changed", zap.String("path", w.path))
			select {
			case w.reloads <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch people source", zap.String("path", w.path), zap.Error(err))
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
