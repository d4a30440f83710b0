package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watch reloads filename whenever it changes on disk and hands the freshly
// loaded value to onChange. newTarget supplies the defaults each reload starts
// from. Invalid files are logged and skipped. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file via rename are still picked up.
func Watch[T any](ctx context.Context, filename string, newTarget func() *T, onChange func(*T)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}

	var (
		timer  *time.Timer
		fireCh <-chan time.Time
	)
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			fireCh = timer.C
			return
		}
		timer.Reset(watchDebounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fireCh:
			target := newTarget()
			if err := Load(abs, target); err != nil {
				slog.Warn("config watcher: reload failed",
					slog.String("path", abs), slog.String("error", err.Error()))
				continue
			}
			onChange(target)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("config watcher: error", slog.String("error", werr.Error()))
		}
	}
}
