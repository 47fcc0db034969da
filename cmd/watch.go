package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mordilloSan/go_logger/logger"
)

// debounce coalesces a burst of filesystem events into one re-listing.
const debounce = 150 * time.Millisecond

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

var errNothingToWatch = errors.New("watch: none of the given paths is a directory")

type watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
}

// newWatcher watches every path that resolves to a directory. Paths that
// cannot be watched are logged and skipped.
func newWatcher(paths []string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	for _, p := range paths {
		dir, err := canonical(p)
		if err != nil {
			logger.Debugf("not watching %s: %v", p, err)
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			logger.Warnf("cannot watch %s: %v", dir, err)
			continue
		}
		logger.Debugf("watching %s", dir)
	}

	if len(fsw.WatchList()) == 0 {
		_ = fsw.Close()
		return nil, errNothingToWatch
	}
	return &watcher{fs: fsw, debounce: debounce}, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// run calls relist once per burst of events until ctx is done.
func (w *watcher) run(ctx context.Context, relist func()) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			logger.Debugf("watch event %s", ev)
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch error: %v", err)
		case <-timer.C:
			relist()
		}
	}
}

// Watch lists paths again after every change to one of them, until ctx
// is cancelled.
func (a *App) Watch(ctx context.Context, paths []string) error {
	w, err := newWatcher(paths)
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			logger.Warnf("closing watcher: %v", err)
		}
	}()

	return w.run(ctx, func() {
		if a.terminal {
			fmt.Fprint(a.stdout, clearScreen)
		} else {
			fmt.Fprintln(a.stdout)
		}
		a.Run(paths)
	})
}
