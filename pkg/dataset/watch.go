package dataset

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/bensonglobal/meridian/pkg/errors"
)

// settle is how long a file must stay quiet before it is reloaded.
const settle = 200 * time.Millisecond

// Watch reloads path whenever it changes and passes each valid dataset to fn.
// Invalid files are logged and skipped; the previous dataset stays in effect.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *log.Logger, fn func(*Dataset)) error {
	if logger == nil {
		logger = log.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer w.Close()

	// Watch the directory: editors often replace files by rename.
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", path)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "watch %s", path)
	}

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("dataset watcher error", "err", err)
		case <-timer.C:
			d, err := Load(abs)
			if err != nil {
				logger.Warn("dataset reload failed", "path", path, "err", err)
				continue
			}
			logger.Info("dataset reloaded", "path", path, "hubs", len(d.Hubs))
			fn(d)
		}
	}
}
