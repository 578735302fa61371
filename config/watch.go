package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"hotkeyd/log"
)

// settle absorbs the burst of events editors emit for one save.
const settle = 150 * time.Millisecond

// Watch reloads path whenever it changes and hands the result to fn: a new
// config, or the error that stopped it from loading. It watches the parent
// directory so editors that replace the file by rename are seen. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	log.Infof("watching %s", path)

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
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("config watcher: %v", err)
		case <-timer.C:
			cfg, err := Load(path)
			fn(cfg, err)
		}
	}
}
