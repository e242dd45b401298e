package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a session when a caption file of its media item is
// created, changed or removed. It watches the directories of the media item
// loaded when the watcher was created.
type Watcher struct {
	session *Session
	fsw     *fsnotify.Watcher
	logger  *zap.SugaredLogger
	dirs    []string
}

func NewWatcher(session *Session, logger *zap.SugaredLogger) (*Watcher, error) {
	mediaPath := session.MediaPath()
	if mediaPath == "" {
		return nil, errors.New("no media loaded")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		session: session,
		fsw:     fsw,
		logger:  logger,
		dirs:    session.WatchDirs(),
	}

	// the media directory is always watched so that a search directory
	// created later (subs/) is noticed
	watched := append([]string{filepath.Dir(mediaPath)}, w.dirs...)
	for _, dir := range watched {
		if err := w.add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) add(dir string) error {
	dir = filepath.Clean(dir)
	if slices.Contains(w.fsw.WatchList(), dir) {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Debugw("Watching for subtitle changes", "dir", dir)
	return nil
}

// Watch processes file events until ctx is done.
func (w *Watcher) Watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("File watcher error", "error", err)
		}
	}
}

// reports whether the event caused a reload
func (w *Watcher) handleEvent(ev fsnotify.Event) bool {
	path := filepath.Clean(ev.Name)

	if ev.Has(fsnotify.Create) && slices.Contains(w.dirs, path) {
		if err := w.add(path); err != nil {
			w.logger.Warnw("Failed to watch subtitle directory", "dir", path, "error", err)
		}
		// files may have landed before the watch was added
		w.session.Reload()
		return true
	}

	if !w.session.Affects(path) {
		return false
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	w.logger.Debugw("Subtitle file changed", "path", path, "op", ev.Op.String())
	w.session.Reload()
	return true
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
