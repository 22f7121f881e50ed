package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay collapses the bursts of events editors produce on save.
const debounceDelay = 100 * time.Millisecond

// fileWatcher reports changes of a single file. It watches the parent directory
// so that atomic saves, which replace the file, are seen as well.
type fileWatcher struct {
	path    string
	delay   time.Duration
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

func newFileWatcher(path string, logger *zap.Logger) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	return &fileWatcher{
		path:    path,
		delay:   debounceDelay,
		watcher: watcher,
		logger:  logger,
	}, nil
}

// Run calls onChange after every debounced change of the file until ctx is done.
// onChange runs on the calling goroutine.
func (w *fileWatcher) Run(ctx context.Context, onChange func()) error {
	changes := make(chan struct{}, 1)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.delay, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})

		case <-changes:
			w.logger.Debug("file changed", zap.String("file", w.path))
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}
