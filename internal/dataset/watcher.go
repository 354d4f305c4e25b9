package dataset

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher observes the dataset file's directory and fires onChange whenever
// the file is written, replaced, or removed. Uploads replace the whole file,
// so watching the directory rather than the file survives rename-over.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	log      zerolog.Logger
	onChange func()
}

func NewWatcher(path string, log zerolog.Logger, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{fsw: fsw, path: path, log: log, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled, dispatching change notifications.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("dataset change detected")
			w.onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("dataset watcher error")
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
