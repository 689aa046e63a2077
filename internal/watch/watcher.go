// Package watch notifies about changes to a fixed set of files, such as
// subgraph schemas and the supergraph configuration.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const DefaultDebounce = 100 * time.Millisecond

var ErrClosed = errors.New("watcher channel closed")

// FileWatcher watches the directories of a set of files and reports
// changes to those files only. Bursts of events are coalesced into one
// callback per debounce interval. Callbacks run on the Start goroutine, one
// at a time.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	exclude  []string
	debounce time.Duration
	onChange func(paths []string)
	logger   zerolog.Logger
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

func WithDebounce(d time.Duration) Option {
	return func(fw *FileWatcher) {
		fw.debounce = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(fw *FileWatcher) {
		fw.logger = logger
	}
}

// WithExclude ignores files whose base name matches one of the patterns.
func WithExclude(patterns []string) Option {
	return func(fw *FileWatcher) {
		fw.exclude = patterns
	}
}

// NewFileWatcher creates a watcher for files. onChange receives the sorted
// set of changed files.
func NewFileWatcher(files []string, onChange func(paths []string), opts ...Option) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		files:    map[string]bool{},
		debounce: DefaultDebounce,
		onChange: onChange,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(fw)
	}

	dirs := map[string]bool{}
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", file, err)
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	// A direct watch is lost when an editor replaces the file on save.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	return fw, nil
}

// Start begins watching for file changes and blocks until ctx is done.
// onChange is called from this goroutine, so a slow callback delays the
// next batch instead of overlapping it.
func (fw *FileWatcher) Start(ctx context.Context) error {
	return fw.run(ctx, fw.watcher.Events, fw.watcher.Errors)
}

func (fw *FileWatcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	pending := map[string]bool{}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				return ErrClosed
			}
			if !fw.shouldWatch(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			fw.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("file changed")
			pending[filepath.Clean(event.Name)] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(fw.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			fw.flush(pending)
			pending = map[string]bool{}

		case err, ok := <-errs:
			if !ok {
				return ErrClosed
			}
			if err != nil {
				// Log error but continue watching
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// shouldWatch reports whether path is one of the watched files and not
// excluded.
func (fw *FileWatcher) shouldWatch(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil || !fw.files[abs] {
		return false
	}

	base := filepath.Base(abs)
	for _, pattern := range fw.exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}
	return true
}

func (fw *FileWatcher) flush(pending map[string]bool) {
	if len(pending) == 0 {
		return
	}
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	fw.onChange(paths)
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
