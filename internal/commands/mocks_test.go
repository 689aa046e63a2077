package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/okra-platform/fedcompose/internal/config"
)

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) Load(path string) (*config.Config, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Config), args.Error(1)
}

type mockSignalNotifier struct {
	mock.Mock
}

func (m *mockSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	m.Called(c, sig)
}

func (m *mockSignalNotifier) Stop(c chan<- os.Signal) {
	m.Called(c)
}

// mockOutput records every write as one message.
type mockOutput struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockOutput) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, string(p))
	return len(p), nil
}

func (m *mockOutput) Printf(format string, a ...any) {
	m.Write([]byte(fmt.Sprintf(format, a...)))
}

func (m *mockOutput) Println(a ...any) {
	m.Write([]byte(fmt.Sprintln(a...)))
}

func (m *mockOutput) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(m.messages, "")
}

// memFileSystem is an in-memory FileSystem.
type memFileSystem struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes []string
}

func newMemFileSystem(files map[string]string) *memFileSystem {
	m := &memFileSystem{files: map[string][]byte{}}
	for name, content := range files {
		m.files[name] = []byte(content)
	}
	return m
}

func (m *memFileSystem) Stat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *memFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *memFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	m.writes = append(m.writes, name)
	return nil
}

func (m *memFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return nil
}

func (m *memFileSystem) file(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.files[name])
}

func (m *memFileSystem) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

type mockWatcher struct {
	started chan struct{}
}

func (w *mockWatcher) Start(ctx context.Context) error {
	close(w.started)
	<-ctx.Done()
	return ctx.Err()
}

func (w *mockWatcher) Close() error {
	return nil
}

// mockWatcherFactory captures the onChange callback of the watcher it
// creates.
type mockWatcherFactory struct {
	mu       sync.Mutex
	files    []string
	exclude  []string
	onChange func(paths []string)
	watcher  *mockWatcher
	err      error
}

func (f *mockWatcherFactory) NewWatcher(files []string, exclude []string, onChange func(paths []string)) (FileWatcher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.files = files
	f.exclude = exclude
	f.onChange = onChange
	f.watcher = &mockWatcher{started: make(chan struct{})}
	return f.watcher, nil
}

func (f *mockWatcherFactory) waitStarted() bool {
	f.mu.Lock()
	w := f.watcher
	f.mu.Unlock()
	if w == nil {
		return false
	}
	select {
	case <-w.started:
		return true
	case <-time.After(time.Second):
		return false
	}
}
