package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/okra-platform/fedcompose/internal/config"
)

// Interfaces for dependency injection
type ConfigLoader interface {
	// Load reads the configuration at path, or searches the working
	// directory and its parents when path is empty.
	Load(path string) (*config.Config, error)
}

type Output interface {
	io.Writer
	Printf(format string, a ...any)
	Println(a ...any)
}

type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// Default implementations
type defaultConfigLoader struct{}

func (l *defaultConfigLoader) Load(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFromPath(path)
	}
	cfg, _, err := config.LoadConfig()
	return cfg, err
}

type defaultOutput struct {
	w io.Writer
}

func (o *defaultOutput) Write(p []byte) (int, error) {
	return o.writer().Write(p)
}

func (o *defaultOutput) Printf(format string, a ...any) {
	fmt.Fprintf(o.writer(), format, a...)
}

func (o *defaultOutput) Println(a ...any) {
	fmt.Fprintln(o.writer(), a...)
}

func (o *defaultOutput) writer() io.Writer {
	if o.w == nil {
		return os.Stdout
	}
	return o.w
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func newCompositionID() string {
	return uuid.NewString()
}
