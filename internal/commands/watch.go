package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/fedcompose/internal/config"
	"github.com/okra-platform/fedcompose/internal/watch"
)

type FileWatcher interface {
	Start(ctx context.Context) error
	Close() error
}

type WatcherFactory interface {
	NewWatcher(files []string, exclude []string, onChange func(paths []string)) (FileWatcher, error)
}

type defaultWatcherFactory struct {
	logger zerolog.Logger
}

func (f *defaultWatcherFactory) NewWatcher(files []string, exclude []string, onChange func(paths []string)) (FileWatcher, error) {
	return watch.NewFileWatcher(files, onChange, watch.WithExclude(exclude), watch.WithLogger(f.logger))
}

// WatchDependencies for the watch command
type WatchDependencies struct {
	Compose        *ComposeCommand
	WatcherFactory WatcherFactory
	SignalNotifier SignalNotifier
	Output         Output
	Logger         zerolog.Logger
}

// WatchCommand composes once and then again on every change to the
// configuration or a subgraph schema.
type WatchCommand struct {
	deps WatchDependencies
}

func NewWatchCommand() *WatchCommand {
	logger := log.Logger.With().Str("component", "watch").Logger()
	composeCmd := NewComposeCommand()
	return &WatchCommand{
		deps: WatchDependencies{
			Compose:        composeCmd,
			WatcherFactory: &defaultWatcherFactory{logger: logger},
			SignalNotifier: &defaultSignalNotifier{},
			Output:         composeCmd.deps.Output,
			Logger:         logger,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (wc *WatchCommand) WithDependencies(deps WatchDependencies) *WatchCommand {
	wc.deps = deps
	return wc
}

// Execute runs the watch loop until a signal arrives or ctx is done.
func (wc *WatchCommand) Execute(ctx context.Context, opts ComposeOptions) error {
	cfg, err := wc.deps.Compose.deps.ConfigLoader.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load supergraph config: %w", err)
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	wc.deps.SignalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer wc.deps.SignalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			wc.deps.Output.Println("\n👋 Stopping watch mode...")
			cancel()
		case <-ctx.Done():
		}
	}()

	wc.recompose(ctx, cfg, opts)

	files := cfg.SchemaFiles()
	if opts.ConfigPath != "" {
		files = append(files, opts.ConfigPath)
	}
	wc.deps.Output.Printf("👀 Watching %d files for changes...\n", len(files))

	watcher, err := wc.deps.WatcherFactory.NewWatcher(files, cfg.Watch.Exclude, func(paths []string) {
		wc.deps.Logger.Info().Strs("paths", paths).Msg("recomposing")
		// The configuration is reloaded on every change.
		current, err := wc.deps.Compose.deps.ConfigLoader.Load(opts.ConfigPath)
		if err != nil {
			wc.deps.Output.Printf("✗ failed to reload config: %v\n", err)
			return
		}
		wc.recompose(ctx, current, opts)
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher error: %w", err)
	}
	return nil
}

// recompose reports composition problems without ending the watch loop.
func (wc *WatchCommand) recompose(ctx context.Context, cfg *config.Config, opts ComposeOptions) {
	if _, err := wc.deps.Compose.run(ctx, cfg, opts.Output); err != nil && !errors.Is(err, context.Canceled) {
		wc.deps.Output.Printf("✗ %v\n", err)
	}
}
