package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/okra-platform/fedcompose/internal/compose"
	"github.com/okra-platform/fedcompose/internal/config"
	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/metrics"
	"github.com/okra-platform/fedcompose/internal/schema"
	"github.com/okra-platform/fedcompose/internal/subgraph"
)

var ErrCompositionFailed = errors.New("composition failed")

// StdoutOutput as the output path prints the supergraph instead of writing
// a file.
const StdoutOutput = "-"

// ComposeOptions contains options for the compose and watch commands
type ComposeOptions struct {
	ConfigPath string
	// Output overrides the configured output path when set.
	Output string
}

// ComposeDependencies for the compose command
type ComposeDependencies struct {
	ConfigLoader ConfigLoader
	FileSystem   FileSystem
	Output       Output
	Metrics      *metrics.Recorder
	NewID        func() string
	Logger       zerolog.Logger
}

// ComposeCommand encapsulates the compose logic with injected dependencies
type ComposeCommand struct {
	deps ComposeDependencies
}

// NewComposeCommand creates a new compose command with default dependencies
func NewComposeCommand() *ComposeCommand {
	return &ComposeCommand{
		deps: ComposeDependencies{
			ConfigLoader: &defaultConfigLoader{},
			FileSystem:   &osFileSystem{},
			Output:       &defaultOutput{},
			Metrics:      metrics.NewRecorder(),
			NewID:        newCompositionID,
			Logger:       log.Logger,
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (cc *ComposeCommand) WithDependencies(deps ComposeDependencies) *ComposeCommand {
	cc.deps = deps
	return cc
}

// Execute runs the compose command
func (cc *ComposeCommand) Execute(ctx context.Context, opts ComposeOptions) error {
	cfg, err := cc.deps.ConfigLoader.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load supergraph config: %w", err)
	}

	_, err = cc.run(ctx, cfg, opts.Output)
	return err
}

// run performs one composition of cfg and writes the supergraph and the
// metrics file.
func (cc *ComposeCommand) run(ctx context.Context, cfg *config.Config, outputOverride string) (*compose.Success, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := cc.deps.Logger.With().
		Str("component", "compose-command").
		Str("composition_id", cc.deps.NewID()).
		Logger()

	subgraphs, err := cc.loadSubgraphs(cfg)
	if err != nil {
		return nil, err
	}

	opts := []compose.Option{compose.WithLogger(logger)}
	if cfg.JoinVersion != "" {
		version, err := joinspec.ParseVersion(cfg.JoinVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid join version: %w", err)
		}
		opts = append(opts, compose.WithJoinVersion(version))
	}

	start := time.Now()
	result, err := compose.MergeSubgraphs(subgraphs, opts...)
	duration := time.Since(start)

	var failure *compose.Failure
	if errors.As(err, &failure) {
		logHints(logger, failure.Hints)
		for _, e := range failure.Errors {
			cc.deps.Output.Printf("✗ %s\n", e.Error())
		}
		cc.record(logger, cfg, len(subgraphs), len(failure.Errors), len(failure.Hints), duration)
		return nil, fmt.Errorf("%w with %d errors", ErrCompositionFailed, len(failure.Errors))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compose supergraph: %w", err)
	}

	logHints(logger, result.Hints)

	output := cfg.Output
	if outputOverride != "" {
		output = outputOverride
	}
	if err := cc.writeSupergraph(output, schema.Print(result.Schema)); err != nil {
		return nil, err
	}
	cc.record(logger, cfg, len(subgraphs), 0, len(result.Hints), duration)

	if output != StdoutOutput {
		cc.deps.Output.Printf("✅ Composed %d subgraphs into %s (%d hints)\n", len(subgraphs), output, len(result.Hints))
	}
	return result, nil
}

func (cc *ComposeCommand) loadSubgraphs(cfg *config.Config) ([]*subgraph.Subgraph, error) {
	subgraphs := make([]*subgraph.Subgraph, 0, len(cfg.Subgraphs))
	for _, name := range cfg.SubgraphNames() {
		sgConfig := cfg.Subgraphs[name]
		data, err := cc.deps.FileSystem.ReadFile(sgConfig.Schema.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file for subgraph %s: %w", name, err)
		}
		sg, err := subgraph.New(name, sgConfig.RoutingURL, string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to load subgraph %s: %w", name, err)
		}
		subgraphs = append(subgraphs, sg)
	}
	return subgraphs, nil
}

func (cc *ComposeCommand) writeSupergraph(output, sdl string) error {
	if output == StdoutOutput {
		_, err := io.WriteString(cc.deps.Output, sdl)
		return err
	}
	if err := cc.deps.FileSystem.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := cc.deps.FileSystem.WriteFile(output, []byte(sdl), 0644); err != nil {
		return fmt.Errorf("failed to write supergraph: %w", err)
	}
	return nil
}

func (cc *ComposeCommand) record(logger zerolog.Logger, cfg *config.Config, subgraphs, errs, hints int, duration time.Duration) {
	if cc.deps.Metrics == nil {
		return
	}
	cc.deps.Metrics.Observe(subgraphs, errs, hints, duration)
	if cfg.MetricsFile == "" {
		return
	}
	if err := cc.deps.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
	}
}

func logHints(logger zerolog.Logger, hints []compose.Hint) {
	for _, h := range hints {
		logger.Warn().Str("code", h.Code).Msg(h.Message)
	}
}
