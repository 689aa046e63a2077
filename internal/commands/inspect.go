package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okra-platform/fedcompose/internal/schema"
	"github.com/okra-platform/fedcompose/internal/supergraph"
)

var ErrMissingSupergraph = errors.New("a supergraph file is required")

// InspectOptions contains options for the inspect command
type InspectOptions struct {
	Path string
	JSON bool
}

// InspectDependencies for the inspect command
type InspectDependencies struct {
	FileSystem FileSystem
	Output     Output
}

type InspectCommand struct {
	deps InspectDependencies
}

func NewInspectCommand() *InspectCommand {
	return &InspectCommand{
		deps: InspectDependencies{
			FileSystem: &osFileSystem{},
			Output:     &defaultOutput{},
		},
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (ic *InspectCommand) WithDependencies(deps InspectDependencies) *InspectCommand {
	ic.deps = deps
	return ic
}

// Execute reads the supergraph at opts.Path and prints its report.
func (ic *InspectCommand) Execute(ctx context.Context, opts InspectOptions) error {
	if opts.Path == "" {
		return ErrMissingSupergraph
	}

	data, err := ic.deps.FileSystem.ReadFile(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to read supergraph: %w", err)
	}

	s, err := schema.ParseSchema(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse supergraph: %w", err)
	}

	report, err := supergraph.Inspect(s)
	if err != nil {
		return fmt.Errorf("failed to inspect supergraph: %w", err)
	}

	if opts.JSON {
		encoder := json.NewEncoder(ic.deps.Output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}
	return report.WriteText(ic.deps.Output)
}
