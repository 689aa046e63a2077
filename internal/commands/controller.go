// Package commands contains the CLI commands for the application
package commands

import (
	"context"
)

type Flags struct {
	LogLevel string
}

type Controller struct {
	Flags *Flags
}

// Compose composes the configured subgraphs once.
func (c *Controller) Compose(ctx context.Context, opts ComposeOptions) error {
	return NewComposeCommand().Execute(ctx, opts)
}

// Inspect prints the join metadata of a supergraph file.
func (c *Controller) Inspect(ctx context.Context, opts InspectOptions) error {
	return NewInspectCommand().Execute(ctx, opts)
}

// Watch recomposes whenever a subgraph schema or the configuration changes.
func (c *Controller) Watch(ctx context.Context, opts ComposeOptions) error {
	return NewWatchCommand().Execute(ctx, opts)
}

// Init writes a new supergraph configuration interactively.
func (c *Controller) Init(ctx context.Context) error {
	return NewInitCommand().Run(ctx)
}
