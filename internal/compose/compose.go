// Package compose merges federated subgraph schemas into a supergraph
// annotated with the join spec.
package compose

import (
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
	"github.com/okra-platform/fedcompose/internal/subgraph"
)

// Success is the result of a composition without fatal errors.
type Success struct {
	Schema *schema.Schema
	Hints  []Hint
}

// Failure is returned as the error of a composition with fatal errors.
// Schema is the partial supergraph, or nil when composition stopped before
// any type was merged.
type Failure struct {
	Schema *schema.Schema
	Errors []Error
	Hints  []Hint
}

func (f *Failure) Error() string {
	var result *multierror.Error
	for _, e := range f.Errors {
		result = multierror.Append(result, e)
	}
	if result == nil {
		return "composition failed"
	}
	return result.Error()
}

func (f *Failure) Unwrap() []error {
	errs := make([]error, len(f.Errors))
	for i, e := range f.Errors {
		errs[i] = e
	}
	return errs
}

type options struct {
	logger      zerolog.Logger
	joinVersion joinspec.Version
}

// Option configures a composition.
type Option func(*options)

// WithLogger sets the logger used for composition events. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithJoinVersion selects the join spec version of the supergraph.
// Directives the version does not define are left out of the output.
func WithJoinVersion(version joinspec.Version) Option {
	return func(o *options) {
		o.joinVersion = version
	}
}

// MergeSubgraphs composes subgraphs into a supergraph. The input order does
// not matter. On fatal errors the returned error is a *Failure.
func MergeSubgraphs(subgraphs []*subgraph.Subgraph, opts ...Option) (*Success, error) {
	o := options{
		logger:      zerolog.Nop(),
		joinVersion: joinspec.CompositionVersion,
	}
	for _, opt := range opts {
		opt(&o)
	}

	join, err := joinspec.JoinVersions.Lookup(o.joinVersion)
	if err != nil {
		return nil, err
	}

	m := newMerger(join, o.logger.With().Str("component", "composer").Logger())
	return m.merge(subgraphs)
}
