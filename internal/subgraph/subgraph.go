// Package subgraph holds the subgraph inputs of a composition
package subgraph

import (
	"errors"
	"fmt"
	"os"

	"github.com/okra-platform/fedcompose/internal/schema"
)

var (
	ErrEmptyName = errors.New("subgraph name cannot be empty")
	ErrNilSchema = errors.New("subgraph schema cannot be nil")
)

// Subgraph is one independently deployed GraphQL service. It is read-only
// input to composition.
type Subgraph struct {
	Name   string
	URL    string
	Schema *schema.Schema
}

// New parses sdl and returns the subgraph named name, served at url.
func New(name, url, sdl string) (*Subgraph, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	parsed, err := schema.ParseSchema(sdl)
	if err != nil {
		return nil, fmt.Errorf("subgraph %s: %w", name, err)
	}

	return &Subgraph{
		Name:   name,
		URL:    url,
		Schema: parsed,
	}, nil
}

// FromSchema wraps an already parsed schema.
func FromSchema(name, url string, s *schema.Schema) (*Subgraph, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if s == nil {
		return nil, ErrNilSchema
	}
	return &Subgraph{Name: name, URL: url, Schema: s}, nil
}

// LoadFile reads the SDL at path and parses it.
func LoadFile(name, url, path string) (*Subgraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file for subgraph %s: %w", name, err)
	}
	return New(name, url, string(data))
}
