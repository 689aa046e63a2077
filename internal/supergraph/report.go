// Package supergraph reads the join spec metadata of a composed supergraph
// back into a report of graphs, entities and field ownership.
package supergraph

import (
	"fmt"
	"io"
	"strings"

	"github.com/okra-platform/fedcompose/internal/joinspec"
)

// Graph is one join__Graph value.
type Graph struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Key is one @join__type key of an entity.
type Key struct {
	Graph      string `json:"graph"`
	Fields     string `json:"fields"`
	Resolvable bool   `json:"resolvable"`
}

// FieldOwner is a graph able to resolve a field.
type FieldOwner struct {
	Graph          string `json:"graph"`
	Requires       string `json:"requires,omitempty"`
	Provides       string `json:"provides,omitempty"`
	Type           string `json:"type,omitempty"`
	Override       string `json:"override,omitempty"`
	OverrideLabel  string `json:"overrideLabel,omitempty"`
	External       bool   `json:"external,omitempty"`
	UsedOverridden bool   `json:"usedOverridden,omitempty"`
	// Implicit owners come from the type's @join__type because the field
	// carries no @join__field.
	Implicit bool `json:"implicit,omitempty"`
}

type Field struct {
	Name   string       `json:"name"`
	Owners []FieldOwner `json:"owners"`
}

// Type is the join metadata of one supergraph type.
type Type struct {
	Name              string              `json:"name"`
	Kind              string              `json:"kind"`
	Graphs            []string            `json:"graphs"`
	Keys              []Key               `json:"keys,omitempty"`
	InterfaceObjectIn []string            `json:"interfaceObjectIn,omitempty"`
	Implements        map[string][]string `json:"implements,omitempty"`
	Members           map[string][]string `json:"members,omitempty"`
	Values            map[string][]string `json:"values,omitempty"`
	Fields            []Field             `json:"fields,omitempty"`
}

// IsEntity reports whether any graph declares a key for the type.
func (t *Type) IsEntity() bool {
	return len(t.Keys) > 0
}

// Field returns the named field, or nil.
func (t *Type) Field(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// Report is the read-back of a supergraph.
type Report struct {
	JoinVersion joinspec.Version `json:"-"`
	Version     string           `json:"joinVersion"`
	Graphs      []Graph          `json:"graphs"`
	Types       []Type           `json:"types"`
}

func (r *Report) Graph(token string) *Graph {
	for i := range r.Graphs {
		if r.Graphs[i].Token == token {
			return &r.Graphs[i]
		}
	}
	return nil
}

func (r *Report) Type(name string) *Type {
	for i := range r.Types {
		if r.Types[i].Name == name {
			return &r.Types[i]
		}
	}
	return nil
}

// Entities returns the types with at least one key, in schema order.
func (r *Report) Entities() []*Type {
	var entities []*Type
	for i := range r.Types {
		if r.Types[i].IsEntity() {
			entities = append(entities, &r.Types[i])
		}
	}
	return entities
}

// OwnedFields returns the "Type.field" coordinates graph resolves, either
// explicitly or through the type's @join__type.
func (r *Report) OwnedFields(graph string) []string {
	var coordinates []string
	for _, t := range r.Types {
		for _, f := range t.Fields {
			for _, owner := range f.Owners {
				if owner.Graph == graph && !owner.External {
					coordinates = append(coordinates, t.Name+"."+f.Name)
					break
				}
			}
		}
	}
	return coordinates
}

// WriteText renders the report for terminals.
func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "join spec %s\n\n", r.JoinVersion)

	fmt.Fprintf(&sb, "Graphs (%d):\n", len(r.Graphs))
	for _, g := range r.Graphs {
		fmt.Fprintf(&sb, "  %s  %s  %s  (%d fields)\n", g.Token, g.Name, g.URL, len(r.OwnedFields(g.Token)))
	}

	entities := r.Entities()
	fmt.Fprintf(&sb, "\nEntities (%d):\n", len(entities))
	for _, t := range entities {
		fmt.Fprintf(&sb, "  %s %s\n", t.Kind, t.Name)
		for _, key := range t.Keys {
			suffix := ""
			if !key.Resolvable {
				suffix = " (not resolvable)"
			}
			fmt.Fprintf(&sb, "    %s key %q%s\n", key.Graph, key.Fields, suffix)
		}
		for _, graph := range t.InterfaceObjectIn {
			fmt.Fprintf(&sb, "    %s @interfaceObject\n", graph)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
