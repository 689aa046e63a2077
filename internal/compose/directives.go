package compose

import (
	"slices"

	"github.com/okra-platform/fedcompose/internal/schema"
)

// mergeExecutableDirectives adds the executable directive definitions of
// src that are not defined yet. The first definition of a name wins.
func mergeExecutableDirectives(defs *schema.DirectiveDefinitionList, diags *diagnostics, src source) {
	for _, def := range src.subgraph.Schema.DirectiveDefinitions.All() {
		if !def.IsExecutable() || schema.IsBuiltInDirective(def.Name) {
			continue
		}

		existing := defs.Get(def.Name)
		if existing == nil {
			defs.Add(copyDirectiveDefinition(def))
			continue
		}
		if !sameDirectiveShape(existing, def) {
			diags.hintf(HintInconsistentExecutableDirectiveDefinition,
				"directive @%s in subgraph %q differs from the definition already merged; keeping the first one",
				def.Name, src.name())
		}
	}
}

func copyDirectiveDefinition(def *schema.DirectiveDefinition) *schema.DirectiveDefinition {
	out := &schema.DirectiveDefinition{
		Name:        def.Name,
		Description: def.Description,
		Locations:   slices.Clone(def.Locations),
		Repeatable:  def.Repeatable,
	}
	for _, arg := range def.Arguments {
		out.Arguments = append(out.Arguments, copyInputValue(arg))
	}
	return out
}

func sameDirectiveShape(a, b *schema.DirectiveDefinition) bool {
	if a.Repeatable != b.Repeatable || len(a.Arguments) != len(b.Arguments) {
		return false
	}
	if !slices.Equal(sortedLocations(a.Locations), sortedLocations(b.Locations)) {
		return false
	}
	for _, arg := range a.Arguments {
		other := b.Argument(arg.Name)
		if other == nil || !arg.Type.Equal(other.Type) || !arg.DefaultValue.Equal(other.DefaultValue) {
			return false
		}
	}
	return true
}

func sortedLocations(locations []schema.DirectiveLocation) []schema.DirectiveLocation {
	out := slices.Clone(locations)
	slices.Sort(out)
	return out
}
