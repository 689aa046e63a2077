package compose

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
	"github.com/okra-platform/fedcompose/internal/subgraph"
)

// federationTypes are subgraph-local federation types that never reach the
// supergraph.
var federationTypes = map[string]bool{
	"_Any":      true,
	"_Entity":   true,
	"_Service":  true,
	"_FieldSet": true,
}

// federationQueryFields are the entity resolution fields every subgraph
// exposes on its query type.
var federationQueryFields = map[string]bool{
	"_service":  true,
	"_entities": true,
}

func isMergeableType(name string) bool {
	if schema.IsBuiltInType(name) || federationTypes[name] {
		return false
	}
	return !strings.HasPrefix(name, "federation__") &&
		!joinspec.IsLinkName(name) &&
		!joinspec.IsJoinName(name)
}

// source is the subgraph currently being merged, as seen by the per-kind
// mergers.
type source struct {
	join     *joinspec.JoinSpecDefinition
	token    string
	subgraph *subgraph.Subgraph
}

func (s source) name() string {
	return s.subgraph.Name
}

func (s source) isRootOperationType(typeName string) bool {
	return s.subgraph.Schema.IsRootOperationType(typeName)
}

type merger struct {
	join   *joinspec.JoinSpecDefinition
	logger zerolog.Logger
}

func newMerger(join *joinspec.JoinSpecDefinition, logger zerolog.Logger) *merger {
	return &merger{join: join, logger: logger}
}

func (m *merger) merge(input []*subgraph.Subgraph) (*Success, error) {
	diags := newDiagnostics(m.logger)

	subgraphs := make([]*subgraph.Subgraph, 0, len(input))
	for i, sg := range input {
		if sg == nil || sg.Schema == nil {
			diags.errorf(CodeInvalidSubgraph, "subgraph at position %d has no schema", i)
			continue
		}
		subgraphs = append(subgraphs, sg)
	}
	slices.SortStableFunc(subgraphs, func(a, b *subgraph.Subgraph) int {
		return strings.Compare(a.Name, b.Name)
	})

	m.logger.Info().Int("subgraphs", len(subgraphs)).Msg("composing supergraph")

	sources := m.deriveSources(diags, subgraphs)
	if diags.hasErrors() {
		return nil, m.fail(diags, nil)
	}

	supergraph := schema.NewSchema()
	graphs := make([]joinspec.Graph, len(sources))
	for i, src := range sources {
		graphs[i] = joinspec.Graph{Token: src.token, Name: src.name(), URL: src.subgraph.URL}
	}
	if err := joinspec.NewInstaller(m.join).Install(supergraph, graphs); err != nil {
		diags.errorf(CodeInternal, "installing core features: %v", err)
		return nil, m.fail(diags, nil)
	}

	for _, src := range sources {
		m.logger.Debug().Str("subgraph", src.name()).Str("token", src.token).Msg("merging subgraph")
		mergeSchemaDefinition(supergraph, diags, src)
		for _, def := range src.subgraph.Schema.Types.All() {
			if !isMergeableType(def.TypeName()) {
				continue
			}
			mergeType(supergraph.Types, diags, src, def)
		}
		mergeExecutableDirectives(supergraph.DirectiveDefinitions, diags, src)
	}

	if diags.hasErrors() {
		return nil, m.fail(diags, supergraph)
	}

	m.logger.Info().
		Int("types", supergraph.Types.Len()).
		Int("hints", len(diags.hints)).
		Msg("composition succeeded")
	return &Success{Schema: supergraph, Hints: diags.hints}, nil
}

// deriveSources derives one token per subgraph. Invalid names and tokens
// shared by two subgraphs are fatal.
func (m *merger) deriveSources(diags *diagnostics, subgraphs []*subgraph.Subgraph) []source {
	sources := make([]source, 0, len(subgraphs))
	owners := map[string]string{}
	for _, sg := range subgraphs {
		token, err := DeriveToken(sg.Name)
		if err != nil {
			diags.errorf(CodeInvalidSubgraphName, "subgraph %q: %v", sg.Name, err)
			continue
		}
		if owner, ok := owners[token]; ok {
			diags.errorf(CodeDuplicateGraphToken,
				"subgraphs %q and %q both map to the join__Graph value %s", owner, sg.Name, token)
			continue
		}
		owners[token] = sg.Name
		sources = append(sources, source{join: m.join, token: token, subgraph: sg})
	}
	return sources
}

func (m *merger) fail(diags *diagnostics, partial *schema.Schema) *Failure {
	m.logger.Warn().
		Int("errors", len(diags.errors)).
		Int("hints", len(diags.hints)).
		Bool("partial_schema", partial != nil).
		Msg("composition failed")
	return &Failure{Schema: partial, Errors: diags.errors, Hints: diags.hints}
}

// mergeSchemaDefinition merges the description and root operation types.
// The last subgraph naming a root type wins.
func mergeSchemaDefinition(supergraph *schema.Schema, diags *diagnostics, src source) {
	sub := src.subgraph.Schema
	diags.mergeDescription(&supergraph.Description, sub.Description, "schema", src.name())

	roots := []struct {
		operation string
		merged    *string
		incoming  string
	}{
		{"query", &supergraph.QueryType, sub.QueryType},
		{"mutation", &supergraph.MutationType, sub.MutationType},
		{"subscription", &supergraph.SubscriptionType, sub.SubscriptionType},
	}
	for _, root := range roots {
		if root.incoming == "" {
			continue
		}
		if *root.merged != "" && *root.merged != root.incoming {
			diags.hintf(HintInconsistentRootOperationType,
				"subgraph %q uses %s as its %s root type instead of %s; using %s",
				src.name(), root.incoming, root.operation, *root.merged, root.incoming)
		}
		*root.merged = root.incoming
	}
}

// mergeType dispatches def to the merger of its kind.
func mergeType(types *schema.TypeMap, diags *diagnostics, src source, def schema.TypeDefinition) {
	switch t := def.(type) {
	case *schema.ScalarType:
		mergeScalarType(types, diags, src, t)
	case *schema.ObjectType:
		mergeObjectType(types, diags, src, t)
	case *schema.InterfaceType:
		mergeInterfaceType(types, diags, src, t)
	case *schema.UnionType:
		mergeUnionType(types, diags, src, t)
	case *schema.EnumType:
		mergeEnumType(types, diags, src, t)
	case *schema.InputObjectType:
		mergeInputObjectType(types, diags, src, t)
	}
}

func kindMismatch(diags *diagnostics, src source, existing, incoming schema.TypeDefinition) {
	diags.errorf(CodeTypeKindMismatch,
		"type %q is declared as %s in subgraph %q but as %s in an earlier subgraph",
		incoming.TypeName(), incoming.Kind(), src.name(), existing.Kind())
}

// typeDirective builds the graph-only @join__type of src, or nil when the
// join version does not allow it on kind.
func typeDirective(src source, kind schema.TypeKind, extension bool) *schema.Directive {
	if !src.join.AllowsTypeDirective(kind) {
		return nil
	}
	return src.join.TypeDirective(joinspec.TypeDirectiveArguments{
		Graph:      src.token,
		Extension:  extension,
		Resolvable: true,
	})
}

// keyedTypeDirectives builds one @join__type per key, or a graph-only one
// when keys is empty.
func keyedTypeDirectives(src source, keys []entityKey, extension, isInterfaceObject bool) schema.DirectiveList {
	if len(keys) == 0 {
		return schema.DirectiveList{src.join.TypeDirective(joinspec.TypeDirectiveArguments{
			Graph:             src.token,
			Extension:         extension,
			Resolvable:        true,
			IsInterfaceObject: isInterfaceObject,
		})}
	}
	directives := make(schema.DirectiveList, 0, len(keys))
	for _, key := range keys {
		directives = append(directives, src.join.TypeDirective(joinspec.TypeDirectiveArguments{
			Graph:             src.token,
			Key:               key.fields,
			Extension:         extension,
			Resolvable:        key.resolvable,
			IsInterfaceObject: isInterfaceObject,
		}))
	}
	return directives
}

// appendDirective appends d unless it is nil or an identical application
// is already present.
func appendDirective(list schema.DirectiveList, d *schema.Directive) schema.DirectiveList {
	if d == nil {
		return list
	}
	rendered := d.String()
	for _, existing := range list {
		if existing.Name == d.Name && existing.String() == rendered {
			return list
		}
	}
	return append(list, d)
}
