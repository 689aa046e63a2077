package supergraph

import (
	"errors"
	"fmt"

	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
)

var (
	ErrNilSchema       = errors.New("supergraph schema cannot be nil")
	ErrMissingJoinType = errors.New("type has no @join__type")
	ErrUnknownGraph    = errors.New("join directive names an unknown graph")
)

// Inspect decodes the join metadata of s. The join spec version is taken
// from the schema's @link, and directives that version does not define are
// not read.
func Inspect(s *schema.Schema) (*Report, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	join, err := joinspec.JoinVersions.FromSchema(s)
	if err != nil {
		return nil, fmt.Errorf("failed to detect join spec version: %w", err)
	}

	in, err := newInspector(join, s)
	if err != nil {
		return nil, err
	}

	report := &Report{
		JoinVersion: join.Version(),
		Version:     join.Version().String(),
	}
	if report.Graphs, err = in.graphs(); err != nil {
		return nil, err
	}
	in.tokens = map[string]bool{}
	for _, g := range report.Graphs {
		in.tokens[g.Token] = true
		in.order = append(in.order, g.Token)
	}

	for _, def := range s.Types.All() {
		if !isSupergraphType(def.TypeName()) {
			continue
		}
		t, err := in.inspectType(def)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", def.TypeName(), err)
		}
		report.Types = append(report.Types, t)
	}
	return report, nil
}

func isSupergraphType(name string) bool {
	return !schema.IsBuiltInType(name) && !joinspec.IsLinkName(name) && !joinspec.IsJoinName(name)
}

// inspector holds the join directive definitions present in the schema.
// Gated definitions are nil for versions that lack them.
type inspector struct {
	join   *joinspec.JoinSpecDefinition
	schema *schema.Schema
	tokens map[string]bool
	order  []string

	implements  *schema.DirectiveDefinition
	unionMember *schema.DirectiveDefinition
	enumValue   *schema.DirectiveDefinition
}

func newInspector(join *joinspec.JoinSpecDefinition, s *schema.Schema) (*inspector, error) {
	in := &inspector{join: join, schema: s}

	required := []func(*schema.Schema) (*schema.DirectiveDefinition, error){
		join.GraphDirectiveDefinition,
		join.TypeDirectiveDefinition,
		join.FieldDirectiveDefinition,
	}
	for _, lookup := range required {
		if _, err := lookup(s); err != nil {
			return nil, err
		}
	}

	var err error
	if in.implements, err = join.ImplementsDirectiveDefinition(s); err != nil {
		return nil, err
	}
	if in.unionMember, err = join.UnionMemberDirectiveDefinition(s); err != nil {
		return nil, err
	}
	if in.enumValue, err = join.EnumValueDirectiveDefinition(s); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *inspector) graphs() ([]Graph, error) {
	enum, err := in.join.GraphEnumDefinition(in.schema)
	if err != nil {
		return nil, err
	}

	graphs := make([]Graph, 0, len(enum.Values))
	for _, value := range enum.Values {
		application := value.Directives.Get(joinspec.GraphDirectiveName)
		if application == nil {
			return nil, fmt.Errorf("%s.%s has no @%s", joinspec.GraphEnumName, value.Name, joinspec.GraphDirectiveName)
		}
		args, err := in.join.GraphDirectiveArguments(application)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", joinspec.GraphEnumName, value.Name, err)
		}
		graphs = append(graphs, Graph{Token: value.Name, Name: args.Name, URL: args.URL})
	}
	return graphs, nil
}

func (in *inspector) checkGraph(token string) error {
	if token != "" && !in.tokens[token] {
		return fmt.Errorf("%w: %s", ErrUnknownGraph, token)
	}
	return nil
}

func (in *inspector) inspectType(def schema.TypeDefinition) (Type, error) {
	t := Type{Name: def.TypeName(), Kind: def.Kind().String()}

	applications := def.TypeDirectives().GetAll(joinspec.TypeDirectiveName)
	if len(applications) == 0 {
		if in.join.AllowsTypeDirective(def.Kind()) {
			return Type{}, ErrMissingJoinType
		}
		// v0.1 records no owners for this kind.
		t.Graphs = append([]string(nil), in.order...)
	}
	for _, application := range applications {
		args, err := in.join.TypeDirectiveArguments(application)
		if err != nil {
			return Type{}, err
		}
		if err := in.checkGraph(args.Graph); err != nil {
			return Type{}, err
		}
		t.Graphs = appendUnique(t.Graphs, args.Graph)
		if args.Key != "" {
			t.Keys = append(t.Keys, Key{Graph: args.Graph, Fields: args.Key, Resolvable: args.Resolvable})
		}
		if args.IsInterfaceObject {
			t.InterfaceObjectIn = appendUnique(t.InterfaceObjectIn, args.Graph)
		}
	}

	var err error
	switch d := def.(type) {
	case *schema.ObjectType:
		if t.Implements, err = in.implementations(d.Directives); err != nil {
			return Type{}, err
		}
		t.Fields, err = in.fields(t.Graphs, d.Fields)
	case *schema.InterfaceType:
		if t.Implements, err = in.implementations(d.Directives); err != nil {
			return Type{}, err
		}
		t.Fields, err = in.fields(t.Graphs, d.Fields)
	case *schema.UnionType:
		t.Members, err = in.members(d.Directives)
	case *schema.EnumType:
		t.Values, err = in.values(d.Values)
	case *schema.InputObjectType:
		t.Fields, err = in.inputFields(t.Graphs, d.Fields)
	case *schema.ScalarType:
	}
	if err != nil {
		return Type{}, err
	}
	return t, nil
}

func (in *inspector) implementations(directives schema.DirectiveList) (map[string][]string, error) {
	if in.implements == nil {
		return nil, nil
	}
	var out map[string][]string
	for _, application := range directives.GetAll(joinspec.ImplementsDirectiveName) {
		args, err := in.join.ImplementsDirectiveArguments(application)
		if err != nil {
			return nil, err
		}
		if err := in.checkGraph(args.Graph); err != nil {
			return nil, err
		}
		if out == nil {
			out = map[string][]string{}
		}
		out[args.Graph] = appendUnique(out[args.Graph], args.Interface)
	}
	return out, nil
}

func (in *inspector) members(directives schema.DirectiveList) (map[string][]string, error) {
	if in.unionMember == nil {
		return nil, nil
	}
	var out map[string][]string
	for _, application := range directives.GetAll(joinspec.UnionMemberDirectiveName) {
		args, err := in.join.UnionMemberDirectiveArguments(application)
		if err != nil {
			return nil, err
		}
		if err := in.checkGraph(args.Graph); err != nil {
			return nil, err
		}
		if out == nil {
			out = map[string][]string{}
		}
		out[args.Graph] = appendUnique(out[args.Graph], args.Member)
	}
	return out, nil
}

// values maps each enum value to the graphs declaring it.
func (in *inspector) values(values []*schema.EnumValueDefinition) (map[string][]string, error) {
	if in.enumValue == nil {
		return nil, nil
	}
	var out map[string][]string
	for _, value := range values {
		for _, application := range value.Directives.GetAll(joinspec.EnumValueDirectiveName) {
			args, err := in.join.EnumValueDirectiveArguments(application)
			if err != nil {
				return nil, fmt.Errorf("value %s: %w", value.Name, err)
			}
			if err := in.checkGraph(args.Graph); err != nil {
				return nil, err
			}
			if out == nil {
				out = map[string][]string{}
			}
			out[value.Name] = appendUnique(out[value.Name], args.Graph)
		}
	}
	return out, nil
}

func (in *inspector) fields(typeGraphs []string, fields schema.FieldList) ([]Field, error) {
	out := make([]Field, 0, len(fields))
	for _, field := range fields {
		owners, err := in.owners(typeGraphs, field.Directives)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		out = append(out, Field{Name: field.Name, Owners: owners})
	}
	return out, nil
}

func (in *inspector) inputFields(typeGraphs []string, fields []*schema.InputValueDefinition) ([]Field, error) {
	out := make([]Field, 0, len(fields))
	for _, field := range fields {
		owners, err := in.owners(typeGraphs, field.Directives)
		if err != nil {
			return nil, fmt.Errorf("input field %s: %w", field.Name, err)
		}
		out = append(out, Field{Name: field.Name, Owners: owners})
	}
	return out, nil
}

// owners decodes the @join__field applications of a field. Without any,
// every graph declaring the type owns the field.
func (in *inspector) owners(typeGraphs []string, directives schema.DirectiveList) ([]FieldOwner, error) {
	applications := directives.GetAll(joinspec.FieldDirectiveName)
	if len(applications) == 0 {
		owners := make([]FieldOwner, len(typeGraphs))
		for i, graph := range typeGraphs {
			owners[i] = FieldOwner{Graph: graph, Implicit: true}
		}
		return owners, nil
	}

	owners := make([]FieldOwner, 0, len(applications))
	for _, application := range applications {
		args, err := in.join.FieldDirectiveArguments(application)
		if err != nil {
			return nil, err
		}
		if err := in.checkGraph(args.Graph); err != nil {
			return nil, err
		}
		owners = append(owners, FieldOwner{
			Graph:          args.Graph,
			Requires:       args.Requires,
			Provides:       args.Provides,
			Type:           args.Type,
			Override:       args.Override,
			OverrideLabel:  args.OverrideLabel,
			External:       args.External,
			UsedOverridden: args.UsedOverridden,
		})
	}
	return owners, nil
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
