package joinspec

import (
	"strings"

	"github.com/okra-platform/fedcompose/internal/schema"
)

// JoinIdentity is the spec identity; versioned URLs append "/vX.Y".
const JoinIdentity = "https://specs.apollo.dev/join"

// Names of the join spec elements as they appear in a supergraph.
const (
	GraphEnumName            = "join__Graph"
	FieldSetScalarName       = "join__FieldSet"
	FieldValueScalarName     = "join__FieldValue"
	ContextArgumentInputName = "join__ContextArgument"
	GraphDirectiveName       = "join__graph"
	TypeDirectiveName        = "join__type"
	FieldDirectiveName       = "join__field"
	ImplementsDirectiveName  = "join__implements"
	UnionMemberDirectiveName = "join__unionMember"
	EnumValueDirectiveName   = "join__enumValue"
)

const joinNamePrefix = "join__"

// Argument names.
const (
	contextArgumentsArgument  = "contextArguments"
	overrideLabelArgument     = "overrideLabel"
	isInterfaceObjectArgument = "isInterfaceObject"
	resolvableArgument        = "resolvable"
	extensionArgument         = "extension"
	usedOverriddenArgument    = "usedOverridden"
	graphArgument             = "graph"
	keyArgument               = "key"
	requiresArgument          = "requires"
	providesArgument          = "provides"
	typeArgument              = "type"
	externalArgument          = "external"
	overrideArgument          = "override"
	interfaceArgument         = "interface"
	memberArgument            = "member"
	nameArgument              = "name"
	urlArgument               = "url"
)

var (
	v01 = Version{Major: 0, Minor: 1}
	v02 = Version{Major: 0, Minor: 2}
	v03 = Version{Major: 0, Minor: 3}
	v04 = Version{Major: 0, Minor: 4}
	v05 = Version{Major: 0, Minor: 5}
)

// JoinSpecDefinition describes one version of the join spec: the shape of
// its directives and types, and how to read their applications.
type JoinSpecDefinition struct {
	version   Version
	arguments map[string]map[string]bool
}

// NewJoinSpecDefinition returns the definition for version.
func NewJoinSpecDefinition(version Version) *JoinSpecDefinition {
	d := &JoinSpecDefinition{version: version, arguments: make(map[string]map[string]bool)}
	for _, def := range d.DirectiveDefinitions() {
		names := make(map[string]bool, len(def.Arguments))
		for _, arg := range def.Arguments {
			names[arg.Name] = true
		}
		d.arguments[def.Name] = names
	}
	return d
}

func (d *JoinSpecDefinition) Version() Version {
	return d.version
}

// URL is the value used in @link(url:) for this version.
func (d *JoinSpecDefinition) URL() string {
	return JoinIdentity + "/" + d.version.String()
}

// IsJoinName reports whether name belongs to the join namespace.
func IsJoinName(name string) bool {
	return strings.HasPrefix(name, joinNamePrefix)
}

// TypeDefinitions returns the join types this version declares, other than
// join__Graph which depends on the subgraphs being composed.
func (d *JoinSpecDefinition) TypeDefinitions() []schema.TypeDefinition {
	types := []schema.TypeDefinition{
		&schema.ScalarType{Name: FieldSetScalarName},
	}
	if d.version.AtLeast(v05) {
		types = append(types,
			&schema.ScalarType{Name: FieldValueScalarName},
			&schema.InputObjectType{
				Name: ContextArgumentInputName,
				Fields: []*schema.InputValueDefinition{
					{Name: "name", Type: schema.NonNullNamedType("String")},
					{Name: "type", Type: schema.NonNullNamedType("String")},
					{Name: "context", Type: schema.NonNullNamedType("String")},
					{Name: "selection", Type: schema.NonNullNamedType(FieldValueScalarName)},
				},
			},
		)
	}
	return types
}

// DirectiveDefinitions returns the join directive definitions of this
// version in installation order.
func (d *JoinSpecDefinition) DirectiveDefinitions() []*schema.DirectiveDefinition {
	defs := []*schema.DirectiveDefinition{
		d.graphDirective(),
		d.typeDirective(),
		d.fieldDirective(),
	}
	if d.version.AtLeast(v02) {
		defs = append(defs, &schema.DirectiveDefinition{
			Name: ImplementsDirectiveName,
			Arguments: []*schema.InputValueDefinition{
				{Name: graphArgument, Type: schema.NonNullNamedType(GraphEnumName)},
				{Name: interfaceArgument, Type: schema.NonNullNamedType("String")},
			},
			Repeatable: true,
			Locations:  []schema.DirectiveLocation{schema.LocationObject, schema.LocationInterface},
		})
	}
	if d.version.AtLeast(v03) {
		defs = append(defs,
			&schema.DirectiveDefinition{
				Name: UnionMemberDirectiveName,
				Arguments: []*schema.InputValueDefinition{
					{Name: graphArgument, Type: schema.NonNullNamedType(GraphEnumName)},
					{Name: memberArgument, Type: schema.NonNullNamedType("String")},
				},
				Repeatable: true,
				Locations:  []schema.DirectiveLocation{schema.LocationUnion},
			},
			&schema.DirectiveDefinition{
				Name: EnumValueDirectiveName,
				Arguments: []*schema.InputValueDefinition{
					{Name: graphArgument, Type: schema.NonNullNamedType(GraphEnumName)},
				},
				Repeatable: true,
				Locations:  []schema.DirectiveLocation{schema.LocationEnumValue},
			},
		)
	}
	return defs
}

func (d *JoinSpecDefinition) graphDirective() *schema.DirectiveDefinition {
	return &schema.DirectiveDefinition{
		Name: GraphDirectiveName,
		Arguments: []*schema.InputValueDefinition{
			{Name: nameArgument, Type: schema.NonNullNamedType("String")},
			{Name: urlArgument, Type: schema.NonNullNamedType("String")},
		},
		Locations: []schema.DirectiveLocation{schema.LocationEnumValue},
	}
}

// AllowsTypeDirective reports whether @join__type may be applied to a type
// of kind. Before v0.2 only objects and interfaces carry it.
func (d *JoinSpecDefinition) AllowsTypeDirective(kind schema.TypeKind) bool {
	return kind == schema.KindObject || kind == schema.KindInterface || d.version.AtLeast(v02)
}

// FieldDirectiveRepeatable reports whether a field may carry one @join__field
// per subgraph. In v0.1 a field has at most one.
func (d *JoinSpecDefinition) FieldDirectiveRepeatable() bool {
	return d.version.AtLeast(v02)
}

func (d *JoinSpecDefinition) typeDirective() *schema.DirectiveDefinition {
	def := &schema.DirectiveDefinition{
		Name: TypeDirectiveName,
		Arguments: []*schema.InputValueDefinition{
			{Name: graphArgument, Type: schema.NonNullNamedType(GraphEnumName)},
			{Name: keyArgument, Type: schema.NamedType(FieldSetScalarName)},
		},
		Repeatable: true,
		Locations:  []schema.DirectiveLocation{schema.LocationObject, schema.LocationInterface},
	}
	if d.version.AtLeast(v02) {
		def.Arguments = append(def.Arguments, &schema.InputValueDefinition{
			Name:         extensionArgument,
			Type:         schema.NonNullNamedType("Boolean"),
			DefaultValue: schema.BooleanValue(false),
		})
		def.Locations = append(def.Locations,
			schema.LocationUnion, schema.LocationEnum, schema.LocationInputObject, schema.LocationScalar)
	}
	if d.version.AtLeast(v03) {
		def.Arguments = append(def.Arguments,
			&schema.InputValueDefinition{
				Name:         resolvableArgument,
				Type:         schema.NonNullNamedType("Boolean"),
				DefaultValue: schema.BooleanValue(true),
			},
			&schema.InputValueDefinition{
				Name:         isInterfaceObjectArgument,
				Type:         schema.NonNullNamedType("Boolean"),
				DefaultValue: schema.BooleanValue(false),
			},
		)
	}
	return def
}

func (d *JoinSpecDefinition) fieldDirective() *schema.DirectiveDefinition {
	def := &schema.DirectiveDefinition{
		Name: FieldDirectiveName,
		Arguments: []*schema.InputValueDefinition{
			{Name: graphArgument, Type: schema.NamedType(GraphEnumName)},
			{Name: requiresArgument, Type: schema.NamedType(FieldSetScalarName)},
			{Name: providesArgument, Type: schema.NamedType(FieldSetScalarName)},
		},
		Locations: []schema.DirectiveLocation{schema.LocationFieldDefinition},
	}
	if d.version.AtLeast(v02) {
		def.Repeatable = true
		def.Locations = append(def.Locations, schema.LocationInputFieldDefinition)
		def.Arguments = append(def.Arguments,
			&schema.InputValueDefinition{Name: typeArgument, Type: schema.NamedType("String")},
			&schema.InputValueDefinition{Name: externalArgument, Type: schema.NamedType("Boolean")},
			&schema.InputValueDefinition{Name: overrideArgument, Type: schema.NamedType("String")},
		)
		if d.version.AtLeast(v04) {
			def.Arguments = append(def.Arguments,
				&schema.InputValueDefinition{Name: overrideLabelArgument, Type: schema.NamedType("String")})
		}
		def.Arguments = append(def.Arguments,
			&schema.InputValueDefinition{Name: usedOverriddenArgument, Type: schema.NamedType("Boolean")})
	}
	if d.version.AtLeast(v05) {
		def.Arguments = append(def.Arguments, &schema.InputValueDefinition{
			Name: contextArgumentsArgument,
			Type: schema.ListType(schema.NonNullNamedType(ContextArgumentInputName)),
		})
	}
	return def
}

// GraphEnumDefinition returns the join__Graph enum of s.
func (d *JoinSpecDefinition) GraphEnumDefinition(s *schema.Schema) (*schema.EnumType, error) {
	def := s.Types.Get(GraphEnumName)
	if def == nil {
		return nil, internalf("unexpectedly could not find %s in schema", GraphEnumName)
	}
	enum, ok := def.(*schema.EnumType)
	if !ok {
		return nil, internalf("%s is a %s, expected an enum", GraphEnumName, def.Kind())
	}
	return enum, nil
}

func (d *JoinSpecDefinition) GraphDirectiveDefinition(s *schema.Schema) (*schema.DirectiveDefinition, error) {
	return requiredDirectiveDefinition(s, GraphDirectiveName)
}

func (d *JoinSpecDefinition) TypeDirectiveDefinition(s *schema.Schema) (*schema.DirectiveDefinition, error) {
	return requiredDirectiveDefinition(s, TypeDirectiveName)
}

func (d *JoinSpecDefinition) FieldDirectiveDefinition(s *schema.Schema) (*schema.DirectiveDefinition, error) {
	return requiredDirectiveDefinition(s, FieldDirectiveName)
}

// ImplementsDirectiveDefinition returns nil without error for versions
// before v0.2, which have no @join__implements.
func (d *JoinSpecDefinition) ImplementsDirectiveDefinition(s *schema.Schema) (*schema.DirectiveDefinition, error) {
	if d.version.Less(v02) {
		return nil, nil
	}
	return requiredDirectiveDefinition(s, ImplementsDirectiveName)
}

// UnionMemberDirectiveDefinition returns nil without error for versions
// before v0.3.
func (d *JoinSpecDefinition) UnionMemberDirectiveDefinition(s *schema.Schema) (*schema.DirectiveDefinition, error) {
	if d.version.Less(v03) {
		return nil, nil
	}
	return requiredDirectiveDefinition(s, UnionMemberDirectiveName)
}

// EnumValueDirectiveDefinition returns nil without error for versions
// before v0.3.
func (d *JoinSpecDefinition) EnumValueDirectiveDefinition(s *schema.Schema) (*schema.DirectiveDefinition, error) {
	if d.version.Less(v03) {
		return nil, nil
	}
	return requiredDirectiveDefinition(s, EnumValueDirectiveName)
}

func requiredDirectiveDefinition(s *schema.Schema, name string) (*schema.DirectiveDefinition, error) {
	def := s.DirectiveDefinitions.Get(name)
	if def == nil {
		return nil, internalf("unexpectedly could not find directive @%s in schema", name)
	}
	return def, nil
}

// hasArgument reports whether this version's definition of directive
// declares argument.
func (d *JoinSpecDefinition) hasArgument(directive, argument string) bool {
	return d.arguments[directive][argument]
}
