package schema

import "slices"

// Schema is a GraphQL type system document: the schema definition, the named
// types and the directive definitions, each kept in insertion order.
type Schema struct {
	Description      string
	Directives       DirectiveList
	QueryType        string
	MutationType     string
	SubscriptionType string

	Types                *TypeMap
	DirectiveDefinitions *DirectiveDefinitionList
}

// NewSchema returns an empty schema with no root operations.
func NewSchema() *Schema {
	return &Schema{
		Types:                NewTypeMap(),
		DirectiveDefinitions: NewDirectiveDefinitionList(),
	}
}

// RootOperationTypes returns the root operation type names that are set.
func (s *Schema) RootOperationTypes() []string {
	var names []string
	for _, name := range []string{s.QueryType, s.MutationType, s.SubscriptionType} {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// IsRootOperationType reports whether name is one of the schema's root types.
func (s *Schema) IsRootOperationType(name string) bool {
	return name != "" && (name == s.QueryType || name == s.MutationType || name == s.SubscriptionType)
}

// TypeKind identifies a TypeDefinition variant.
type TypeKind int

const (
	KindScalar TypeKind = iota
	KindObject
	KindInterface
	KindUnion
	KindEnum
	KindInputObject
)

func (k TypeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindInterface:
		return "interface"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindInputObject:
		return "input object"
	}
	return "unknown"
}

// TypeDefinition is one named type. The set of implementations is closed:
// *ScalarType, *ObjectType, *InterfaceType, *UnionType, *EnumType and
// *InputObjectType.
type TypeDefinition interface {
	TypeName() string
	Kind() TypeKind
	TypeDescription() string
	TypeDirectives() DirectiveList

	sealed()
}

// ScalarType is a custom scalar definition
type ScalarType struct {
	Name        string
	Description string
	Directives  DirectiveList
	Extension   bool
}

// ObjectType is an object type definition
type ObjectType struct {
	Name        string
	Description string
	Interfaces  []string
	Directives  DirectiveList
	Fields      FieldList
	Extension   bool
}

// InterfaceType is an interface type definition
type InterfaceType struct {
	Name        string
	Description string
	Interfaces  []string
	Directives  DirectiveList
	Fields      FieldList
	Extension   bool
}

// UnionType is a union type definition
type UnionType struct {
	Name        string
	Description string
	Directives  DirectiveList
	Members     []string
	Extension   bool
}

// EnumType is an enum type definition
type EnumType struct {
	Name        string
	Description string
	Directives  DirectiveList
	Values      []*EnumValueDefinition
	Extension   bool
}

// InputObjectType is an input object type definition
type InputObjectType struct {
	Name        string
	Description string
	Directives  DirectiveList
	Fields      []*InputValueDefinition
	Extension   bool
}

func (t *ScalarType) TypeName() string      { return t.Name }
func (t *ObjectType) TypeName() string      { return t.Name }
func (t *InterfaceType) TypeName() string   { return t.Name }
func (t *UnionType) TypeName() string       { return t.Name }
func (t *EnumType) TypeName() string        { return t.Name }
func (t *InputObjectType) TypeName() string { return t.Name }

func (t *ScalarType) Kind() TypeKind      { return KindScalar }
func (t *ObjectType) Kind() TypeKind      { return KindObject }
func (t *InterfaceType) Kind() TypeKind   { return KindInterface }
func (t *UnionType) Kind() TypeKind       { return KindUnion }
func (t *EnumType) Kind() TypeKind        { return KindEnum }
func (t *InputObjectType) Kind() TypeKind { return KindInputObject }

func (t *ScalarType) TypeDescription() string      { return t.Description }
func (t *ObjectType) TypeDescription() string      { return t.Description }
func (t *InterfaceType) TypeDescription() string   { return t.Description }
func (t *UnionType) TypeDescription() string       { return t.Description }
func (t *EnumType) TypeDescription() string        { return t.Description }
func (t *InputObjectType) TypeDescription() string { return t.Description }

func (t *ScalarType) TypeDirectives() DirectiveList      { return t.Directives }
func (t *ObjectType) TypeDirectives() DirectiveList      { return t.Directives }
func (t *InterfaceType) TypeDirectives() DirectiveList   { return t.Directives }
func (t *UnionType) TypeDirectives() DirectiveList       { return t.Directives }
func (t *EnumType) TypeDirectives() DirectiveList        { return t.Directives }
func (t *InputObjectType) TypeDirectives() DirectiveList { return t.Directives }

func (*ScalarType) sealed()      {}
func (*ObjectType) sealed()      {}
func (*InterfaceType) sealed()   {}
func (*UnionType) sealed()       {}
func (*EnumType) sealed()        {}
func (*InputObjectType) sealed() {}

// HasInterface reports whether the object declares it implements name.
func (t *ObjectType) HasInterface(name string) bool {
	return slices.Contains(t.Interfaces, name)
}

// HasInterface reports whether the interface declares it implements name.
func (t *InterfaceType) HasInterface(name string) bool {
	return slices.Contains(t.Interfaces, name)
}

// HasMember reports whether name is a member of the union.
func (t *UnionType) HasMember(name string) bool {
	return slices.Contains(t.Members, name)
}

// Value returns the enum value definition with the given name, or nil.
func (t *EnumType) Value(name string) *EnumValueDefinition {
	for _, v := range t.Values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Field returns the input field with the given name, or nil.
func (t *InputObjectType) Field(name string) *InputValueDefinition {
	return findInputValue(t.Fields, name)
}

// FieldDefinition is a field of an object or interface type.
type FieldDefinition struct {
	Name        string
	Description string
	Arguments   []*InputValueDefinition
	Type        *Type
	Directives  DirectiveList
}

// Argument returns the argument definition with the given name, or nil.
func (f *FieldDefinition) Argument(name string) *InputValueDefinition {
	return findInputValue(f.Arguments, name)
}

// FieldList is an ordered list of field definitions.
type FieldList []*FieldDefinition

// Get returns the field with the given name, or nil.
func (l FieldList) Get(name string) *FieldDefinition {
	for _, f := range l {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputValueDefinition is an argument or an input object field.
type InputValueDefinition struct {
	Name         string
	Description  string
	Type         *Type
	DefaultValue *Value
	Directives   DirectiveList
}

// EnumValueDefinition is one value of an enum type.
type EnumValueDefinition struct {
	Name        string
	Description string
	Directives  DirectiveList
}

// Type is a type reference: a named type, optionally wrapped in lists and
// non-null markers.
type Type struct {
	NamedType string
	Elem      *Type
	NonNull   bool
}

// NamedType returns a nullable reference to name.
func NamedType(name string) *Type {
	return &Type{NamedType: name}
}

// NonNullNamedType returns a non-null reference to name.
func NonNullNamedType(name string) *Type {
	return &Type{NamedType: name, NonNull: true}
}

// ListType returns a nullable list of elem.
func ListType(elem *Type) *Type {
	return &Type{Elem: elem}
}

// Name returns the innermost named type.
func (t *Type) Name() string {
	if t.Elem != nil {
		return t.Elem.Name()
	}
	return t.NamedType
}

func (t *Type) String() string {
	var s string
	if t.Elem != nil {
		s = "[" + t.Elem.String() + "]"
	} else {
		s = t.NamedType
	}
	if t.NonNull {
		s += "!"
	}
	return s
}

// Nullable returns a copy of t with every non-null marker removed.
func (t *Type) Nullable() *Type {
	out := &Type{NamedType: t.NamedType}
	if t.Elem != nil {
		out.Elem = t.Elem.Nullable()
	}
	return out
}

// Equal reports whether both references spell the same type.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.String() == other.String()
}

// Directive is an applied directive such as @key(fields: "id").
type Directive struct {
	Name      string
	Arguments []*Argument
}

// Argument is a named argument of an applied directive.
type Argument struct {
	Name  string
	Value *Value
}

// NewDirective builds an applied directive.
func NewDirective(name string, args ...*Argument) *Directive {
	return &Directive{Name: name, Arguments: args}
}

// NewArgument builds a directive argument.
func NewArgument(name string, value *Value) *Argument {
	return &Argument{Name: name, Value: value}
}

// Argument returns the value of the named argument, or nil when absent.
func (d *Directive) Argument(name string) *Value {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a.Value
		}
	}
	return nil
}

func (d *Directive) String() string {
	s := "@" + d.Name
	if len(d.Arguments) == 0 {
		return s
	}
	s += "("
	for i, a := range d.Arguments {
		if i > 0 {
			s += ", "
		}
		s += a.Name + ": " + a.Value.String()
	}
	return s + ")"
}

// DirectiveList is an ordered list of applied directives.
type DirectiveList []*Directive

// Get returns the first directive with the given name, or nil.
func (l DirectiveList) Get(name string) *Directive {
	for _, d := range l {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// GetAll returns every directive with the given name in order.
func (l DirectiveList) GetAll(name string) []*Directive {
	var out []*Directive
	for _, d := range l {
		if d.Name == name {
			out = append(out, d)
		}
	}
	return out
}

// Has reports whether a directive with the given name is applied.
func (l DirectiveList) Has(name string) bool {
	return l.Get(name) != nil
}

// DirectiveLocation is a location a directive definition can be applied to.
type DirectiveLocation string

const (
	LocationQuery                DirectiveLocation = "QUERY"
	LocationMutation             DirectiveLocation = "MUTATION"
	LocationSubscription         DirectiveLocation = "SUBSCRIPTION"
	LocationField                DirectiveLocation = "FIELD"
	LocationFragmentDefinition   DirectiveLocation = "FRAGMENT_DEFINITION"
	LocationFragmentSpread       DirectiveLocation = "FRAGMENT_SPREAD"
	LocationInlineFragment       DirectiveLocation = "INLINE_FRAGMENT"
	LocationVariableDefinition   DirectiveLocation = "VARIABLE_DEFINITION"
	LocationSchema               DirectiveLocation = "SCHEMA"
	LocationScalar               DirectiveLocation = "SCALAR"
	LocationObject               DirectiveLocation = "OBJECT"
	LocationFieldDefinition      DirectiveLocation = "FIELD_DEFINITION"
	LocationArgumentDefinition   DirectiveLocation = "ARGUMENT_DEFINITION"
	LocationInterface            DirectiveLocation = "INTERFACE"
	LocationUnion                DirectiveLocation = "UNION"
	LocationEnum                 DirectiveLocation = "ENUM"
	LocationEnumValue            DirectiveLocation = "ENUM_VALUE"
	LocationInputObject          DirectiveLocation = "INPUT_OBJECT"
	LocationInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// IsExecutable reports whether the location belongs to operations rather
// than to the type system.
func (l DirectiveLocation) IsExecutable() bool {
	switch l {
	case LocationQuery, LocationMutation, LocationSubscription, LocationField,
		LocationFragmentDefinition, LocationFragmentSpread, LocationInlineFragment,
		LocationVariableDefinition:
		return true
	}
	return false
}

// DirectiveDefinition declares a directive.
type DirectiveDefinition struct {
	Name        string
	Description string
	Arguments   []*InputValueDefinition
	Locations   []DirectiveLocation
	Repeatable  bool
}

// IsExecutable reports whether the directive may be used in operations.
func (d *DirectiveDefinition) IsExecutable() bool {
	for _, loc := range d.Locations {
		if loc.IsExecutable() {
			return true
		}
	}
	return false
}

// Argument returns the argument definition with the given name, or nil.
func (d *DirectiveDefinition) Argument(name string) *InputValueDefinition {
	return findInputValue(d.Arguments, name)
}

func findInputValue(values []*InputValueDefinition, name string) *InputValueDefinition {
	for _, v := range values {
		if v.Name == name {
			return v
		}
	}
	return nil
}
