package schema

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wundergraph/graphql-go-tools/v2/pkg/ast"
	"github.com/wundergraph/graphql-go-tools/v2/pkg/astparser"
)

// ParseSchema parses GraphQL SDL (after preprocessing) into a Schema.
// Type extensions are folded into the type they extend.
func ParseSchema(input string) (*Schema, error) {
	preprocessed := PreprocessSDL(input)

	doc, report := astparser.ParseGraphqlDocumentString(preprocessed)
	if report.HasErrors() {
		return nil, fmt.Errorf("failed to parse GraphQL: %v", report)
	}

	p := &parser{doc: &doc, schema: NewSchema()}
	hasSchemaDefinition := false

	for i := range doc.RootNodes {
		node := doc.RootNodes[i]
		switch node.Kind {
		case ast.NodeKindSchemaDefinition:
			hasSchemaDefinition = true
			def := doc.SchemaDefinitions[node.Ref]
			p.schema.Directives = append(p.schema.Directives, p.directives(def.Directives)...)
			p.rootOperations(def.RootOperationTypeDefinitions)
		case ast.NodeKindSchemaExtension:
			ext := doc.SchemaExtensions[node.Ref]
			p.schema.Directives = append(p.schema.Directives, p.directives(ext.Directives)...)
			if len(ext.RootOperationTypeDefinitions.Refs) > 0 {
				hasSchemaDefinition = true
				p.rootOperations(ext.RootOperationTypeDefinitions)
			}
		case ast.NodeKindScalarTypeDefinition:
			p.scalar(doc.ScalarTypeDefinitions[node.Ref], false)
		case ast.NodeKindScalarTypeExtension:
			p.scalar(doc.ScalarTypeExtensions[node.Ref].ScalarTypeDefinition, true)
		case ast.NodeKindObjectTypeDefinition:
			p.object(doc.ObjectTypeDefinitions[node.Ref], false)
		case ast.NodeKindObjectTypeExtension:
			p.object(doc.ObjectTypeExtensions[node.Ref].ObjectTypeDefinition, true)
		case ast.NodeKindInterfaceTypeDefinition:
			p.iface(doc.InterfaceTypeDefinitions[node.Ref], false)
		case ast.NodeKindInterfaceTypeExtension:
			p.iface(doc.InterfaceTypeExtensions[node.Ref].InterfaceTypeDefinition, true)
		case ast.NodeKindUnionTypeDefinition:
			p.union(doc.UnionTypeDefinitions[node.Ref], false)
		case ast.NodeKindUnionTypeExtension:
			p.union(doc.UnionTypeExtensions[node.Ref].UnionTypeDefinition, true)
		case ast.NodeKindEnumTypeDefinition:
			p.enum(doc.EnumTypeDefinitions[node.Ref], false)
		case ast.NodeKindEnumTypeExtension:
			p.enum(doc.EnumTypeExtensions[node.Ref].EnumTypeDefinition, true)
		case ast.NodeKindInputObjectTypeDefinition:
			p.input(doc.InputObjectTypeDefinitions[node.Ref], false)
		case ast.NodeKindInputObjectTypeExtension:
			p.input(doc.InputObjectTypeExtensions[node.Ref].InputObjectTypeDefinition, true)
		case ast.NodeKindDirectiveDefinition:
			p.directiveDefinition(node.Ref)
		}
	}

	if p.err != nil {
		return nil, p.err
	}

	if !hasSchemaDefinition {
		p.defaultRootOperations()
	}

	return p.schema, nil
}

type parser struct {
	doc    *ast.Document
	schema *Schema
	err    error
}

func (p *parser) name(ref ast.ByteSliceReference) string {
	return p.doc.Input.ByteSliceString(ref)
}

func (p *parser) rootOperations(list ast.RootOperationTypeDefinitionList) {
	for _, ref := range list.Refs {
		def := p.doc.RootOperationTypeDefinitions[ref]
		typeName := p.name(def.NamedType.Name)
		switch def.OperationType {
		case ast.OperationTypeQuery:
			p.schema.QueryType = typeName
		case ast.OperationTypeMutation:
			p.schema.MutationType = typeName
		case ast.OperationTypeSubscription:
			p.schema.SubscriptionType = typeName
		}
	}
}

func (p *parser) defaultRootOperations() {
	if _, ok := p.schema.Types.Get("Query").(*ObjectType); ok {
		p.schema.QueryType = "Query"
	}
	if _, ok := p.schema.Types.Get("Mutation").(*ObjectType); ok {
		p.schema.MutationType = "Mutation"
	}
	if _, ok := p.schema.Types.Get("Subscription").(*ObjectType); ok {
		p.schema.SubscriptionType = "Subscription"
	}
}

// existing returns the type already registered under name when it has the
// expected kind. A clash of kinds within one document is a parse error.
func (p *parser) existing(name string, kind TypeKind) (TypeDefinition, bool) {
	def := p.schema.Types.Get(name)
	if def == nil {
		return nil, false
	}
	if def.Kind() != kind {
		if p.err == nil {
			p.err = fmt.Errorf("type %q is declared both as %s and %s", name, def.Kind(), kind)
		}
		return nil, false
	}
	return def, true
}

func (p *parser) scalar(def ast.ScalarTypeDefinition, extension bool) {
	name := p.name(def.Name)
	if prev, ok := p.existing(name, KindScalar); ok {
		t := prev.(*ScalarType)
		t.Directives = append(t.Directives, p.directives(def.Directives)...)
		t.Extension = t.Extension && extension
		return
	}
	if p.err != nil {
		return
	}
	p.schema.Types.Set(&ScalarType{
		Name:        name,
		Description: p.description(def.Description),
		Directives:  p.directives(def.Directives),
		Extension:   extension,
	})
}

func (p *parser) object(def ast.ObjectTypeDefinition, extension bool) {
	name := p.name(def.Name)
	directives := p.directives(def.Directives)
	fields := p.fields(def.FieldsDefinition)
	interfaces := p.typeNames(def.ImplementsInterfaces)

	if prev, ok := p.existing(name, KindObject); ok {
		t := prev.(*ObjectType)
		t.Directives = append(t.Directives, directives...)
		t.Fields = append(t.Fields, fields...)
		t.Interfaces = appendUnique(t.Interfaces, interfaces...)
		t.Extension = t.Extension && extension
		return
	}
	if p.err != nil {
		return
	}
	p.schema.Types.Set(&ObjectType{
		Name:        name,
		Description: p.description(def.Description),
		Interfaces:  interfaces,
		Directives:  directives,
		Fields:      fields,
		Extension:   extension || directives.Has("extends"),
	})
}

func (p *parser) iface(def ast.InterfaceTypeDefinition, extension bool) {
	name := p.name(def.Name)
	directives := p.directives(def.Directives)
	fields := p.fields(def.FieldsDefinition)
	interfaces := p.typeNames(def.ImplementsInterfaces)

	if prev, ok := p.existing(name, KindInterface); ok {
		t := prev.(*InterfaceType)
		t.Directives = append(t.Directives, directives...)
		t.Fields = append(t.Fields, fields...)
		t.Interfaces = appendUnique(t.Interfaces, interfaces...)
		t.Extension = t.Extension && extension
		return
	}
	if p.err != nil {
		return
	}
	p.schema.Types.Set(&InterfaceType{
		Name:        name,
		Description: p.description(def.Description),
		Interfaces:  interfaces,
		Directives:  directives,
		Fields:      fields,
		Extension:   extension || directives.Has("extends"),
	})
}

func (p *parser) union(def ast.UnionTypeDefinition, extension bool) {
	name := p.name(def.Name)
	members := p.typeNames(def.UnionMemberTypes)

	if prev, ok := p.existing(name, KindUnion); ok {
		t := prev.(*UnionType)
		t.Directives = append(t.Directives, p.directives(def.Directives)...)
		t.Members = appendUnique(t.Members, members...)
		t.Extension = t.Extension && extension
		return
	}
	if p.err != nil {
		return
	}
	p.schema.Types.Set(&UnionType{
		Name:        name,
		Description: p.description(def.Description),
		Directives:  p.directives(def.Directives),
		Members:     members,
		Extension:   extension,
	})
}

func (p *parser) enum(def ast.EnumTypeDefinition, extension bool) {
	name := p.name(def.Name)

	values := make([]*EnumValueDefinition, 0, len(def.EnumValuesDefinition.Refs))
	for _, ref := range def.EnumValuesDefinition.Refs {
		valueDef := p.doc.EnumValueDefinitions[ref]
		values = append(values, &EnumValueDefinition{
			Name:        p.name(valueDef.EnumValue),
			Description: p.description(valueDef.Description),
			Directives:  p.directives(valueDef.Directives),
		})
	}

	if prev, ok := p.existing(name, KindEnum); ok {
		t := prev.(*EnumType)
		t.Directives = append(t.Directives, p.directives(def.Directives)...)
		t.Values = append(t.Values, values...)
		t.Extension = t.Extension && extension
		return
	}
	if p.err != nil {
		return
	}
	p.schema.Types.Set(&EnumType{
		Name:        name,
		Description: p.description(def.Description),
		Directives:  p.directives(def.Directives),
		Values:      values,
		Extension:   extension,
	})
}

func (p *parser) input(def ast.InputObjectTypeDefinition, extension bool) {
	name := p.name(def.Name)
	fields := p.inputValues(def.InputFieldsDefinition)

	if prev, ok := p.existing(name, KindInputObject); ok {
		t := prev.(*InputObjectType)
		t.Directives = append(t.Directives, p.directives(def.Directives)...)
		t.Fields = append(t.Fields, fields...)
		t.Extension = t.Extension && extension
		return
	}
	if p.err != nil {
		return
	}
	p.schema.Types.Set(&InputObjectType{
		Name:        name,
		Description: p.description(def.Description),
		Directives:  p.directives(def.Directives),
		Fields:      fields,
		Extension:   extension,
	})
}

func (p *parser) directiveDefinition(ref int) {
	def := &p.doc.DirectiveDefinitions[ref]

	var locations []DirectiveLocation
	for _, loc := range directiveLocations {
		if def.DirectiveLocations.Get(loc.ast) {
			locations = append(locations, loc.location)
		}
	}

	p.schema.DirectiveDefinitions.Add(&DirectiveDefinition{
		Name:        p.name(def.Name),
		Description: p.description(def.Description),
		Arguments:   p.inputValues(def.ArgumentsDefinition),
		Locations:   locations,
		Repeatable:  def.Repeatable.IsRepeatable,
	})
}

var directiveLocations = []struct {
	ast      ast.DirectiveLocation
	location DirectiveLocation
}{
	{ast.ExecutableDirectiveLocationQuery, LocationQuery},
	{ast.ExecutableDirectiveLocationMutation, LocationMutation},
	{ast.ExecutableDirectiveLocationSubscription, LocationSubscription},
	{ast.ExecutableDirectiveLocationField, LocationField},
	{ast.ExecutableDirectiveLocationFragmentDefinition, LocationFragmentDefinition},
	{ast.ExecutableDirectiveLocationFragmentSpread, LocationFragmentSpread},
	{ast.ExecutableDirectiveLocationInlineFragment, LocationInlineFragment},
	{ast.ExecutableDirectiveLocationVariableDefinition, LocationVariableDefinition},
	{ast.TypeSystemDirectiveLocationSchema, LocationSchema},
	{ast.TypeSystemDirectiveLocationScalar, LocationScalar},
	{ast.TypeSystemDirectiveLocationObject, LocationObject},
	{ast.TypeSystemDirectiveLocationFieldDefinition, LocationFieldDefinition},
	{ast.TypeSystemDirectiveLocationArgumentDefinition, LocationArgumentDefinition},
	{ast.TypeSystemDirectiveLocationInterface, LocationInterface},
	{ast.TypeSystemDirectiveLocationUnion, LocationUnion},
	{ast.TypeSystemDirectiveLocationEnum, LocationEnum},
	{ast.TypeSystemDirectiveLocationEnumValue, LocationEnumValue},
	{ast.TypeSystemDirectiveLocationInputObject, LocationInputObject},
	{ast.TypeSystemDirectiveLocationInputFieldDefinition, LocationInputFieldDefinition},
}

func (p *parser) fields(list ast.FieldDefinitionList) FieldList {
	fields := make(FieldList, 0, len(list.Refs))
	for _, ref := range list.Refs {
		fieldDef := p.doc.FieldDefinitions[ref]
		fields = append(fields, &FieldDefinition{
			Name:        p.name(fieldDef.Name),
			Description: p.description(fieldDef.Description),
			Arguments:   p.inputValues(fieldDef.ArgumentsDefinition),
			Type:        p.typeRef(fieldDef.Type),
			Directives:  p.directives(fieldDef.Directives),
		})
	}
	return fields
}

func (p *parser) inputValues(list ast.InputValueDefinitionList) []*InputValueDefinition {
	values := make([]*InputValueDefinition, 0, len(list.Refs))
	for _, ref := range list.Refs {
		valueDef := p.doc.InputValueDefinitions[ref]
		value := &InputValueDefinition{
			Name:        p.name(valueDef.Name),
			Description: p.description(valueDef.Description),
			Type:        p.typeRef(valueDef.Type),
			Directives:  p.directives(valueDef.Directives),
		}
		if valueDef.DefaultValue.IsDefined {
			value.DefaultValue = p.value(valueDef.DefaultValue.Value)
		}
		values = append(values, value)
	}
	return values
}

func (p *parser) typeRef(ref int) *Type {
	t := p.doc.Types[ref]
	switch t.TypeKind {
	case ast.TypeKindNonNull:
		inner := p.typeRef(t.OfType)
		inner.NonNull = true
		return inner
	case ast.TypeKindList:
		return &Type{Elem: p.typeRef(t.OfType)}
	default:
		return &Type{NamedType: p.name(t.Name)}
	}
}

func (p *parser) typeNames(list ast.TypeList) []string {
	names := make([]string, 0, len(list.Refs))
	for _, ref := range list.Refs {
		names = appendUnique(names, p.typeRef(ref).Name())
	}
	return names
}

func (p *parser) directives(list ast.DirectiveList) DirectiveList {
	result := make(DirectiveList, 0, len(list.Refs))
	for _, ref := range list.Refs {
		directive := p.doc.Directives[ref]
		d := &Directive{Name: p.name(directive.Name)}
		for _, argRef := range directive.Arguments.Refs {
			arg := p.doc.Arguments[argRef]
			d.Arguments = append(d.Arguments, &Argument{
				Name:  p.name(arg.Name),
				Value: p.value(p.doc.ArgumentValue(argRef)),
			})
		}
		result = append(result, d)
	}
	return result
}

func (p *parser) value(value ast.Value) *Value {
	switch value.Kind {
	case ast.ValueKindString:
		if p.doc.StringValueIsBlockString(value.Ref) {
			return StringValue(blockStringValue(p.doc.BlockStringValueContentRawString(value.Ref)))
		}
		return StringValue(unescapeString(p.doc.StringValueContentString(value.Ref)))
	case ast.ValueKindEnum:
		return EnumValue(p.name(p.doc.EnumValues[value.Ref].Name))
	case ast.ValueKindBoolean:
		return BooleanValue(bool(p.doc.BooleanValues[value.Ref]))
	case ast.ValueKindInteger:
		return IntValue(string(p.doc.IntValueRaw(value.Ref)))
	case ast.ValueKindFloat:
		return FloatValue(string(p.doc.FloatValueRaw(value.Ref)))
	case ast.ValueKindVariable:
		return &Value{Kind: ValueKindVariable, Raw: p.name(p.doc.VariableValues[value.Ref].Name)}
	case ast.ValueKindList:
		list := ListValue()
		for _, ref := range p.doc.ListValues[value.Ref].Refs {
			list.List = append(list.List, p.value(p.doc.Values[ref]))
		}
		return list
	case ast.ValueKindObject:
		obj := ObjectValue()
		for _, ref := range p.doc.ObjectValues[value.Ref].Refs {
			field := p.doc.ObjectFields[ref]
			obj.Fields = append(obj.Fields, &ObjectField{
				Name:  p.name(field.Name),
				Value: p.value(field.Value),
			})
		}
		return obj
	}
	return NullValue()
}

func (p *parser) description(desc ast.Description) string {
	if !desc.IsDefined {
		return ""
	}
	content := p.doc.Input.ByteSliceString(desc.Content)
	if desc.IsBlockString {
		return blockStringValue(content)
	}
	return unescapeString(content)
}

func blockStringValue(raw string) string {
	return dedentBlockString(strings.ReplaceAll(raw, `\"""`, `"""`))
}

// unescapeString decodes the escape sequences of a quoted (non-block)
// string. Malformed escapes are kept as written.
func unescapeString(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case '"', '\\', '/':
			sb.WriteByte(raw[i])
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			r, width, ok := decodeUnicodeEscape(raw[i+1:])
			if !ok {
				sb.WriteString(`\u`)
				continue
			}
			sb.WriteRune(r)
			i += width
		default:
			sb.WriteByte('\\')
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// decodeUnicodeEscape reads the hex digits following `\u`, joining a
// surrogate pair when one follows. width is the number of bytes consumed.
func decodeUnicodeEscape(s string) (r rune, width int, ok bool) {
	first, ok := hex4(s)
	if !ok {
		return 0, 0, false
	}
	if !utf16.IsSurrogate(first) {
		return first, 4, true
	}
	if len(s) >= 10 && s[4] == '\\' && s[5] == 'u' {
		if second, ok := hex4(s[6:]); ok {
			if joined := utf16.DecodeRune(first, second); joined != utf8.RuneError {
				return joined, 10, true
			}
		}
	}
	return utf8.RuneError, 4, true
}

func hex4(s string) (rune, bool) {
	if len(s) < 4 {
		return 0, false
	}
	n, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// dedentBlockString applies the block string value algorithm: common
// indentation and leading/trailing blank lines are removed.
func dedentBlockString(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	common := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if common < 0 || indent < common {
			common = indent
		}
	}
	if common > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= common {
				lines[i] = lines[i][common:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " \t")
			}
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func appendUnique(values []string, more ...string) []string {
	for _, v := range more {
		found := false
		for _, existing := range values {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			values = append(values, v)
		}
	}
	return values
}
