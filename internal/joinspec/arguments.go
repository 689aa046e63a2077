package joinspec

import (
	"github.com/okra-platform/fedcompose/internal/schema"
)

// GraphDirectiveArguments are the arguments of @join__graph.
type GraphDirectiveArguments struct {
	Name string
	URL  string
}

// TypeDirectiveArguments are the arguments of @join__type. Key is empty
// when the application carries no key.
type TypeDirectiveArguments struct {
	Graph             string
	Key               string
	Extension         bool
	Resolvable        bool
	IsInterfaceObject bool
}

// ContextArgument is one entry of @join__field(contextArguments:).
type ContextArgument struct {
	Name      string
	Type      string
	Context   string
	Selection string
}

// FieldDirectiveArguments are the arguments of @join__field. Empty strings
// and false booleans stand for absent arguments.
type FieldDirectiveArguments struct {
	Graph            string
	Requires         string
	Provides         string
	Type             string
	External         bool
	Override         string
	OverrideLabel    string
	UsedOverridden   bool
	ContextArguments []ContextArgument
}

type ImplementsDirectiveArguments struct {
	Graph     string
	Interface string
}

type UnionMemberDirectiveArguments struct {
	Graph  string
	Member string
}

type EnumValueDirectiveArguments struct {
	Graph string
}

// GraphDirectiveArguments decodes a @join__graph application.
func (d *JoinSpecDefinition) GraphDirectiveArguments(application *schema.Directive) (GraphDirectiveArguments, error) {
	name, err := requiredStringArgument(application, nameArgument)
	if err != nil {
		return GraphDirectiveArguments{}, err
	}
	url, err := requiredStringArgument(application, urlArgument)
	if err != nil {
		return GraphDirectiveArguments{}, err
	}
	return GraphDirectiveArguments{Name: name, URL: url}, nil
}

// TypeDirectiveArguments decodes a @join__type application. Absent
// booleans take their definition defaults.
func (d *JoinSpecDefinition) TypeDirectiveArguments(application *schema.Directive) (TypeDirectiveArguments, error) {
	args := TypeDirectiveArguments{Resolvable: true}

	var err error
	if args.Graph, err = requiredEnumArgument(application, graphArgument); err != nil {
		return TypeDirectiveArguments{}, err
	}
	if args.Key, _, err = optionalStringArgument(application, keyArgument); err != nil {
		return TypeDirectiveArguments{}, err
	}

	flags := []struct {
		name   string
		target *bool
	}{
		{extensionArgument, &args.Extension},
		{resolvableArgument, &args.Resolvable},
		{isInterfaceObjectArgument, &args.IsInterfaceObject},
	}
	for _, flag := range flags {
		value, err := optionalBooleanArgument(application, flag.name)
		if err != nil {
			return TypeDirectiveArguments{}, err
		}
		if value != nil {
			*flag.target = *value
		}
	}
	return args, nil
}

// FieldDirectiveArguments decodes a @join__field application, including
// strict decoding of contextArguments.
func (d *JoinSpecDefinition) FieldDirectiveArguments(application *schema.Directive) (FieldDirectiveArguments, error) {
	var args FieldDirectiveArguments

	var err error
	if args.Graph, _, err = optionalEnumArgument(application, graphArgument); err != nil {
		return FieldDirectiveArguments{}, err
	}

	texts := []struct {
		name   string
		target *string
	}{
		{requiresArgument, &args.Requires},
		{providesArgument, &args.Provides},
		{typeArgument, &args.Type},
		{overrideArgument, &args.Override},
		{overrideLabelArgument, &args.OverrideLabel},
	}
	for _, s := range texts {
		if *s.target, _, err = optionalStringArgument(application, s.name); err != nil {
			return FieldDirectiveArguments{}, err
		}
	}

	flags := []struct {
		name   string
		target *bool
	}{
		{externalArgument, &args.External},
		{usedOverriddenArgument, &args.UsedOverridden},
	}
	for _, flag := range flags {
		value, err := optionalBooleanArgument(application, flag.name)
		if err != nil {
			return FieldDirectiveArguments{}, err
		}
		if value != nil {
			*flag.target = *value
		}
	}

	items, ok := optionalListArgument(application, contextArgumentsArgument)
	if ok {
		args.ContextArguments = make([]ContextArgument, 0, len(items))
		for _, item := range items {
			ca, err := decodeContextArgument(item)
			if err != nil {
				return FieldDirectiveArguments{}, err
			}
			args.ContextArguments = append(args.ContextArguments, ca)
		}
	}
	return args, nil
}

func decodeContextArgument(value *schema.Value) (ContextArgument, error) {
	if value.Kind != schema.ValueKindObject {
		return ContextArgument{}, internalf("item %s in contextArguments list is not an object", value)
	}

	seen := map[string]*schema.Value{}
	for _, field := range value.Fields {
		switch field.Name {
		case "name", "type", "context", "selection":
		default:
			return ContextArgument{}, internalf("found unknown contextArguments input field %q", field.Name)
		}
		if previous, ok := seen[field.Name]; ok {
			return ContextArgument{}, internalf("input field %q in contextArguments is repeated with value %s (previous value was %s)",
				field.Name, field.Value, previous)
		}
		seen[field.Name] = field.Value
	}

	fieldOrError := func(name string) (string, error) {
		v, ok := seen[name]
		if !ok {
			return "", internalf("input field %q is missing from contextArguments", name)
		}
		if v == nil || v.Kind != schema.ValueKindString {
			return "", internalf("input field %q in contextArguments is not a string", name)
		}
		return v.Raw, nil
	}

	var ca ContextArgument
	var err error
	if ca.Name, err = fieldOrError("name"); err != nil {
		return ContextArgument{}, err
	}
	if ca.Type, err = fieldOrError("type"); err != nil {
		return ContextArgument{}, err
	}
	if ca.Context, err = fieldOrError("context"); err != nil {
		return ContextArgument{}, err
	}
	if ca.Selection, err = fieldOrError("selection"); err != nil {
		return ContextArgument{}, err
	}
	return ca, nil
}

// ImplementsDirectiveArguments decodes a @join__implements application.
func (d *JoinSpecDefinition) ImplementsDirectiveArguments(application *schema.Directive) (ImplementsDirectiveArguments, error) {
	graph, err := requiredEnumArgument(application, graphArgument)
	if err != nil {
		return ImplementsDirectiveArguments{}, err
	}
	iface, err := requiredStringArgument(application, interfaceArgument)
	if err != nil {
		return ImplementsDirectiveArguments{}, err
	}
	return ImplementsDirectiveArguments{Graph: graph, Interface: iface}, nil
}

// UnionMemberDirectiveArguments decodes a @join__unionMember application.
func (d *JoinSpecDefinition) UnionMemberDirectiveArguments(application *schema.Directive) (UnionMemberDirectiveArguments, error) {
	graph, err := requiredEnumArgument(application, graphArgument)
	if err != nil {
		return UnionMemberDirectiveArguments{}, err
	}
	member, err := requiredStringArgument(application, memberArgument)
	if err != nil {
		return UnionMemberDirectiveArguments{}, err
	}
	return UnionMemberDirectiveArguments{Graph: graph, Member: member}, nil
}

// EnumValueDirectiveArguments decodes a @join__enumValue application.
func (d *JoinSpecDefinition) EnumValueDirectiveArguments(application *schema.Directive) (EnumValueDirectiveArguments, error) {
	graph, err := requiredEnumArgument(application, graphArgument)
	if err != nil {
		return EnumValueDirectiveArguments{}, err
	}
	return EnumValueDirectiveArguments{Graph: graph}, nil
}

// GraphDirective builds @join__graph(name:, url:).
func (d *JoinSpecDefinition) GraphDirective(args GraphDirectiveArguments) *schema.Directive {
	return schema.NewDirective(GraphDirectiveName,
		schema.NewArgument(nameArgument, schema.StringValue(args.Name)),
		schema.NewArgument(urlArgument, schema.StringValue(args.URL)),
	)
}

// TypeDirective builds @join__type. Arguments at their default value, or
// unknown to this version, are left out.
func (d *JoinSpecDefinition) TypeDirective(args TypeDirectiveArguments) *schema.Directive {
	directive := schema.NewDirective(TypeDirectiveName,
		schema.NewArgument(graphArgument, schema.EnumValue(args.Graph)))
	if args.Key != "" {
		d.appendArgument(directive, keyArgument, schema.StringValue(args.Key))
	}
	if args.Extension {
		d.appendArgument(directive, extensionArgument, schema.BooleanValue(true))
	}
	if !args.Resolvable {
		d.appendArgument(directive, resolvableArgument, schema.BooleanValue(false))
	}
	if args.IsInterfaceObject {
		d.appendArgument(directive, isInterfaceObjectArgument, schema.BooleanValue(true))
	}
	return directive
}

// FieldDirective builds @join__field with the non-empty arguments this
// version knows about.
func (d *JoinSpecDefinition) FieldDirective(args FieldDirectiveArguments) *schema.Directive {
	directive := schema.NewDirective(FieldDirectiveName)
	optional := []struct {
		name  string
		value string
	}{
		{graphArgument, args.Graph},
		{requiresArgument, args.Requires},
		{providesArgument, args.Provides},
		{typeArgument, args.Type},
	}
	for _, o := range optional {
		if o.value == "" {
			continue
		}
		if o.name == graphArgument {
			d.appendArgument(directive, o.name, schema.EnumValue(o.value))
			continue
		}
		d.appendArgument(directive, o.name, schema.StringValue(o.value))
	}
	if args.External {
		d.appendArgument(directive, externalArgument, schema.BooleanValue(true))
	}
	if args.Override != "" {
		d.appendArgument(directive, overrideArgument, schema.StringValue(args.Override))
	}
	if args.OverrideLabel != "" {
		d.appendArgument(directive, overrideLabelArgument, schema.StringValue(args.OverrideLabel))
	}
	if args.UsedOverridden {
		d.appendArgument(directive, usedOverriddenArgument, schema.BooleanValue(true))
	}
	if len(args.ContextArguments) > 0 {
		items := make([]*schema.Value, len(args.ContextArguments))
		for i, ca := range args.ContextArguments {
			items[i] = schema.ObjectValue(
				&schema.ObjectField{Name: "name", Value: schema.StringValue(ca.Name)},
				&schema.ObjectField{Name: "type", Value: schema.StringValue(ca.Type)},
				&schema.ObjectField{Name: "context", Value: schema.StringValue(ca.Context)},
				&schema.ObjectField{Name: "selection", Value: schema.StringValue(ca.Selection)},
			)
		}
		d.appendArgument(directive, contextArgumentsArgument, schema.ListValue(items...))
	}
	return directive
}

// ImplementsDirective builds @join__implements, or returns nil for
// versions without it.
func (d *JoinSpecDefinition) ImplementsDirective(args ImplementsDirectiveArguments) *schema.Directive {
	if d.version.Less(v02) {
		return nil
	}
	return schema.NewDirective(ImplementsDirectiveName,
		schema.NewArgument(graphArgument, schema.EnumValue(args.Graph)),
		schema.NewArgument(interfaceArgument, schema.StringValue(args.Interface)),
	)
}

// UnionMemberDirective builds @join__unionMember, or returns nil for
// versions without it.
func (d *JoinSpecDefinition) UnionMemberDirective(args UnionMemberDirectiveArguments) *schema.Directive {
	if d.version.Less(v03) {
		return nil
	}
	return schema.NewDirective(UnionMemberDirectiveName,
		schema.NewArgument(graphArgument, schema.EnumValue(args.Graph)),
		schema.NewArgument(memberArgument, schema.StringValue(args.Member)),
	)
}

// EnumValueDirective builds @join__enumValue, or returns nil for versions
// without it.
func (d *JoinSpecDefinition) EnumValueDirective(args EnumValueDirectiveArguments) *schema.Directive {
	if d.version.Less(v03) {
		return nil
	}
	return schema.NewDirective(EnumValueDirectiveName,
		schema.NewArgument(graphArgument, schema.EnumValue(args.Graph)))
}

func (d *JoinSpecDefinition) appendArgument(directive *schema.Directive, name string, value *schema.Value) {
	if !d.hasArgument(directive.Name, name) {
		return
	}
	directive.Arguments = append(directive.Arguments, schema.NewArgument(name, value))
}
