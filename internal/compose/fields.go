package compose

import (
	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
)

// fieldRules controls how mergeFields treats one subgraph's fields.
type fieldRules struct {
	// keyFields are left without @join__field.
	keyFields map[string]bool
	// joinFields adds @join__field(graph:) to every non-key field.
	joinFields bool
	// presenceHint, when set, is the hint code for fields present on only
	// one side of an already merged type.
	presenceHint string
}

// mergeFields folds incoming into target. existed tells whether the owning
// type was merged from an earlier subgraph.
func mergeFields(diags *diagnostics, src source, typeName string, target *schema.FieldList, incoming schema.FieldList, existed bool, rules fieldRules) {
	var previous []string
	if existed {
		for _, f := range *target {
			previous = append(previous, f.Name)
		}
	}

	for _, field := range incoming {
		if federationQueryFields[field.Name] {
			continue
		}
		coordinate := typeName + "." + field.Name

		merged := target.Get(field.Name)
		if merged == nil {
			merged = copyField(field)
			*target = append(*target, merged)
			if existed && rules.presenceHint != "" {
				diags.hintf(rules.presenceHint,
					"field %s is declared in subgraph %q but not in every earlier subgraph declaring %s",
					coordinate, src.name(), typeName)
			}
		} else {
			diags.mergeDescription(&merged.Description, field.Description, coordinate, src.name())
			checkType(diags, src, coordinate, merged.Type, field.Type)
			mergeArguments(diags, src, coordinate, merged, field)
		}

		if rules.joinFields && !rules.keyFields[field.Name] &&
			(src.join.FieldDirectiveRepeatable() || !merged.Directives.Has(joinspec.FieldDirectiveName)) {
			merged.Directives = append(merged.Directives, src.join.FieldDirective(fieldDirectiveArguments(src, field)))
		}
	}

	if rules.presenceHint == "" {
		return
	}
	for _, name := range previous {
		if federationQueryFields[name] || incoming.Get(name) != nil {
			continue
		}
		diags.hintf(rules.presenceHint,
			"field %s.%s is not declared in subgraph %q", typeName, name, src.name())
	}
}

func fieldDirectiveArguments(src source, field *schema.FieldDefinition) joinspec.FieldDirectiveArguments {
	args := joinspec.FieldDirectiveArguments{
		Graph:    src.token,
		External: field.Directives.Has("external"),
	}
	args.Requires = stringDirectiveArgument(field.Directives, "requires", "fields")
	args.Provides = stringDirectiveArgument(field.Directives, "provides", "fields")
	args.Override = stringDirectiveArgument(field.Directives, "override", "from")
	args.OverrideLabel = stringDirectiveArgument(field.Directives, "override", "label")
	return args
}

func stringDirectiveArgument(directives schema.DirectiveList, directive, argument string) string {
	d := directives.Get(directive)
	if d == nil {
		return ""
	}
	v := d.Argument(argument)
	if v == nil || v.Kind != schema.ValueKindString {
		return ""
	}
	return v.Raw
}

// checkType compares a merged type reference with a subgraph's. Types that
// differ only in nullability are a hint, anything else is fatal.
func checkType(diags *diagnostics, src source, coordinate string, merged, incoming *schema.Type) {
	if merged.Equal(incoming) {
		return
	}
	if merged.Nullable().Equal(incoming.Nullable()) {
		diags.hintf(HintInconsistentFieldType,
			"%s has type %s in subgraph %q but %s in an earlier subgraph",
			coordinate, incoming, src.name(), merged)
		return
	}
	diags.errorf(CodeFieldTypeMismatch,
		"%s has incompatible types: %s in subgraph %q and %s in an earlier subgraph",
		coordinate, incoming, src.name(), merged)
}

func mergeArguments(diags *diagnostics, src source, coordinate string, merged, incoming *schema.FieldDefinition) {
	previous := make([]string, len(merged.Arguments))
	for i, arg := range merged.Arguments {
		previous[i] = arg.Name
	}

	for _, arg := range incoming.Arguments {
		argCoordinate := coordinate + "(" + arg.Name + ":)"
		existing := merged.Argument(arg.Name)
		if existing == nil {
			merged.Arguments = append(merged.Arguments, copyInputValue(arg))
			diags.hintf(HintInconsistentArgumentPresence,
				"argument %s is declared in subgraph %q but not in an earlier subgraph", argCoordinate, src.name())
			continue
		}
		diags.mergeDescription(&existing.Description, arg.Description, argCoordinate, src.name())
		checkType(diags, src, argCoordinate, existing.Type, arg.Type)
	}

	for _, name := range previous {
		if incoming.Argument(name) == nil {
			diags.hintf(HintInconsistentArgumentPresence,
				"argument %s(%s:) is not declared in subgraph %q", coordinate, name, src.name())
		}
	}
}

// copyField copies a subgraph field without its directives.
func copyField(field *schema.FieldDefinition) *schema.FieldDefinition {
	out := &schema.FieldDefinition{
		Name:        field.Name,
		Description: field.Description,
		Type:        field.Type,
	}
	for _, arg := range field.Arguments {
		out.Arguments = append(out.Arguments, copyInputValue(arg))
	}
	return out
}

func copyInputValue(v *schema.InputValueDefinition) *schema.InputValueDefinition {
	return &schema.InputValueDefinition{
		Name:         v.Name,
		Description:  v.Description,
		Type:         v.Type,
		DefaultValue: v.DefaultValue,
	}
}
