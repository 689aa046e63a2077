package compose

import (
	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
)

// mergeEnumType unions enum values. Each value records every subgraph
// declaring it with @join__enumValue.
func mergeEnumType(types *schema.TypeMap, diags *diagnostics, src source, def *schema.EnumType) {
	existing := types.Get(def.Name)
	if existing == nil {
		existing = &schema.EnumType{Name: def.Name, Description: def.Description}
		types.Set(existing)
	}

	target, ok := existing.(*schema.EnumType)
	if !ok {
		kindMismatch(diags, src, existing, def)
		return
	}

	target.Directives = appendDirective(target.Directives, typeDirective(src, schema.KindEnum, def.Extension))
	diags.mergeDescription(&target.Description, def.Description, def.Name, src.name())

	for _, value := range def.Values {
		merged := target.Value(value.Name)
		if merged == nil {
			merged = &schema.EnumValueDefinition{Name: value.Name}
			target.Values = append(target.Values, merged)
		}
		diags.mergeDescription(&merged.Description, value.Description, def.Name+"."+value.Name, src.name())
		merged.Directives = appendDirective(merged.Directives, src.join.EnumValueDirective(
			joinspec.EnumValueDirectiveArguments{Graph: src.token}))
	}
}
