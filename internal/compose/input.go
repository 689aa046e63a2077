package compose

import (
	"github.com/okra-platform/fedcompose/internal/schema"
)

// mergeInputObjectType unions input fields by name. Fields missing from
// some subgraphs are kept and reported as hints.
func mergeInputObjectType(types *schema.TypeMap, diags *diagnostics, src source, def *schema.InputObjectType) {
	existing := types.Get(def.Name)
	existed := existing != nil
	if existing == nil {
		existing = &schema.InputObjectType{Name: def.Name, Description: def.Description}
		types.Set(existing)
	}

	target, ok := existing.(*schema.InputObjectType)
	if !ok {
		kindMismatch(diags, src, existing, def)
		return
	}

	target.Directives = appendDirective(target.Directives, typeDirective(src, schema.KindInputObject, def.Extension))
	diags.mergeDescription(&target.Description, def.Description, def.Name, src.name())

	previous := make([]string, len(target.Fields))
	for i, f := range target.Fields {
		previous[i] = f.Name
	}

	for _, field := range def.Fields {
		coordinate := def.Name + "." + field.Name
		merged := target.Field(field.Name)
		if merged == nil {
			target.Fields = append(target.Fields, copyInputValue(field))
			if existed {
				diags.hintf(HintInconsistentInputObjectField,
					"input field %s is declared in subgraph %q but not in every earlier subgraph declaring %s",
					coordinate, src.name(), def.Name)
			}
			continue
		}
		diags.mergeDescription(&merged.Description, field.Description, coordinate, src.name())
		checkType(diags, src, coordinate, merged.Type, field.Type)
	}

	for _, name := range previous {
		if def.Field(name) == nil {
			diags.hintf(HintInconsistentInputObjectField,
				"input field %s.%s is not declared in subgraph %q", def.Name, name, src.name())
		}
	}
}
