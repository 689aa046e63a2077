package compose

import (
	"github.com/okra-platform/fedcompose/internal/schema"
)

func mergeInterfaceType(types *schema.TypeMap, diags *diagnostics, src source, def *schema.InterfaceType) {
	existing := types.Get(def.Name)
	existed := existing != nil
	if existing == nil {
		existing = &schema.InterfaceType{Name: def.Name, Description: def.Description}
		types.Set(existing)
	}

	target, ok := existing.(*schema.InterfaceType)
	if !ok {
		kindMismatch(diags, src, existing, def)
		return
	}

	keys, keyFields := entityKeys(diags, def.Name, src.name(), def.Directives)
	for _, d := range keyedTypeDirectives(src, keys, def.Extension, false) {
		target.Directives = appendDirective(target.Directives, d)
	}
	diags.mergeDescription(&target.Description, def.Description, def.Name, src.name())
	target.Interfaces = mergeImplements(src, target.Interfaces, &target.Directives, def.Interfaces)
	mergeFields(diags, src, def.Name, &target.Fields, def.Fields, existed, fieldRules{
		keyFields:    keyFields,
		joinFields:   len(keyFields) > 0,
		presenceHint: HintInconsistentInterfaceField,
	})
}
