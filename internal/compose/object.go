package compose

import (
	"slices"

	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
)

// mergeObjectType merges an object type. An object marked @interfaceObject
// folds into the interface of the same name. The fold only runs one way: if
// an earlier subgraph already declared the name as a plain object, the
// @interfaceObject declaration is reported as TYPE_KIND_MISMATCH and the
// object is kept.
func mergeObjectType(types *schema.TypeMap, diags *diagnostics, src source, def *schema.ObjectType) {
	isInterfaceObject := def.Directives.Has("interfaceObject")

	existing := types.Get(def.Name)
	existed := existing != nil
	if existing == nil {
		if isInterfaceObject {
			existing = &schema.InterfaceType{Name: def.Name, Description: def.Description}
		} else {
			existing = &schema.ObjectType{Name: def.Name, Description: def.Description}
		}
		types.Set(existing)
	}

	switch target := existing.(type) {
	case *schema.ObjectType:
		if isInterfaceObject {
			diags.errorf(CodeTypeKindMismatch,
				"type %q is marked @interfaceObject in subgraph %q but is declared as an object in an earlier subgraph",
				def.Name, src.name())
			return
		}
		keys, keyFields := entityKeys(diags, def.Name, src.name(), def.Directives)
		for _, d := range keyedTypeDirectives(src, keys, def.Extension, false) {
			target.Directives = appendDirective(target.Directives, d)
		}
		diags.mergeDescription(&target.Description, def.Description, def.Name, src.name())
		target.Interfaces = mergeImplements(src, target.Interfaces, &target.Directives, def.Interfaces)
		mergeFields(diags, src, def.Name, &target.Fields, def.Fields, existed, fieldRules{
			keyFields:  keyFields,
			joinFields: len(keyFields) > 0 || src.isRootOperationType(def.Name),
		})
	case *schema.InterfaceType:
		if !isInterfaceObject {
			kindMismatch(diags, src, existing, def)
			return
		}
		keys, keyFields := entityKeys(diags, def.Name, src.name(), def.Directives)
		for _, d := range keyedTypeDirectives(src, keys, def.Extension, true) {
			target.Directives = appendDirective(target.Directives, d)
		}
		diags.mergeDescription(&target.Description, def.Description, def.Name, src.name())
		target.Interfaces = mergeImplements(src, target.Interfaces, &target.Directives, def.Interfaces)
		mergeFields(diags, src, def.Name, &target.Fields, def.Fields, existed, fieldRules{
			keyFields:  keyFields,
			joinFields: len(keyFields) > 0,
		})
	default:
		kindMismatch(diags, src, existing, def)
	}
}

// mergeImplements unions the implemented interfaces and records one
// @join__implements per interface src declares.
func mergeImplements(src source, merged []string, directives *schema.DirectiveList, incoming []string) []string {
	for _, iface := range incoming {
		if !slices.Contains(merged, iface) {
			merged = append(merged, iface)
		}
		*directives = appendDirective(*directives, src.join.ImplementsDirective(joinspec.ImplementsDirectiveArguments{
			Graph:     src.token,
			Interface: iface,
		}))
	}
	return merged
}
