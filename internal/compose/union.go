package compose

import (
	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
)

func mergeUnionType(types *schema.TypeMap, diags *diagnostics, src source, def *schema.UnionType) {
	existing := types.Get(def.Name)
	if existing == nil {
		existing = &schema.UnionType{Name: def.Name, Description: def.Description}
		types.Set(existing)
	}

	target, ok := existing.(*schema.UnionType)
	if !ok {
		kindMismatch(diags, src, existing, def)
		return
	}

	target.Directives = appendDirective(target.Directives, typeDirective(src, schema.KindUnion, def.Extension))
	diags.mergeDescription(&target.Description, def.Description, def.Name, src.name())

	for _, member := range def.Members {
		if !target.HasMember(member) {
			target.Members = append(target.Members, member)
		}
		target.Directives = appendDirective(target.Directives, src.join.UnionMemberDirective(
			joinspec.UnionMemberDirectiveArguments{Graph: src.token, Member: member}))
	}
}
