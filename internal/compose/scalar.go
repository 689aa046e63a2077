package compose

import (
	"github.com/okra-platform/fedcompose/internal/schema"
)

// mergeScalarType records each subgraph declaring a custom scalar. Scalars
// have no structure to merge.
func mergeScalarType(types *schema.TypeMap, diags *diagnostics, src source, def *schema.ScalarType) {
	existing := types.Get(def.Name)
	if existing == nil {
		existing = &schema.ScalarType{Name: def.Name, Description: def.Description}
		types.Set(existing)
	}

	target, ok := existing.(*schema.ScalarType)
	if !ok {
		kindMismatch(diags, src, existing, def)
		return
	}

	target.Directives = appendDirective(target.Directives, typeDirective(src, schema.KindScalar, def.Extension))
	diags.mergeDescription(&target.Description, def.Description, def.Name, src.name())
}
