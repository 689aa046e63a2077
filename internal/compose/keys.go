package compose

import (
	"github.com/okra-platform/fedcompose/internal/schema"
)

// topLevelFields returns the field names selected at the top level of a
// field set such as "id organization { id }", in order and without
// duplicates. Nested selections are ignored.
func topLevelFields(fieldSet string) []string {
	var fields []string
	seen := map[string]bool{}
	depth := 0
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		name := fieldSet[start:end]
		start = -1
		if depth == 0 && !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	}

	for i := 0; i < len(fieldSet); i++ {
		c := fieldSet[i]
		switch {
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' && start >= 0:
			if start < 0 {
				start = i
			}
		case c == '{':
			flush(i)
			depth++
		case c == '}':
			flush(i)
			if depth > 0 {
				depth--
			}
		default:
			flush(i)
		}
	}
	flush(len(fieldSet))
	return fields
}

type entityKey struct {
	fields     string
	resolvable bool
}

// entityKeys reads the @key applications of a subgraph type. Repeated field
// sets are reported once.
func entityKeys(diags *diagnostics, coordinate, subgraphName string, directives schema.DirectiveList) ([]entityKey, map[string]bool) {
	var keys []entityKey
	keyFields := map[string]bool{}
	seen := map[string]bool{}

	for _, key := range directives.GetAll("key") {
		fields := key.Argument("fields")
		if fields == nil || fields.Kind != schema.ValueKindString {
			diags.errorf(CodeInvalidKey, "@key on %s in subgraph %q has no string fields argument", coordinate, subgraphName)
			continue
		}
		resolvable := true
		if r := key.Argument("resolvable"); r != nil && r.Kind == schema.ValueKindBoolean {
			resolvable = r.Bool
		}

		for _, name := range topLevelFields(fields.Raw) {
			keyFields[name] = true
		}
		if seen[fields.Raw] {
			continue
		}
		seen[fields.Raw] = true
		keys = append(keys, entityKey{fields: fields.Raw, resolvable: resolvable})
	}
	return keys, keyFields
}
