package schema

import "strings"

var builtInScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

var builtInDirectives = map[string]bool{
	"skip":        true,
	"include":     true,
	"deprecated":  true,
	"specifiedBy": true,
	"oneOf":       true,
}

// IsBuiltInType reports whether name is a specified scalar or an
// introspection type.
func IsBuiltInType(name string) bool {
	return builtInScalars[name] || strings.HasPrefix(name, "__")
}

// IsBuiltInDirective reports whether name is a directive every GraphQL
// schema provides implicitly.
func IsBuiltInDirective(name string) bool {
	return builtInDirectives[name]
}
