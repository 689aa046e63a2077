package schema

import (
	"regexp"
	"strings"
)

// federationDirectiveRegex matches applications of namespaced federation
// directives such as @federation__key. Type names like federation__Scope are
// not preceded by '@' and are left alone.
var federationDirectiveRegex = regexp.MustCompile(`@federation__([_A-Za-z][_0-9A-Za-z]*)`)

// PreprocessSDL normalizes subgraph SDL before parsing: it drops a leading
// byte order mark and rewrites namespaced federation directive applications
// to their bare names, so @federation__key and @key read the same.
func PreprocessSDL(input string) string {
	input = strings.TrimPrefix(input, "\ufeff")
	return federationDirectiveRegex.ReplaceAllString(input, "@$1")
}
