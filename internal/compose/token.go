package compose

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var nameRegex = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

var ErrInvalidToken = errors.New("subgraph name cannot be transformed into a valid GraphQL name")

// DeriveToken returns the join__Graph enum value standing in for the
// subgraph named name: the upper-cased name, which must be a GraphQL name.
func DeriveToken(name string) (string, error) {
	token := strings.ToUpper(name)
	if !nameRegex.MatchString(token) {
		return "", fmt.Errorf("%w: %q", ErrInvalidToken, name)
	}
	return token, nil
}
