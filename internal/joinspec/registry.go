package joinspec

import (
	"fmt"
	"strings"

	"github.com/okra-platform/fedcompose/internal/schema"
)

// CompositionVersion is the join spec version composition emits.
var CompositionVersion = v03

// Registry holds the known join spec definitions, ordered by version.
type Registry struct {
	definitions []*JoinSpecDefinition
}

// NewRegistry returns a registry of the given versions. Versions must be
// passed in ascending order.
func NewRegistry(versions ...Version) *Registry {
	r := &Registry{}
	for _, v := range versions {
		r.definitions = append(r.definitions, NewJoinSpecDefinition(v))
	}
	return r
}

// JoinVersions covers every join spec version this module reads.
var JoinVersions = NewRegistry(v01, v02, v03, v04, v05)

// Lookup returns the definition for exactly version.
func (r *Registry) Lookup(version Version) (*JoinSpecDefinition, error) {
	for _, def := range r.definitions {
		if def.version == version {
			return def, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
}

// Latest returns the highest registered version.
func (r *Registry) Latest() *JoinSpecDefinition {
	if len(r.definitions) == 0 {
		return nil
	}
	return r.definitions[len(r.definitions)-1]
}

// Versions lists the registered versions in ascending order.
func (r *Registry) Versions() []Version {
	out := make([]Version, len(r.definitions))
	for i, def := range r.definitions {
		out[i] = def.version
	}
	return out
}

// FromSchema finds the join spec linked by s through @link(url:) on its
// schema definition and returns the matching definition.
func (r *Registry) FromSchema(s *schema.Schema) (*JoinSpecDefinition, error) {
	for _, link := range s.Directives.GetAll(LinkDirectiveName) {
		url, ok, err := optionalStringArgument(link, urlArgument)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rest, found := strings.CutPrefix(url, JoinIdentity+"/")
		if !found {
			continue
		}
		version, err := ParseVersion(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, err)
		}
		return r.Lookup(version)
	}
	return nil, ErrJoinSpecNotLinked
}
