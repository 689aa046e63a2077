package joinspec

import (
	"fmt"

	"github.com/okra-platform/fedcompose/internal/schema"
)

// Graph is one join__Graph entry: the enum token standing in for a
// subgraph, with the subgraph's original name and routing URL.
type Graph struct {
	Token string
	Name  string
	URL   string
}

// Installer seeds a supergraph with the link and join core features.
type Installer struct {
	join *JoinSpecDefinition
}

func NewInstaller(join *JoinSpecDefinition) *Installer {
	return &Installer{join: join}
}

// Install adds, in order: the link spec @link, the link__Purpose enum, the
// link__Import scalar and the link directive; the join spec @link; the
// join scalars and directive definitions; and the join__Graph enum with one
// value per graph. graphs must already be in their final order.
func (i *Installer) Install(s *schema.Schema, graphs []Graph) error {
	for _, link := range s.Directives.GetAll(LinkDirectiveName) {
		if url := link.Argument(urlArgument); url != nil && url.Raw == LinkURL {
			return ErrAlreadyInstalled
		}
	}

	graphEnum := &schema.EnumType{Name: GraphEnumName}
	for _, g := range graphs {
		if graphEnum.Value(g.Token) != nil {
			return fmt.Errorf("%w: %s (subgraph %s)", ErrDuplicateToken, g.Token, g.Name)
		}
		graphEnum.Values = append(graphEnum.Values, &schema.EnumValueDefinition{
			Name: g.Token,
			Directives: schema.DirectiveList{
				i.join.GraphDirective(GraphDirectiveArguments{Name: g.Name, URL: g.URL}),
			},
		})
	}

	s.Directives = append(s.Directives, LinkApplication(LinkURL, ""))
	s.Types.Set(linkPurposeEnum())
	s.Types.Set(linkImportScalar())
	if !s.DirectiveDefinitions.Add(linkDirectiveDefinition()) {
		return internalf("directive @%s is already defined", LinkDirectiveName)
	}

	s.Directives = append(s.Directives, LinkApplication(i.join.URL(), PurposeExecution))
	for _, def := range i.join.TypeDefinitions() {
		s.Types.Set(def)
	}
	for _, def := range i.join.DirectiveDefinitions() {
		if !s.DirectiveDefinitions.Add(def) {
			return internalf("directive @%s is already defined", def.Name)
		}
	}

	s.Types.Set(graphEnum)
	return nil
}
