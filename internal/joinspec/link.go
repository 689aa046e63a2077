package joinspec

import (
	"strings"

	"github.com/okra-platform/fedcompose/internal/schema"
)

// LinkURL identifies the link spec version the installer bootstraps.
const LinkURL = "https://specs.apollo.dev/link/v1.0"

const (
	LinkDirectiveName    = "link"
	LinkPurposeEnumName  = "link__Purpose"
	LinkImportScalarName = "link__Import"
	PurposeSecurity      = "SECURITY"
	PurposeExecution     = "EXECUTION"

	linkAsArgument     = "as"
	linkForArgument    = "for"
	linkImportArgument = "import"
)

// linkPurposeEnum returns the link__Purpose enum.
func linkPurposeEnum() *schema.EnumType {
	return &schema.EnumType{
		Name: LinkPurposeEnumName,
		Values: []*schema.EnumValueDefinition{
			{
				Name:        PurposeSecurity,
				Description: "`SECURITY` features provide metadata necessary to securely resolve fields.",
			},
			{
				Name:        PurposeExecution,
				Description: "`EXECUTION` features provide metadata necessary for operation execution.",
			},
		},
	}
}

func linkImportScalar() *schema.ScalarType {
	return &schema.ScalarType{Name: LinkImportScalarName}
}

func linkDirectiveDefinition() *schema.DirectiveDefinition {
	return &schema.DirectiveDefinition{
		Name: LinkDirectiveName,
		Arguments: []*schema.InputValueDefinition{
			{Name: urlArgument, Type: schema.NamedType("String")},
			{Name: linkAsArgument, Type: schema.NamedType("String")},
			{Name: linkForArgument, Type: schema.NamedType(LinkPurposeEnumName)},
			{Name: linkImportArgument, Type: schema.ListType(schema.NamedType(LinkImportScalarName))},
		},
		Repeatable: true,
		Locations:  []schema.DirectiveLocation{schema.LocationSchema},
	}
}

// LinkApplication builds @link(url:, for:). purpose may be empty.
func LinkApplication(url, purpose string) *schema.Directive {
	d := schema.NewDirective(LinkDirectiveName, schema.NewArgument(urlArgument, schema.StringValue(url)))
	if purpose != "" {
		d.Arguments = append(d.Arguments, schema.NewArgument(linkForArgument, schema.EnumValue(purpose)))
	}
	return d
}

// IsLinkName reports whether name belongs to the link namespace or is the
// link directive itself.
func IsLinkName(name string) bool {
	return name == LinkDirectiveName || strings.HasPrefix(name, "link__")
}
