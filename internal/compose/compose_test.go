package compose

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
	"github.com/okra-platform/fedcompose/internal/subgraph"
)

func mustSubgraph(t *testing.T, name, sdl string) *subgraph.Subgraph {
	t.Helper()
	sg, err := subgraph.New(name, "http://"+name+":4000/graphql", sdl)
	require.NoError(t, err)
	return sg
}

func mustCompose(t *testing.T, subgraphs ...*subgraph.Subgraph) *Success {
	t.Helper()
	result, err := MergeSubgraphs(subgraphs)
	require.NoError(t, err)
	return result
}

func mustFail(t *testing.T, subgraphs ...*subgraph.Subgraph) *Failure {
	t.Helper()
	_, err := MergeSubgraphs(subgraphs)
	require.Error(t, err)
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	return failure
}

func directiveStrings(list schema.DirectiveList) []string {
	out := []string{}
	for _, d := range list {
		out = append(out, d.String())
	}
	return out
}

func hintCodes(hints []Hint) []string {
	out := []string{}
	for _, h := range hints {
		out = append(out, h.Code)
	}
	return out
}

func errorCodes(errs []Error) []string {
	out := []string{}
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func object(t *testing.T, s *schema.Schema, name string) *schema.ObjectType {
	t.Helper()
	obj, ok := s.Types.Get(name).(*schema.ObjectType)
	require.True(t, ok, "expected object type %s", name)
	return obj
}

const accountsSDL = `
type Query {
  me: User
}

type User @key(fields: "id") {
  id: ID!
  name: String
}
`

const productsSDL = `
type Query {
  topProducts(first: Int = 5): [Product]
}

type Product @key(fields: "upc") {
  upc: String!
  price: Int
}

type User @key(fields: "id") {
  id: ID!
  purchases: [Product]
}
`

const reviewsSDL = `
type Review {
  body: String
  author: User @provides(fields: "name")
}

type User @key(fields: "id") {
  id: ID!
  name: String @external
  reviews: [Review]
}

type Product @key(fields: "upc") {
  upc: String!
  reviews: [Review]
}

enum Rating {
  GOOD
  BAD
}
`

func TestMergeSubgraphs_Golden(t *testing.T) {
	result := mustCompose(t, mustSubgraph(t, "accounts", accountsSDL))

	want := `schema
  @link(url: "https://specs.apollo.dev/link/v1.0")
  @link(url: "https://specs.apollo.dev/join/v0.3", for: EXECUTION)
{
  query: Query
}

directive @link(url: String, as: String, for: link__Purpose, import: [link__Import]) repeatable on SCHEMA

directive @join__graph(name: String!, url: String!) on ENUM_VALUE

directive @join__type(graph: join__Graph!, key: join__FieldSet, extension: Boolean! = false, resolvable: Boolean! = true, isInterfaceObject: Boolean! = false) repeatable on OBJECT | INTERFACE | UNION | ENUM | INPUT_OBJECT | SCALAR

directive @join__field(graph: join__Graph, requires: join__FieldSet, provides: join__FieldSet, type: String, external: Boolean, override: String, usedOverridden: Boolean) repeatable on FIELD_DEFINITION | INPUT_FIELD_DEFINITION

directive @join__implements(graph: join__Graph!, interface: String!) repeatable on OBJECT | INTERFACE

directive @join__unionMember(graph: join__Graph!, member: String!) repeatable on UNION

directive @join__enumValue(graph: join__Graph!) repeatable on ENUM_VALUE

enum link__Purpose {
  "` + "`SECURITY`" + ` features provide metadata necessary to securely resolve fields."
  SECURITY
  "` + "`EXECUTION`" + ` features provide metadata necessary for operation execution."
  EXECUTION
}

scalar link__Import

scalar join__FieldSet

enum join__Graph {
  ACCOUNTS @join__graph(name: "accounts", url: "http://accounts:4000/graphql")
}

type Query
  @join__type(graph: ACCOUNTS)
{
  me: User @join__field(graph: ACCOUNTS)
}

type User
  @join__type(graph: ACCOUNTS, key: "id")
{
  id: ID!
  name: String @join__field(graph: ACCOUNTS)
}
`
	if diff := cmp.Diff(want, schema.Print(result.Schema)); diff != "" {
		t.Errorf("printed supergraph mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSubgraphs_Determinism(t *testing.T) {
	// Test plan:
	// - Compose the same three subgraphs in every input order
	// - The printed supergraph and the hints are identical each time

	accounts := mustSubgraph(t, "accounts", accountsSDL)
	products := mustSubgraph(t, "products", productsSDL)
	reviews := mustSubgraph(t, "reviews", reviewsSDL)

	orders := [][]*subgraph.Subgraph{
		{accounts, products, reviews},
		{accounts, reviews, products},
		{products, accounts, reviews},
		{products, reviews, accounts},
		{reviews, accounts, products},
		{reviews, products, accounts},
	}

	baseline := mustCompose(t, orders[0]...)
	want := schema.Print(baseline.Schema)
	for _, order := range orders[1:] {
		result := mustCompose(t, order...)
		if diff := cmp.Diff(want, schema.Print(result.Schema)); diff != "" {
			t.Errorf("supergraph depends on input order (-want +got):\n%s", diff)
		}
		assert.Equal(t, hintCodes(baseline.Hints), hintCodes(result.Hints))
	}
}

func TestMergeSubgraphs_DoesNotMutateInputs(t *testing.T) {
	accounts := mustSubgraph(t, "accounts", accountsSDL)
	reviews := mustSubgraph(t, "reviews", reviewsSDL)
	before := schema.Print(accounts.Schema) + schema.Print(reviews.Schema)

	mustCompose(t, accounts, reviews)

	assert.Equal(t, before, schema.Print(accounts.Schema)+schema.Print(reviews.Schema))
}

func TestDeriveToken(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "accounts", want: "ACCOUNTS"},
		{name: "product_catalog", want: "PRODUCT_CATALOG"},
		{name: "_internal2", want: "_INTERNAL2"},
		{name: "1bad", wantErr: true},
		{name: "has-dash", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveToken(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeSubgraphs_TokenFailures(t *testing.T) {
	// Test plan:
	// - An invalid subgraph name aborts with no schema
	// - Two names that upper-case to the same token abort with no schema

	t.Run("invalid name", func(t *testing.T) {
		failure := mustFail(t,
			mustSubgraph(t, "1bad", `type Query { a: Int }`),
			mustSubgraph(t, "good", `type Query { b: Int }`),
		)
		assert.Nil(t, failure.Schema)
		assert.Equal(t, []string{CodeInvalidSubgraphName}, errorCodes(failure.Errors))
		assert.Contains(t, failure.Error(), "1bad")
	})

	t.Run("token collision", func(t *testing.T) {
		failure := mustFail(t,
			mustSubgraph(t, "accounts", `type Query { a: Int }`),
			mustSubgraph(t, "Accounts", `type Query { b: Int }`),
		)
		assert.Nil(t, failure.Schema)
		assert.Equal(t, []string{CodeDuplicateGraphToken}, errorCodes(failure.Errors))
	})

	t.Run("nil subgraph", func(t *testing.T) {
		_, err := MergeSubgraphs([]*subgraph.Subgraph{nil})
		var failure *Failure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, []string{CodeInvalidSubgraph}, errorCodes(failure.Errors))
	})
}

func TestMergeSubgraphs_KeyPropagation(t *testing.T) {
	result := mustCompose(t,
		mustSubgraph(t, "b", `type Product @key(fields: "id") { id: ID! name: String }`),
		mustSubgraph(t, "a", `type Product @key(fields: "id") { id: ID! }`),
	)

	product := object(t, result.Schema, "Product")
	assert.Equal(t, []string{
		`@join__type(graph: A, key: "id")`,
		`@join__type(graph: B, key: "id")`,
	}, directiveStrings(product.Directives))
	assert.Empty(t, product.Fields.Get("id").Directives)
	assert.Equal(t, []string{`@join__field(graph: B)`}, directiveStrings(product.Fields.Get("name").Directives))
	assert.Empty(t, result.Hints)
}

func TestMergeSubgraphs_KeyVariants(t *testing.T) {
	// Test plan:
	// - Several keys produce one @join__type each, repeated keys only once
	// - resolvable: false is carried over
	// - Nested key selections only exclude their top-level field

	result := mustCompose(t, mustSubgraph(t, "inventory", `
type Product @key(fields: "upc") @key(fields: "sku organization { id }") @key(fields: "upc") {
  upc: String!
  sku: String!
  organization: Organization
  stock: Int
}

type Organization @key(fields: "id", resolvable: false) {
  id: ID!
}
`))

	product := object(t, result.Schema, "Product")
	assert.Equal(t, []string{
		`@join__type(graph: INVENTORY, key: "upc")`,
		`@join__type(graph: INVENTORY, key: "sku organization { id }")`,
	}, directiveStrings(product.Directives))
	for _, keyField := range []string{"upc", "sku", "organization"} {
		assert.Empty(t, product.Fields.Get(keyField).Directives, keyField)
	}
	assert.Equal(t, []string{`@join__field(graph: INVENTORY)`}, directiveStrings(product.Fields.Get("stock").Directives))

	organization := object(t, result.Schema, "Organization")
	assert.Equal(t, []string{
		`@join__type(graph: INVENTORY, key: "id", resolvable: false)`,
	}, directiveStrings(organization.Directives))
}

func TestTopLevelFields(t *testing.T) {
	tests := []struct {
		fieldSet string
		want     []string
	}{
		{"id", []string{"id"}},
		{"id sku", []string{"id", "sku"}},
		{"  id,\tsku  ", []string{"id", "sku"}},
		{"organization { id name } upc", []string{"organization", "upc"}},
		{"a { b { c } } d", []string{"a", "d"}},
		{"id id", []string{"id"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.fieldSet, func(t *testing.T) {
			assert.Equal(t, tt.want, topLevelFields(tt.fieldSet))
		})
	}
}

func TestMergeSubgraphs_JoinFieldArguments(t *testing.T) {
	result := mustCompose(t,
		mustSubgraph(t, "reviews", reviewsSDL),
		mustSubgraph(t, "shipping", `
type Product @key(fields: "upc") {
  upc: String!
  weight: Int @external
  shippingEstimate: Int @requires(fields: "weight")
  carrier: String @override(from: "legacy")
}
`),
	)

	user := object(t, result.Schema, "User")
	assert.Equal(t, []string{`@join__field(graph: REVIEWS, external: true)`}, directiveStrings(user.Fields.Get("name").Directives))

	product := object(t, result.Schema, "Product")
	assert.Equal(t, []string{`@join__field(graph: SHIPPING, external: true)`}, directiveStrings(product.Fields.Get("weight").Directives))
	assert.Equal(t, []string{`@join__field(graph: SHIPPING, requires: "weight")`}, directiveStrings(product.Fields.Get("shippingEstimate").Directives))
	assert.Equal(t, []string{`@join__field(graph: SHIPPING, override: "legacy")`}, directiveStrings(product.Fields.Get("carrier").Directives))

	// Review has no key and is not a root type, so its fields stay undecorated.
	review := object(t, result.Schema, "Review")
	assert.Equal(t, []string{`@join__type(graph: REVIEWS)`}, directiveStrings(review.Directives))
	assert.Empty(t, review.Fields.Get("author").Directives)
}

func TestMergeSubgraphs_RootOperationFields(t *testing.T) {
	result := mustCompose(t,
		mustSubgraph(t, "a", `
type Query { a: Int }
type Mutation { setA(value: Int): Int }
`),
		mustSubgraph(t, "b", `type Query { b: Int }`),
	)

	assert.Equal(t, "Query", result.Schema.QueryType)
	assert.Equal(t, "Mutation", result.Schema.MutationType)

	query := object(t, result.Schema, "Query")
	assert.Equal(t, []string{`@join__field(graph: A)`}, directiveStrings(query.Fields.Get("a").Directives))
	assert.Equal(t, []string{`@join__field(graph: B)`}, directiveStrings(query.Fields.Get("b").Directives))

	mutation := object(t, result.Schema, "Mutation")
	assert.Equal(t, []string{`@join__field(graph: A)`}, directiveStrings(mutation.Fields.Get("setA").Directives))
}

func TestMergeSubgraphs_EntityFieldExclusion(t *testing.T) {
	result := mustCompose(t, mustSubgraph(t, "accounts", `
scalar _Any
scalar _FieldSet
union _Entity = User
type _Service { sdl: String }

type Query {
  _service: _Service!
  _entities(representations: [_Any!]!): [_Entity]!
  me: User
}

type User @key(fields: "id") {
  id: ID!
}
`))

	query := object(t, result.Schema, "Query")
	require.Len(t, query.Fields, 1)
	assert.Equal(t, "me", query.Fields[0].Name)

	for _, name := range []string{"_Any", "_Entity", "_Service", "_FieldSet"} {
		assert.Nil(t, result.Schema.Types.Get(name), name)
	}
}

func TestMergeSubgraphs_FederationInternalExclusion(t *testing.T) {
	result := mustCompose(t, mustSubgraph(t, "accounts", `
scalar federation__Scope
scalar link__Import
enum link__Purpose { SECURITY EXECUTION }

type Query { me: String }
`))

	assert.Nil(t, result.Schema.Types.Get("federation__Scope"))
	purpose, ok := result.Schema.Types.Get("link__Purpose").(*schema.EnumType)
	require.True(t, ok)
	assert.Empty(t, purpose.Directives, "bootstrap link__Purpose must not receive subgraph directives")
}

func TestMergeSubgraphs_InterfaceObjectFolding(t *testing.T) {
	// Test plan:
	// - The interface and the @interfaceObject object fold into one interface
	//   whichever subgraph is merged first
	// - The @interfaceObject subgraph's @join__type has isInterfaceObject: true
	// - No object type named Node is produced

	interfaceSDL := `
interface Node @key(fields: "id") {
  id: ID!
}

type Book implements Node @key(fields: "id") {
  id: ID!
  title: String
}
`
	interfaceObjectSDL := `
type Node @key(fields: "id") @interfaceObject {
  id: ID!
  reviews: [String]
}
`

	tests := []struct {
		name         string
		subgraphs    func(t *testing.T) []*subgraph.Subgraph
		wantTypeDirs []string
		reviewsGraph string
	}{
		{
			name: "interface merged first",
			subgraphs: func(t *testing.T) []*subgraph.Subgraph {
				return []*subgraph.Subgraph{
					mustSubgraph(t, "books", interfaceSDL),
					mustSubgraph(t, "reviews", interfaceObjectSDL),
				}
			},
			wantTypeDirs: []string{
				`@join__type(graph: BOOKS, key: "id")`,
				`@join__type(graph: REVIEWS, key: "id", isInterfaceObject: true)`,
			},
			reviewsGraph: "REVIEWS",
		},
		{
			name: "interface object merged first",
			subgraphs: func(t *testing.T) []*subgraph.Subgraph {
				return []*subgraph.Subgraph{
					mustSubgraph(t, "alpha", interfaceObjectSDL),
					mustSubgraph(t, "books", interfaceSDL),
				}
			},
			wantTypeDirs: []string{
				`@join__type(graph: ALPHA, key: "id", isInterfaceObject: true)`,
				`@join__type(graph: BOOKS, key: "id")`,
			},
			reviewsGraph: "ALPHA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MergeSubgraphs(tt.subgraphs(t))
			require.NoError(t, err)

			node, ok := result.Schema.Types.Get("Node").(*schema.InterfaceType)
			require.True(t, ok, "Node must be an interface")
			assert.Equal(t, tt.wantTypeDirs, directiveStrings(node.Directives))
			assert.Empty(t, node.Fields.Get("id").Directives)
			assert.Equal(t, []string{`@join__field(graph: ` + tt.reviewsGraph + `)`},
				directiveStrings(node.Fields.Get("reviews").Directives))

			book := object(t, result.Schema, "Book")
			assert.Equal(t, []string{"Node"}, book.Interfaces)
			assert.Contains(t, directiveStrings(book.Directives), `@join__implements(graph: BOOKS, interface: "Node")`)
		})
	}
}

func TestMergeSubgraphs_EmptyInput(t *testing.T) {
	result, err := MergeSubgraphs(nil)
	require.NoError(t, err)

	s := result.Schema
	assert.Equal(t, []string{"link__Purpose", "link__Import", "join__FieldSet", "join__Graph"}, s.Types.Names())

	graphEnum, ok := s.Types.Get("join__Graph").(*schema.EnumType)
	require.True(t, ok)
	assert.Empty(t, graphEnum.Values)

	for _, name := range []string{
		"link", "join__graph", "join__type", "join__field", "join__implements", "join__unionMember", "join__enumValue",
	} {
		assert.NotNil(t, s.DirectiveDefinitions.Get(name), name)
	}
	assert.Equal(t, 7, s.DirectiveDefinitions.Len())
	assert.Empty(t, s.RootOperationTypes())
	assert.Empty(t, result.Hints)
}

func TestMergeSubgraphs_ExecutableDirectives(t *testing.T) {
	// Test plan:
	// - Identical executable directives appear once
	// - Type-system directives and built-ins are not copied
	// - A differing definition keeps the first one and produces a hint

	a := mustSubgraph(t, "a", `
directive @cached(ttl: Int = 60) on FIELD | QUERY
directive @key(fields: String!) repeatable on OBJECT
directive @skip(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
type Query { a: Int }
`)
	b := mustSubgraph(t, "b", `
directive @cached(ttl: Int = 60) on QUERY | FIELD
type Query { b: Int }
`)
	c := mustSubgraph(t, "c", `
directive @cached(ttl: String) on FIELD
type Query { c: Int }
`)

	result := mustCompose(t, a, b)
	cached := result.Schema.DirectiveDefinitions.Get("cached")
	require.NotNil(t, cached)
	assert.Equal(t, 8, result.Schema.DirectiveDefinitions.Len())
	assert.Nil(t, result.Schema.DirectiveDefinitions.Get("key"))
	assert.Nil(t, result.Schema.DirectiveDefinitions.Get("skip"))
	assert.Empty(t, result.Hints)

	result = mustCompose(t, a, b, c)
	assert.Equal(t, "Int", result.Schema.DirectiveDefinitions.Get("cached").Argument("ttl").Type.String())
	assert.Equal(t, []string{HintInconsistentExecutableDirectiveDefinition}, hintCodes(result.Hints))
}

func TestMergeSubgraphs_UnionsEnumsScalars(t *testing.T) {
	result := mustCompose(t,
		mustSubgraph(t, "a", `
union SearchResult = Book | Movie
enum Color { RED GREEN }
scalar DateTime
type Book { title: String }
type Movie { title: String }
`),
		mustSubgraph(t, "b", `
union SearchResult = Book | Song
enum Color { GREEN BLUE }
scalar DateTime
type Book { title: String }
type Song { title: String }
`),
	)

	search, ok := result.Schema.Types.Get("SearchResult").(*schema.UnionType)
	require.True(t, ok)
	assert.Equal(t, []string{"Book", "Movie", "Song"}, search.Members)
	assert.Equal(t, []string{
		`@join__type(graph: A)`,
		`@join__unionMember(graph: A, member: "Book")`,
		`@join__unionMember(graph: A, member: "Movie")`,
		`@join__type(graph: B)`,
		`@join__unionMember(graph: B, member: "Book")`,
		`@join__unionMember(graph: B, member: "Song")`,
	}, directiveStrings(search.Directives))

	color, ok := result.Schema.Types.Get("Color").(*schema.EnumType)
	require.True(t, ok)
	assert.Equal(t, []string{`@join__type(graph: A)`, `@join__type(graph: B)`}, directiveStrings(color.Directives))
	require.Len(t, color.Values, 3)
	assert.Equal(t, []string{`@join__enumValue(graph: A)`}, directiveStrings(color.Value("RED").Directives))
	assert.Equal(t, []string{`@join__enumValue(graph: A)`, `@join__enumValue(graph: B)`}, directiveStrings(color.Value("GREEN").Directives))
	assert.Equal(t, []string{`@join__enumValue(graph: B)`}, directiveStrings(color.Value("BLUE").Directives))

	dateTime, ok := result.Schema.Types.Get("DateTime").(*schema.ScalarType)
	require.True(t, ok)
	assert.Equal(t, []string{`@join__type(graph: A)`, `@join__type(graph: B)`}, directiveStrings(dateTime.Directives))
}

func TestMergeSubgraphs_OlderJoinVersion(t *testing.T) {
	sg := mustSubgraph(t, "a", `
union U = X
enum E { ONE }
type X implements I { id: ID }
interface I { id: ID }
`)

	result, err := MergeSubgraphs([]*subgraph.Subgraph{sg}, WithJoinVersion(joinspec.Version{Major: 0, Minor: 2}))
	require.NoError(t, err)

	union, ok := result.Schema.Types.Get("U").(*schema.UnionType)
	require.True(t, ok)
	assert.Equal(t, []string{`@join__type(graph: A)`}, directiveStrings(union.Directives))

	enum, ok := result.Schema.Types.Get("E").(*schema.EnumType)
	require.True(t, ok)
	assert.Empty(t, enum.Value("ONE").Directives)

	x := object(t, result.Schema, "X")
	assert.Contains(t, directiveStrings(x.Directives), `@join__implements(graph: A, interface: "I")`)

	_, err = MergeSubgraphs(nil, WithJoinVersion(joinspec.Version{Major: 0, Minor: 9}))
	assert.ErrorIs(t, err, joinspec.ErrUnsupportedVersion)
}

func TestMergeSubgraphs_Extension(t *testing.T) {
	result := mustCompose(t,
		mustSubgraph(t, "a", `type User @key(fields: "id") { id: ID! name: String }`),
		mustSubgraph(t, "b", `extend type User @key(fields: "id") { id: ID! @external reviews: [String] }`),
	)

	user := object(t, result.Schema, "User")
	assert.Equal(t, []string{
		`@join__type(graph: A, key: "id")`,
		`@join__type(graph: B, key: "id", extension: true)`,
	}, directiveStrings(user.Directives))
}

func TestMergeSubgraphs_Conflicts(t *testing.T) {
	// Test plan:
	// - Each conflict produces the expected error or hint code
	// - Fatal conflicts still return the partial schema

	tests := []struct {
		name       string
		a, b       string
		wantErrors []string
		wantHints  []string
	}{
		{
			name:       "kind mismatch",
			a:          `type Thing { id: ID }`,
			b:          `interface Thing { id: ID }`,
			wantErrors: []string{CodeTypeKindMismatch},
		},
		{
			name:       "interface object over an object",
			a:          `type Thing @key(fields: "id") { id: ID }`,
			b:          `type Thing @key(fields: "id") @interfaceObject { id: ID }`,
			wantErrors: []string{CodeTypeKindMismatch},
		},
		{
			name:       "incompatible field types",
			a:          `type T @key(fields: "id") { id: ID! size: Int }`,
			b:          `type T @key(fields: "id") { id: ID! size: String }`,
			wantErrors: []string{CodeFieldTypeMismatch},
		},
		{
			name:      "nullability difference",
			a:         `type T @key(fields: "id") { id: ID! size: Int }`,
			b:         `type T @key(fields: "id") { id: ID! size: Int! }`,
			wantHints: []string{HintInconsistentFieldType},
		},
		{
			name:      "argument presence",
			a:         `type Query { items(first: Int): [String] }`,
			b:         `type Query { items(after: String): [String] }`,
			wantHints: []string{HintInconsistentArgumentPresence, HintInconsistentArgumentPresence},
		},
		{
			name:      "input field presence",
			a:         `input Filter { name: String }`,
			b:         `input Filter { name: String tag: String }`,
			wantHints: []string{HintInconsistentInputObjectField},
		},
		{
			name:      "input field missing in later subgraph",
			a:         `input Filter { name: String tag: String }`,
			b:         `input Filter { name: String }`,
			wantHints: []string{HintInconsistentInputObjectField},
		},
		{
			name:      "interface field presence",
			a:         `interface Node { id: ID! }`,
			b:         `interface Node { id: ID! label: String }`,
			wantHints: []string{HintInconsistentInterfaceField},
		},
		{
			name:      "description conflict",
			a:         `"A user" type User @key(fields: "id") { id: ID! }`,
			b:         `"Someone" type User @key(fields: "id") { id: ID! }`,
			wantHints: []string{HintInconsistentDescription},
		},
		{
			name:      "root operation conflict",
			a:         `schema { query: RootA } type RootA { a: Int }`,
			b:         `schema { query: RootB } type RootB { b: Int }`,
			wantHints: []string{HintInconsistentRootOperationType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subgraphs := []*subgraph.Subgraph{mustSubgraph(t, "a", tt.a), mustSubgraph(t, "b", tt.b)}
			result, err := MergeSubgraphs(subgraphs)

			if len(tt.wantErrors) > 0 {
				var failure *Failure
				require.True(t, errors.As(err, &failure))
				assert.Equal(t, tt.wantErrors, errorCodes(failure.Errors))
				assert.NotNil(t, failure.Schema)

				var first Error
				require.True(t, errors.As(err, &first))
				assert.Equal(t, tt.wantErrors[0], first.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHints, hintCodes(result.Hints))
		})
	}
}

func TestMergeSubgraphs_RootOperationLastWriterWins(t *testing.T) {
	result := mustCompose(t,
		mustSubgraph(t, "a", `schema { query: RootA } type RootA { a: Int }`),
		mustSubgraph(t, "b", `schema { query: RootB } type RootB { b: Int }`),
	)
	assert.Equal(t, "RootB", result.Schema.QueryType)
}

func TestFailure_Error(t *testing.T) {
	failure := &Failure{Errors: []Error{
		{Code: CodeTypeKindMismatch, Message: "first"},
		{Code: CodeFieldTypeMismatch, Message: "second"},
	}}
	msg := failure.Error()
	assert.Contains(t, msg, "2 errors occurred")
	assert.Contains(t, msg, "[TYPE_KIND_MISMATCH] first")
	assert.Contains(t, msg, "[FIELD_TYPE_MISMATCH] second")

	assert.Equal(t, "composition failed", (&Failure{}).Error())
}

func TestMergeSubgraphs_EscapedStrings(t *testing.T) {
	// Test plan:
	// - An escaped default on an executable directive keeps its meaning
	// - Quoted and block spellings of one description do not conflict

	a := mustSubgraph(t, "a", `
directive @fmt(pattern: String = "a\"b") on FIELD
type Query { a: User }

"""
A user
of the system
"""
type User @key(fields: "id") { id: ID! }
`)
	b := mustSubgraph(t, "b", `
directive @fmt(pattern: String = "a\"b") on FIELD
type Query { b: Int }

"A user\nof the system"
type User @key(fields: "id") { id: ID! }
`)

	result := mustCompose(t, a, b)
	assert.Empty(t, result.Hints)

	pattern := result.Schema.DirectiveDefinitions.Get("fmt").Argument("pattern")
	require.NotNil(t, pattern)
	assert.Equal(t, `a"b`, pattern.DefaultValue.Raw)
	assert.Equal(t, "A user\nof the system", object(t, result.Schema, "User").Description)

	printed := schema.Print(result.Schema)
	assert.Contains(t, printed, `directive @fmt(pattern: String = "a\"b") on FIELD`)

	reparsed, err := schema.ParseSchema(printed)
	require.NoError(t, err)
	assert.Equal(t, printed, schema.Print(reparsed))
}

func TestMergeSubgraphs_JoinVersion01(t *testing.T) {
	// Test plan:
	// - @join__type is applied only to objects and interfaces
	// - A field shared by two subgraphs keeps a single @join__field

	a := mustSubgraph(t, "a", `
type Query { things: [Thing] }
type Thing @key(fields: "id") { id: ID! n: String e: E }
enum E { ONE }
scalar Date
input Filter { id: ID }
union U = Thing
`)
	b := mustSubgraph(t, "b", `
type Thing @key(fields: "id") { id: ID! n: String }
enum E { ONE }
`)

	result, err := MergeSubgraphs([]*subgraph.Subgraph{a, b}, WithJoinVersion(joinspec.Version{Major: 0, Minor: 1}))
	require.NoError(t, err)

	for _, def := range result.Schema.Types.All() {
		if def.Kind() == schema.KindObject || def.Kind() == schema.KindInterface {
			continue
		}
		assert.False(t, def.TypeDirectives().Has(joinspec.TypeDirectiveName), "%s carries @join__type", def.TypeName())
	}

	thing := object(t, result.Schema, "Thing")
	assert.Equal(t, []string{
		`@join__type(graph: A, key: "id")`,
		`@join__type(graph: B, key: "id")`,
	}, directiveStrings(thing.Directives))
	assert.Equal(t, []string{`@join__field(graph: A)`}, directiveStrings(thing.Fields.Get("n").Directives))
	assert.Equal(t, []string{`@join__field(graph: A)`}, directiveStrings(thing.Fields.Get("e").Directives))

	printed := schema.Print(result.Schema)
	assert.Contains(t, printed, "on OBJECT | INTERFACE")
	assert.NotContains(t, printed, "enum E\n  @join__type")
}
