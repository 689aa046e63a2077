package supergraph

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/fedcompose/internal/compose"
	"github.com/okra-platform/fedcompose/internal/joinspec"
	"github.com/okra-platform/fedcompose/internal/schema"
	"github.com/okra-platform/fedcompose/internal/subgraph"
)

// Test plan:
// 1. Compose, print and re-parse a supergraph, then read the join metadata back
// 2. Graphs, keys, interface objects, implements, union members and enum values survive
// 3. Field owners are explicit for @join__field and implicit otherwise
// 4. Older join versions skip the directives they do not define
// 5. Schemas without the join link or with unknown graphs are rejected

func roundTrip(t *testing.T, opts []compose.Option, sdls map[string]string) *Report {
	t.Helper()

	var subgraphs []*subgraph.Subgraph
	for name, sdl := range sdls {
		sg, err := subgraph.New(name, "http://"+name+".svc/graphql", sdl)
		require.NoError(t, err)
		subgraphs = append(subgraphs, sg)
	}

	result, err := compose.MergeSubgraphs(subgraphs, opts...)
	require.NoError(t, err)

	parsed, err := schema.ParseSchema(schema.Print(result.Schema))
	require.NoError(t, err)

	report, err := Inspect(parsed)
	require.NoError(t, err)
	return report
}

const (
	accountsSDL = `
type Query { me: User }

type User @key(fields: "id") {
  id: ID!
  name: String
}

interface Node @key(fields: "id") {
  id: ID!
}

type Account implements Node @key(fields: "id") {
  id: ID!
}

union Principal = User | Account

enum Role { ADMIN MEMBER }
`
	reviewsSDL = `
type User @key(fields: "id") {
  id: ID!
  name: String @external
  reviews: [String] @requires(fields: "name")
}

type Node @key(fields: "id") @interfaceObject {
  id: ID!
  flagged: Boolean
}

enum Role { MEMBER GUEST }

input ReviewFilter { minStars: Int }
`
)

func TestInspect_RoundTrip(t *testing.T) {
	report := roundTrip(t, nil, map[string]string{"accounts": accountsSDL, "reviews": reviewsSDL})

	assert.Equal(t, joinspec.CompositionVersion, report.JoinVersion)
	assert.Equal(t, "v0.3", report.Version)
	assert.Equal(t, []Graph{
		{Token: "ACCOUNTS", Name: "accounts", URL: "http://accounts.svc/graphql"},
		{Token: "REVIEWS", Name: "reviews", URL: "http://reviews.svc/graphql"},
	}, report.Graphs)

	user := report.Type("User")
	require.NotNil(t, user)
	assert.Equal(t, "object", user.Kind)
	assert.Equal(t, []string{"ACCOUNTS", "REVIEWS"}, user.Graphs)
	assert.Equal(t, []Key{
		{Graph: "ACCOUNTS", Fields: "id", Resolvable: true},
		{Graph: "REVIEWS", Fields: "id", Resolvable: true},
	}, user.Keys)

	assert.Equal(t, []FieldOwner{
		{Graph: "ACCOUNTS", Implicit: true},
		{Graph: "REVIEWS", Implicit: true},
	}, user.Field("id").Owners)
	assert.Equal(t, []FieldOwner{
		{Graph: "ACCOUNTS"},
		{Graph: "REVIEWS", External: true},
	}, user.Field("name").Owners)
	assert.Equal(t, []FieldOwner{{Graph: "REVIEWS", Requires: "name"}}, user.Field("reviews").Owners)

	node := report.Type("Node")
	require.NotNil(t, node)
	assert.Equal(t, "interface", node.Kind)
	assert.Equal(t, []string{"REVIEWS"}, node.InterfaceObjectIn)

	account := report.Type("Account")
	require.NotNil(t, account)
	assert.Equal(t, map[string][]string{"ACCOUNTS": {"Node"}}, account.Implements)

	principal := report.Type("Principal")
	require.NotNil(t, principal)
	assert.Equal(t, map[string][]string{"ACCOUNTS": {"User", "Account"}}, principal.Members)

	role := report.Type("Role")
	require.NotNil(t, role)
	assert.Equal(t, map[string][]string{
		"ADMIN":  {"ACCOUNTS"},
		"MEMBER": {"ACCOUNTS", "REVIEWS"},
		"GUEST":  {"REVIEWS"},
	}, role.Values)

	filter := report.Type("ReviewFilter")
	require.NotNil(t, filter)
	assert.Equal(t, []FieldOwner{{Graph: "REVIEWS", Implicit: true}}, filter.Field("minStars").Owners)

	var entityNames []string
	for _, e := range report.Entities() {
		entityNames = append(entityNames, e.Name)
	}
	assert.Equal(t, []string{"User", "Node", "Account"}, entityNames)

	assert.Contains(t, report.OwnedFields("REVIEWS"), "User.reviews")
	assert.NotContains(t, report.OwnedFields("REVIEWS"), "User.name")
	assert.Contains(t, report.OwnedFields("ACCOUNTS"), "Query.me")
}

func TestInspect_OlderJoinVersion(t *testing.T) {
	report := roundTrip(t,
		[]compose.Option{compose.WithJoinVersion(joinspec.Version{Major: 0, Minor: 2})},
		map[string]string{"accounts": accountsSDL},
	)

	assert.Equal(t, "v0.2", report.Version)

	principal := report.Type("Principal")
	require.NotNil(t, principal)
	assert.Nil(t, principal.Members)

	role := report.Type("Role")
	require.NotNil(t, role)
	assert.Nil(t, role.Values)

	account := report.Type("Account")
	require.NotNil(t, account)
	assert.Equal(t, map[string][]string{"ACCOUNTS": {"Node"}}, account.Implements)
}

func TestInspect_JoinVersion01(t *testing.T) {
	opts := []compose.Option{compose.WithJoinVersion(joinspec.Version{Major: 0, Minor: 1})}
	report := roundTrip(t, opts, map[string]string{
		"a": `
type Query { things: [Thing] }
type Thing @key(fields: "id") { id: ID! n: String }
enum E { ONE }
`,
		"b": `
type Thing @key(fields: "id") { id: ID! n: String }
`,
	})

	assert.Equal(t, "v0.1", report.Version)

	e := report.Type("E")
	require.NotNil(t, e)
	assert.Equal(t, []string{"A", "B"}, e.Graphs)

	thing := report.Type("Thing")
	require.NotNil(t, thing)
	assert.Equal(t, []string{"A", "B"}, thing.Graphs)
}

func TestInspect_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sdl     string
		wantErr error
	}{
		{
			name:    "no join link",
			sdl:     `type Query { a: Int }`,
			wantErr: joinspec.ErrJoinSpecNotLinked,
		},
		{
			name: "unsupported join version",
			sdl: `
schema @link(url: "https://specs.apollo.dev/join/v9.9") { query: Query }
type Query { a: Int }
`,
			wantErr: joinspec.ErrUnsupportedVersion,
		},
		{
			name: "missing join directive definitions",
			sdl: `
schema @link(url: "https://specs.apollo.dev/join/v0.3") { query: Query }
type Query { a: Int }
`,
			wantErr: joinspec.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.ParseSchema(tt.sdl)
			require.NoError(t, err)

			_, err = Inspect(s)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Inspect(nil)
	assert.ErrorIs(t, err, ErrNilSchema)
}

func TestInspect_UnknownGraphAndMissingJoinType(t *testing.T) {
	sg, err := subgraph.New("accounts", "http://accounts", `type Query { me: String }`)
	require.NoError(t, err)
	result, err := compose.MergeSubgraphs([]*subgraph.Subgraph{sg})
	require.NoError(t, err)

	s := result.Schema
	query := s.Types.Get("Query").(*schema.ObjectType)
	query.Fields[0].Directives = schema.DirectiveList{
		schema.NewDirective(joinspec.FieldDirectiveName, schema.NewArgument("graph", schema.EnumValue("BILLING"))),
	}
	_, err = Inspect(s)
	assert.ErrorIs(t, err, ErrUnknownGraph)

	s.Types.Set(&schema.ObjectType{Name: "Orphan"})
	query.Fields[0].Directives = nil
	_, err = Inspect(s)
	assert.ErrorIs(t, err, ErrMissingJoinType)
	assert.Contains(t, err.Error(), "Orphan")
}

func TestReport_Output(t *testing.T) {
	report := roundTrip(t, nil, map[string]string{"accounts": accountsSDL, "reviews": reviewsSDL})

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "join spec v0.3\n")
	assert.Contains(t, out, "Graphs (2):\n")
	assert.Contains(t, out, "  ACCOUNTS  accounts  http://accounts.svc/graphql")
	assert.Contains(t, out, "  object User\n    ACCOUNTS key \"id\"\n    REVIEWS key \"id\"\n")
	assert.Contains(t, out, "    REVIEWS @interfaceObject\n")

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"joinVersion":"v0.3"`)
	assert.Contains(t, string(data), `"external":true`)
}
