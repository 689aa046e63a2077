package subgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/fedcompose/internal/schema"
)

const productsSDL = `
type Query { topProducts: [Product] }
type Product @key(fields: "upc") { upc: String! name: String }
`

func TestNew(t *testing.T) {
	sg, err := New("products", "http://products:4000/graphql", productsSDL)
	require.NoError(t, err)

	assert.Equal(t, "products", sg.Name)
	assert.Equal(t, "http://products:4000/graphql", sg.URL)
	require.NotNil(t, sg.Schema)
	assert.Equal(t, "Query", sg.Schema.QueryType)
	assert.NotNil(t, sg.Schema.Types.Get("Product"))
}

func TestNew_Errors(t *testing.T) {
	_, err := New("", "http://x", productsSDL)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = New("broken", "http://x", "type Query {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subgraph broken")
}

func TestFromSchema(t *testing.T) {
	s := schema.NewSchema()
	sg, err := FromSchema("inventory", "http://inventory", s)
	require.NoError(t, err)
	assert.Same(t, s, sg.Schema)

	_, err = FromSchema("inventory", "http://inventory", nil)
	assert.ErrorIs(t, err, ErrNilSchema)

	_, err = FromSchema("", "http://inventory", s)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.graphql")
	require.NoError(t, os.WriteFile(path, []byte(productsSDL), 0644))

	sg, err := LoadFile("products", "http://products:4000/graphql", path)
	require.NoError(t, err)
	assert.NotNil(t, sg.Schema.Types.Get("Product"))

	_, err = LoadFile("products", "http://products:4000/graphql", filepath.Join(dir, "missing.graphql"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read schema file for subgraph products")
}
