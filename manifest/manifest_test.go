package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent_manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"agent_name": "researcher",
		"description": "Looks things up",
		"version": "1.2.0",
		"tools": [
			{
				"name": "search",
				"description": "Web search",
				"parameters": {"query": {"type": "string", "description": "search terms"}},
				"required": ["query"],
				"returns": {"type": "string"}
			}
		]
	}`), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "researcher", m.AgentName)
	require.Len(t, m.Tools, 1)
	assert.Equal(t, "search", m.Tools[0].Name)
	assert.Equal(t, "string", m.Tools[0].Parameters["query"].Type)
	assert.Equal(t, []string{"query"}, m.Tools[0].Required)
	require.NotNil(t, m.Tools[0].Returns)
	assert.Equal(t, "string", m.Tools[0].Returns.Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSchemaFromStruct(t *testing.T) {
	type searchArgs struct {
		Query   string  `json:"query" description:"search terms"`
		Limit   int     `json:"limit,omitempty"`
		Verbose *bool   `json:"verbose"`
		Score   float64 `json:"score"`
		hidden  string
		Skipped string  `json:"-"`
	}

	params, required := SchemaFromStruct(searchArgs{})
	assert.Equal(t, Param{Type: "string", Description: "search terms"}, params["query"])
	assert.Equal(t, "integer", params["limit"].Type)
	assert.Equal(t, "boolean", params["verbose"].Type)
	assert.Equal(t, "number", params["score"].Type)
	assert.NotContains(t, params, "hidden")
	assert.NotContains(t, params, "-")
	assert.ElementsMatch(t, []string{"query", "score"}, required)
}

func TestSchemaFromStruct_NonStruct(t *testing.T) {
	params, required := SchemaFromStruct("not a struct")
	assert.Empty(t, params)
	assert.Empty(t, required)
}
