package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc_Registrado(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var api struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &api))
	assert.Equal(t, "3.0.3", api.OpenAPI)
	assert.Contains(t, api.Paths, "/api/documents/{id}/pdf")
	assert.Contains(t, api.Paths["/api/rnd-orgs/{id}"], "put")
}
