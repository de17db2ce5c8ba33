package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocumentCoversRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api", doc.BasePath)

	routes := map[string][]string{
		"/auth/signup":          {"post"},
		"/auth/login":           {"post"},
		"/auth/change-password": {"post"},
		"/stores":               {"get"},
		"/stores/{id}":          {"get"},
		"/stores/{id}/rating":   {"post", "put"},
		"/admin/dashboard":      {"get"},
		"/admin/users":          {"get"},
		"/admin/users/{id}":     {"get"},
		"/admin/stores":         {"get"},
		"/admin/add-user":       {"post"},
		"/admin/add-store":      {"post"},
		"/owner/dashboard":      {"get"},
		"/healthz":              {"get"},
	}
	assert.Len(t, doc.Paths, len(routes))
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		require.True(t, ok, path)
		for _, m := range methods {
			assert.Contains(t, ops, m, path)
		}
	}
}
