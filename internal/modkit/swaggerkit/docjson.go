package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	docs "nutriscope/internal/services/api/docs"
)

// docReader is a seam so tests can inject invalid JSON without patching swag
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON serves the registered spec with the shared error schema attached
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/")
		ensureErrorResponseDefinition(spec)
		addDefaultResponse(spec, "400", "Bad Request", map[string]any{
			"error": "food_type must be one of [Indian International]",
			"code":  "validation",
			"field": "food_type",
		})
		addDefaultResponse(spec, "500", "Internal Server Error", map[string]any{
			"error":      "internal error",
			"code":       "panic",
			"request_id": "579f33bf50b1/abc-000001",
		})

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers makes sure the spec is OAS 3.0.x and has a servers array
// swagger http ui can't render 3.1, so downconvert if needed
func ensureServers(spec map[string]any, url string) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorResponseDefinition mirrors perr.Wire as components.schemas.ErrorResponse
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"error":      map[string]any{"type": "string"},
			"code":       map[string]any{"type": "string"},
			"field":      map[string]any{"type": "string"},
			"request_id": map[string]any{"type": "string"},
		},
		"required": []any{"error", "code"},
	}
}

// addDefaultResponse injects status into every operation that does not declare it
func addDefaultResponse(spec map[string]any, status, desc string, example map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
