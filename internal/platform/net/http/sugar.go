package http

import (
	"net/http"

	"nutriscope/internal/platform/net/http/bind"
)

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a pure JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	r.Post(path, JSONHandler(h, opts...))
}

// PostMultipart mounts a multipart form handler for POST
func PostMultipart[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.MultipartOptions) {
	r.Post(path, MultipartHandler(h, opts...))
}
