package httpkit

import (
	"net/http"
)

// Get registers a no-body handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers a no-body handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostJSON mounts a JSON body handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	r.Post(path, JSON(h, opts...))
}

// PostMultipart mounts a multipart form handler under POST
func PostMultipart[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...MultipartOptions) {
	r.Post(path, Multipart(h, opts...))
}
