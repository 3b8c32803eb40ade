// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "nutriscope/internal/platform/net/http"
	"nutriscope/internal/platform/net/http/bind"
)

type (
	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// File is an uploaded multipart file
	File = bind.File

	// JSONOptions tunes request body decoding
	JSONOptions = bind.JSONOptions

	// MultipartOptions tunes multipart form parsing
	MultipartOptions = bind.MultipartOptions
)

// OK returns a 200 response with v as the raw body
func OK(v any) Response { return phttp.OK(v) }

// Created returns a 201 response
func Created(v any) Response { return phttp.Created(v) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Text returns a 200 text/plain response
func Text(s string) Response { return phttp.TextOK(s) }

// Error returns a response that maps an error to status and wire payload
func Error(err error) Response { return phttp.Error(err) }

// JSON binds and validates a JSON body into T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...JSONOptions) Handler {
	return phttp.JSONHandler(fn, opts...)
}

// Multipart binds and validates a multipart form into T before calling fn
func Multipart[T any](fn func(*http.Request, T) (any, error), opts ...MultipartOptions) Handler {
	return phttp.MultipartHandler(fn, opts...)
}

// Call adapts a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Handle lets you directly adapt a Response-returning function
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
