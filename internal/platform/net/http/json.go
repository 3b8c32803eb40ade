package http

import (
	"net/http"

	"nutriscope/internal/platform/net/http/bind"
)

// JSONHandler binds a JSON body into T and writes fn's result as the raw response body
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// MultipartHandler binds a multipart form into T (see bind.ParseMultipart) and writes fn's result
func MultipartHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.MultipartOptions) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := bind.ParseMultipart[T](w, r, opts...)
		if err != nil {
			Error(err).write(w, r)
			return
		}
		out, err := fn(r, in)
		if err != nil {
			Error(err).write(w, r)
			return
		}
		OK(out).write(w, r)
	}
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
