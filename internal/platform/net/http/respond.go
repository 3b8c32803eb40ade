// Package http holds the server, router seam and response writers.
// Successful responses are written as raw JSON bodies; failures as perr.Wire
package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"

	"nutriscope/internal/platform/logger"
	pnet "nutriscope/internal/platform/net"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Int("status", status).Msg("response encode failed")
	}
}

// Text writes s as text/plain with the given status
func Text(w stdhttp.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, s)
}

// RespondOK writes a 200 with v as the body
func RespondOK(w stdhttp.ResponseWriter, _ *stdhttp.Request, v any) {
	JSON(w, stdhttp.StatusOK, v)
}

// RespondError maps err to a status and error body and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	logger.C(r.Context()).WithLevel(pnet.LogLevel(status)).Err(err).
		Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	JSON(w, status, body)
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Plain marks a body that is written verbatim as text/plain
type Plain string

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}

	switch body := resp.Body.(type) {
	case error:
		if body != nil {
			RespondError(w, r, body)
			return
		}
	case Plain:
		Text(w, status, string(body))
		return
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, resp.Body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// TextOK returns a 200 text/plain response
func TextOK(s string) Response { return Response{Status: stdhttp.StatusOK, Body: Plain(s)} }

// Error returns a response that maps the error to status and error body
func Error(err error) Response { return Response{Body: err} }
