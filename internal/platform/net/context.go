// Package net provides transport-agnostic helpers for request scoped values and error bodies
package net

import (
	"context"

	"nutriscope/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest annotates ctx with the request id under both the chi key and the
// logger key so logger.C and chimw.GetReqID agree
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequestID(ctx, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return logger.RequestID(ctx)
}
