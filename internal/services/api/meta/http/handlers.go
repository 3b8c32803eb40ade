// Package http provides meta endpoints
package http

import (
	"net/http"

	"nutriscope/internal/core/version"
	"nutriscope/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	// Ready reports upstream collaborators by name; nil means none
	Ready func() map[string]bool
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	r.Get("/health", httpkit.Handle(h.health))
	httpkit.Get(r, "/meta/version", h.version)
	httpkit.Get(r, "/meta/ready", h.ready)
}

// ReadyResponse summarizes which upstreams have credentials or handles
type ReadyResponse struct {
	Status    string          `json:"status" example:"ok"` // ok degraded
	Upstreams map[string]bool `json:"upstreams"`
}

// @Summary Liveness probe
// @Tags Meta
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *handlers) health(_ *http.Request) httpkit.Response {
	return httpkit.Text("OK")
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Upstream configuration report
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	ups := map[string]bool{}
	if h.deps.Ready != nil {
		ups = h.deps.Ready()
	}
	status := "ok"
	for _, ok := range ups {
		if !ok {
			status = "degraded"
			break
		}
	}
	return ReadyResponse{Status: status, Upstreams: ups}, nil
}
