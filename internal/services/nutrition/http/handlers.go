// Package http provides http transport for nutrition
package http

import (
	stdhttp "net/http"

	"nutriscope/internal/modkit/httpkit"
	"nutriscope/internal/services/nutrition/domain"
	svc "nutriscope/internal/services/nutrition/service"
)

// manualBody tolerates extra client fields
var manualBody = httpkit.JSONOptions{MaxBytes: 64 << 10}

// Register mounts nutrition endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ManualInput](r, "/manual-nutrition", h.manual, manualBody)

	// autocomplete; never fails
	httpkit.Get(r, "/food-suggestions", h.suggestions)
}

type handlers struct{ svc svc.Service }

// @Summary Nutrition for a typed food and quantity
// @Tags Nutrition
// @Accept json
// @Produce json
// @Param payload body domain.ManualInput true "Food and quantity"
// @Success 200 {object} domain.ManualResult "ok"
// @Failure 400 {object} errors.Wire "missing food_name or bad JSON"
// @Router /manual-nutrition [post]
func (h *handlers) manual(r *stdhttp.Request, in domain.ManualInput) (any, error) {
	return h.svc.Manual(r.Context(), in)
}

// @Summary Food name suggestions
// @Tags Nutrition
// @Produce json
// @Param query query string false "Partial food name"
// @Success 200 {object} domain.Suggestions "ok"
// @Router /food-suggestions [get]
func (h *handlers) suggestions(r *stdhttp.Request) (any, error) {
	return h.svc.Suggest(r.Context(), r.URL.Query().Get("query")), nil
}
