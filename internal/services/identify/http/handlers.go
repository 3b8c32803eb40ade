// Package http provides http transport for food identification
package http

import (
	stdhttp "net/http"

	"nutriscope/internal/modkit/httpkit"
	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/services/identify/domain"
	svc "nutriscope/internal/services/identify/service"
)

// predictForm is the multipart body of POST /predict
type predictForm struct {
	Image    *httpkit.File `form:"image" validate:"required"`
	FoodType string        `form:"food_type" validate:"required"`
}

// Register mounts identify endpoints; maxUpload bounds the multipart body (0 keeps the default)
func Register(r httpkit.Router, s svc.Service, maxUpload int64) {
	h := &handlers{svc: s}
	httpkit.PostMultipart[predictForm](r, "/predict", h.predict, httpkit.MultipartOptions{MaxBytes: maxUpload})
}

type handlers struct{ svc svc.Service }

// @Summary Identify the food in a photo and estimate its nutrition
// @Tags Predict
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Food photo (JPEG or PNG)"
// @Param food_type formData string true "Indian or International"
// @Success 200 {object} domain.Prediction "ok"
// @Failure 400 {object} errors.Wire "missing image or invalid food_type"
// @Failure 500 {object} errors.Wire "prediction failed"
// @Router /predict [post]
func (h *handlers) predict(r *stdhttp.Request, in predictForm) (any, error) {
	t, err := domain.ParseFoodType(in.FoodType)
	if err != nil {
		return nil, err
	}
	img := domain.NewImage(in.Image.Filename, in.Image.ContentType, in.Image.Data)
	p, err := h.svc.Predict(r.Context(), img, t)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeValidation) {
			return nil, err
		}
		return nil, perr.Newf(perr.ErrorCodeUnknown, "Prediction failed: %v", err)
	}
	return p, nil
}
