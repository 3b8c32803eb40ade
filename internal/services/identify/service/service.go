// Package service identifies the food in a photo and attaches its nutrition
package service

import (
	"context"

	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/adapters/roboflow"
	"nutriscope/internal/core/foodvote"
	"nutriscope/internal/core/mealbalance"
	"nutriscope/internal/platform/logger"
	"nutriscope/internal/services/identify/domain"
)

// Workflows runs one hosted classification workflow
type Workflows interface {
	Configured() bool
	Run(ctx context.Context, wf roboflow.Workflow, image []byte) ([]roboflow.Prediction, error)
}

// Config tunes both identification paths
type Config struct {
	// Ignore lists detector classes that are never food
	Ignore foodvote.IgnoreSet
	// Threshold is the per-prediction and mean confidence floor of the ensemble
	Threshold float64
	Workflows []roboflow.Workflow
	// Parallelism bounds concurrent workflow calls; 1 runs them in order
	Parallelism int
}

// Service defines the identify service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	det detector.Detector
	wf  Workflows
	nut domain.NutritionPort
	cfg Config
	log *logger.Logger
}

// New constructs the identify service. A nil detector behaves as detector.None
func New(det detector.Detector, wf Workflows, nut domain.NutritionPort, cfg Config, log *logger.Logger) *Svc {
	if wf == nil {
		panic("identify.Service requires a non nil Workflows")
	}
	if nut == nil {
		panic("identify.Service requires a non nil NutritionPort")
	}
	if det == nil {
		det = detector.None{}
	}
	if cfg.Ignore == nil {
		cfg.Ignore = foodvote.NewIgnoreSet(foodvote.DefaultIgnore...)
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	if log == nil {
		log = logger.Named("identify")
	}
	return &Svc{det: det, wf: wf, nut: nut, cfg: cfg, log: log}
}

// Identify routes img to the classifier path for t
func (s *Svc) Identify(ctx context.Context, img domain.Image, t domain.FoodType) (domain.Identification, error) {
	var id domain.Identification
	switch t {
	case domain.International:
		id = s.International(ctx, img)
	case domain.Indian:
		id = s.Indian(ctx, img)
	default:
		_, err := domain.ParseFoodType(string(t))
		return domain.Identification{}, err
	}
	s.log.Info().
		Str("image_id", img.ID.String()).
		Str("type", string(id.Type)).
		Str("food", id.Food).
		Float64("confidence", id.Confidence).
		Msg("identified")
	return id, nil
}

// Predict identifies img, resolves its nutrition and grades the meal
func (s *Svc) Predict(ctx context.Context, img domain.Image, t domain.FoodType) (domain.Prediction, error) {
	id, err := s.Identify(ctx, img, t)
	if err != nil {
		return domain.Prediction{}, err
	}
	rec := s.nut.Resolve(ctx, id.Food)
	return domain.Prediction{
		Food:      id.Food,
		Type:      id.Type,
		Nutrition: rec,
		Summary:   mealbalance.Summarize(rec.Meal()),
	}, nil
}
