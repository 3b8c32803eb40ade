// Package service resolves nutrition for food names
package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"nutriscope/internal/adapters/cohere"
	"nutriscope/internal/adapters/nutritionix"
	"nutriscope/internal/core/mealbalance"
	"nutriscope/internal/core/pipeline"
	"nutriscope/internal/platform/logger"
	"nutriscope/internal/services/nutrition/domain"
)

// Database is the structured nutrition lookup
type Database interface {
	Configured() bool
	Nutrients(ctx context.Context, query string) (nutritionix.Nutrients, error)
	Instant(ctx context.Context, query string) (nutritionix.InstantResult, error)
}

// Estimator is the AI fallback
type Estimator interface {
	Configured() bool
	EstimateNutrition(ctx context.Context, food string) (cohere.Estimate, error)
}

// Service defines the nutrition service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	db  Database
	ai  Estimator
	log *logger.Logger
}

// New constructs the nutrition service
func New(db Database, ai Estimator, log *logger.Logger) *Svc {
	if db == nil {
		panic("nutrition.Service requires a non nil Database")
	}
	if ai == nil {
		panic("nutrition.Service requires a non nil Estimator")
	}
	if log == nil {
		log = logger.Named("nutrition")
	}
	return &Svc{db: db, ai: ai, log: log}
}

// Configured reports which collaborators have credentials
func (s *Svc) Configured() map[string]bool {
	return map[string]bool{
		"nutritionix": s.db.Configured(),
		"cohere":      s.ai.Configured(),
	}
}

// Resolve tries the nutrition database, then the AI estimate. It never fails:
// when both miss the record is zero with source cohere_not_configured or fallback
func (s *Svc) Resolve(ctx context.Context, food string) domain.Record {
	res := pipeline.FirstOK(ctx,
		pipeline.Step[domain.Record]{
			Source: string(domain.SourceNutritionix),
			Run: func(ctx context.Context) (domain.Record, error) {
				n, err := s.db.Nutrients(ctx, food)
				if err != nil {
					s.log.Info().Str("food", food).Err(err).Msg("nutritionix miss, asking cohere")
					return domain.Record{}, err
				}
				return domain.Record{Calories: n.Calories, ProteinG: n.ProteinG, FatG: n.FatG, CarbsG: n.CarbsG}, nil
			},
		},
		pipeline.Step[domain.Record]{
			Source: string(domain.SourceCohere),
			Run: func(ctx context.Context) (domain.Record, error) {
				e, err := s.ai.EstimateNutrition(ctx, food)
				if err != nil {
					return domain.Record{}, err
				}
				return domain.Record{Calories: e.Calories, ProteinG: e.ProteinG, FatG: e.FatG, CarbsG: e.CarbsG}, nil
			},
		},
	)
	if res.OK() {
		rec := res.Value
		rec.Source = domain.Source(res.Source)
		return rec
	}
	if !s.ai.Configured() {
		return domain.Record{Source: domain.SourceCohereNotConfigured}
	}
	s.log.Warn().Str("food", food).Err(res.Err).Msg("nutrition unresolved, using zero fallback")
	return domain.Record{Source: domain.SourceFallback}
}

// Manual resolves one serving of in.FoodName and scales it to the requested quantity.
// The summary grades the per-serving record, not the totals
func (s *Svc) Manual(ctx context.Context, in domain.ManualInput) (domain.ManualResult, error) {
	qty := domain.DefaultQuantity
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = domain.UnitGrams
	}

	rec := s.Resolve(ctx, in.FoodName)
	return domain.ManualResult{
		FoodName:       in.FoodName,
		Quantity:       qty,
		Unit:           unit,
		Nutrition:      rec,
		TotalNutrition: Scale(rec, Multiplier(qty, unit)),
		Summary:        mealbalance.Summarize(rec.Meal()),
		Source:         rec.Source,
	}, nil
}

// Multiplier is qty for counted units and qty/100 for everything else
func Multiplier(qty float64, unit string) float64 {
	if strings.EqualFold(unit, domain.UnitCount) {
		return qty
	}
	return qty / 100
}

// Scale multiplies rec by m; calories round to whole numbers and grams to one decimal, half to even
func Scale(rec domain.Record, m float64) domain.Totals {
	return domain.Totals{
		Calories: math.RoundToEven(rec.Calories * m),
		ProteinG: round1(rec.ProteinG * m),
		FatG:     round1(rec.FatG * m),
		CarbsG:   round1(rec.CarbsG * m),
	}
}

// round1 rounds the exact binary value of v, not v*10, so 0.35 (stored just
// below the tie) gives 0.3
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Suggest returns up to SuggestLimit common and SuggestLimit branded matches.
// Errors and empty queries yield an empty list
func (s *Svc) Suggest(ctx context.Context, query string) domain.Suggestions {
	out := domain.Suggestions{Suggestions: []domain.Suggestion{}}
	query = strings.TrimSpace(query)
	if query == "" {
		return out
	}
	res, err := s.db.Instant(ctx, query)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("food suggestions unavailable")
		return out
	}
	for _, f := range head(res.Common) {
		out.Suggestions = append(out.Suggestions, domain.Suggestion{
			FoodName:    f.FoodName,
			Calories:    f.Calories,
			ServingUnit: f.ServingUnit,
			ServingQty:  f.Qty(),
		})
	}
	for _, f := range head(res.Branded) {
		brand := f.BrandName
		out.Suggestions = append(out.Suggestions, domain.Suggestion{
			FoodName:    f.FoodName,
			BrandName:   &brand,
			Calories:    f.Calories,
			ServingUnit: f.ServingUnit,
			ServingQty:  f.Qty(),
		})
	}
	return out
}

func head(fs []nutritionix.InstantFood) []nutritionix.InstantFood {
	if len(fs) > domain.SuggestLimit {
		return fs[:domain.SuggestLimit]
	}
	return fs
}
