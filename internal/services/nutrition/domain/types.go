// Package domain holds nutrition records and the DTOs of the nutrition endpoints
package domain

import "nutriscope/internal/core/mealbalance"

// Source tags where a Record came from
type Source string

const (
	SourceNutritionix         Source = "nutritionix"
	SourceCohere              Source = "cohere_ai"
	SourceCohereNotConfigured Source = "cohere_not_configured"
	SourceFallback            Source = "fallback"
)

// Record is the nutrition of one serving; values are 0 when unresolved
type Record struct {
	Calories float64 `json:"calories" example:"285"`
	ProteinG float64 `json:"protein_g" example:"12.2"`
	FatG     float64 `json:"fat_g" example:"10.4"`
	CarbsG   float64 `json:"carbs_g" example:"35.7"`
	Source   Source  `json:"source" example:"nutritionix"`
}

// Meal converts r for grading
func (r Record) Meal() mealbalance.Meal {
	return mealbalance.Meal{Calories: r.Calories, ProteinG: r.ProteinG, FatG: r.FatG, CarbsG: r.CarbsG}
}

// Totals is a Record scaled to the requested quantity
type Totals struct {
	Calories float64 `json:"calories" example:"713"`
	ProteinG float64 `json:"protein_g" example:"30.5"`
	FatG     float64 `json:"fat_g" example:"26"`
	CarbsG   float64 `json:"carbs_g" example:"89.3"`
}

// Units accepted by manual nutrition; anything other than UnitCount is per 100
const (
	UnitGrams = "grams"
	UnitCount = "count"

	DefaultQuantity = 100.0
)

// ManualInput is the body of POST /manual-nutrition
type ManualInput struct {
	FoodName string   `json:"food_name" validate:"required" example:"paneer tikka"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0" example:"250"`
	Unit     string   `json:"unit,omitempty" example:"grams"`
}

// ManualResult is the response of POST /manual-nutrition
type ManualResult struct {
	FoodName       string              `json:"food_name" example:"paneer tikka"`
	Quantity       float64             `json:"quantity" example:"250"`
	Unit           string              `json:"unit" example:"grams"`
	Nutrition      Record              `json:"nutrition"`
	TotalNutrition Totals              `json:"total_nutrition"`
	Summary        mealbalance.Summary `json:"summary"`
	Source         Source              `json:"source" example:"nutritionix"`
}

// SuggestLimit caps common and branded matches separately
const SuggestLimit = 10

// Suggestion is one autocomplete hit; BrandName is present only for branded foods
type Suggestion struct {
	FoodName    string  `json:"food_name" example:"chicken tikka masala"`
	BrandName   *string `json:"brand_name,omitempty"`
	Calories    float64 `json:"calories" example:"0"`
	ServingUnit string  `json:"serving_unit" example:"cup"`
	ServingQty  float64 `json:"serving_qty" example:"1"`
}

// Suggestions is the response of GET /food-suggestions
type Suggestions struct {
	Suggestions []Suggestion `json:"suggestions"`
}
