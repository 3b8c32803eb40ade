package domain

import (
	"context"

	nutdomain "nutriscope/internal/services/nutrition/domain"
)

// NutritionPort is provided by the nutrition module
type NutritionPort interface {
	Resolve(ctx context.Context, food string) nutdomain.Record
}

// ServicePort is consumed by handlers
type ServicePort interface {
	Identify(ctx context.Context, img Image, t FoodType) (Identification, error)
	Predict(ctx context.Context, img Image, t FoodType) (Prediction, error)
}
