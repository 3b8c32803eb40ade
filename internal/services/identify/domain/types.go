// Package domain holds the identification types shared by the identify handlers and service
package domain

import (
	"strings"

	"github.com/google/uuid"

	"nutriscope/internal/core/mealbalance"
	perr "nutriscope/internal/platform/errors"
	nutdomain "nutriscope/internal/services/nutrition/domain"
)

// FoodType is the category the client declares for a photo
type FoodType string

const (
	Indian        FoodType = "Indian"
	International FoodType = "International"
)

// UnknownFood is reported when nothing could be identified
const UnknownFood = "Unknown"

// ParseFoodType matches s case-insensitively
func ParseFoodType(s string) (FoodType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indian":
		return Indian, nil
	case "international":
		return International, nil
	}
	return "", perr.Validationf("food_type", "Invalid food_type. Choose 'Indian' or 'International'.")
}

// Image is one uploaded photo, held in memory for a single request
type Image struct {
	ID          uuid.UUID
	Filename    string
	ContentType string
	Data        []byte
}

// NewImage assigns a fresh id
func NewImage(filename, contentType string, data []byte) Image {
	return Image{ID: uuid.New(), Filename: filename, ContentType: contentType, Data: data}
}

// Identification is the outcome of one classifier path
type Identification struct {
	Food       string   `json:"food"`
	Type       FoodType `json:"type"`
	Confidence float64  `json:"confidence"`
	// Err describes an absorbed detector failure
	Err string `json:"error,omitempty"`
}

// Known reports whether a concrete food was found
func (i Identification) Known() bool { return i.Food != "" && i.Food != UnknownFood }

// Prediction is the response of POST /predict
type Prediction struct {
	Food      string              `json:"food" example:"pizza"`
	Type      FoodType            `json:"type" example:"International"`
	Nutrition nutdomain.Record    `json:"nutrition"`
	Summary   mealbalance.Summary `json:"summary"`
}
