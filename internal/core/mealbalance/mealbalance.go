// Package mealbalance grades one meal's macronutrients against fixed per-meal targets
package mealbalance

import (
	"fmt"
	"strconv"
)

// Meal holds the four graded quantities of one meal
type Meal struct {
	Calories float64
	ProteinG float64
	FatG     float64
	CarbsG   float64
}

// Summary is one sentence per graded dimension
type Summary struct {
	Calories string `json:"calories"`
	ProteinG string `json:"protein_g"`
	FatG     string `json:"fat_g"`
	CarbsG   string `json:"carbs_g"`
}

// Per-meal targets
const (
	TargetCalories = 500.0
	TargetProteinG = 25.0
	TargetFatG     = 20.0
	TargetCarbsG   = 50.0
)

// Band is where a value falls relative to its target
type Band int

const (
	Moderate Band = iota
	Low
	High
)

func (b Band) String() string {
	switch b {
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return "moderate"
	}
}

// limits are ratio bounds: below lo is Low, above hi is High
type limits struct{ lo, hi float64 }

var (
	proteinLimits = limits{lo: 0.7, hi: 1.3}
	otherLimits   = limits{lo: 0.5, hi: 1.2}
)

func grade(value, target float64, l limits) Band {
	switch {
	case value < l.lo*target:
		return Low
	case value > l.hi*target:
		return High
	default:
		return Moderate
	}
}

// Grades returns the band of every dimension
func Grades(m Meal) (calories, protein, fat, carbs Band) {
	return grade(m.Calories, TargetCalories, otherLimits),
		grade(m.ProteinG, TargetProteinG, proteinLimits),
		grade(m.FatG, TargetFatG, otherLimits),
		grade(m.CarbsG, TargetCarbsG, otherLimits)
}

type templates [3]string // indexed by Band

var (
	caloriesText = templates{
		Moderate: "Moderate calories (%s kcal) – reasonable calorie intake for this meal.",
		Low:      "Low calories (%s kcal) – light meal, ensure enough intake later.",
		High:     "High calories (%s kcal) – consider portion control for remaining meals.",
	}
	proteinText = templates{
		Moderate: "Moderate protein (%sg) – protein intake is well-balanced for this meal.",
		Low:      "Low protein (%sg) – consider increasing protein intake in upcoming meals.",
		High:     "High protein (%sg) – adequate for this meal, balance protein in next meals.",
	}
	fatText = templates{
		Moderate: "Moderate fat (%sg) – fat intake is balanced for this meal.",
		Low:      "Low fat (%sg) – acceptable for a light meal, ensure adequate intake later.",
		High:     "High fat (%sg) – consider moderating fat intake in subsequent meals.",
	}
	carbsText = templates{
		Moderate: "Moderate carbs (%sg) – carbohydrate intake is balanced.",
		Low:      "Low carbs (%sg) – could increase carbohydrate intake if energy is needed.",
		High:     "High carbs (%sg) – watch portion sizes in the rest of the day.",
	}
)

func (t templates) render(b Band, v float64) string {
	return fmt.Sprintf(t[b], num(v))
}

// Summarize grades m and renders one sentence per dimension
func Summarize(m Meal) Summary {
	cal, pro, fat, carb := Grades(m)
	return Summary{
		Calories: caloriesText.render(cal, m.Calories),
		ProteinG: proteinText.render(pro, m.ProteinG),
		FatG:     fatText.render(fat, m.FatG),
		CarbsG:   carbsText.render(carb, m.CarbsG),
	}
}

// num prints the shortest exact decimal: 10 -> "10", 12.5 -> "12.5"
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
