package cohere

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Estimate is an AI nutrition guess for one serving
type Estimate struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

const promptFormat = `Provide estimated nutrition info for '%s'.
Return JSON ONLY in this format:
{
    "calories": number,
    "protein_g": number,
    "fat_g": number,
    "carbs_g": number
}`

// Prompt renders the nutrition question for food
func Prompt(food string) string { return fmt.Sprintf(promptFormat, food) }

// EstimateNutrition asks the model for food's nutrition and parses the reply
func (c *Client) EstimateNutrition(ctx context.Context, food string) (Estimate, error) {
	text, err := c.Chat(ctx, Prompt(food))
	if err != nil {
		c.up.Log().Warn().Err(err).Str("food", food).Msg("nutrition estimate failed")
		return Estimate{}, err
	}
	est, strict := ParseEstimate(text)
	if !strict {
		c.up.Log().Warn().Str("food", food).Msg("reply was not strict JSON, extracted fields by pattern")
	}
	return est, nil
}

var fieldPatterns = map[string]*regexp.Regexp{
	"calories":  regexp.MustCompile(`"calories"\s*:\s*([\d.]+)`),
	"protein_g": regexp.MustCompile(`"protein_g"\s*:\s*([\d.]+)`),
	"fat_g":     regexp.MustCompile(`"fat_g"\s*:\s*([\d.]+)`),
	"carbs_g":   regexp.MustCompile(`"carbs_g"\s*:\s*([\d.]+)`),
}

// ParseEstimate decodes a model reply. strict is true when the trimmed reply was valid JSON;
// otherwise each field is pulled out by pattern and missing fields read as 0
func ParseEstimate(text string) (est Estimate, strict bool) {
	text = strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(text), &est); err == nil {
		return est, true
	}
	return Estimate{
		Calories: extract(text, "calories"),
		ProteinG: extract(text, "protein_g"),
		FatG:     extract(text, "fat_g"),
		CarbsG:   extract(text, "carbs_g"),
	}, false
}

func extract(text, field string) float64 {
	m := fieldPatterns[field].FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}
