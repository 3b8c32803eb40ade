package module

import (
	"nutriscope/internal/adapters/cohere"
	"nutriscope/internal/adapters/nutritionix"
	"nutriscope/internal/platform/config"
)

// Options holds the upstream client settings for nutrition
type Options struct {
	Nutritionix nutritionix.Options
	Cohere      cohere.Options
}

// FromConfig reads NUTRITIONIX_ and COHERE_ keys
func FromConfig(cfg config.Conf) Options {
	return Options{
		Nutritionix: nutritionix.FromConfig(cfg.Prefix("NUTRITIONIX_")),
		Cohere:      cohere.FromConfig(cfg.Prefix("COHERE_")),
	}
}
