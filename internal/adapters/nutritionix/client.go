// Package nutritionix is a client for the Nutritionix Track API v2
package nutritionix

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"nutriscope/internal/adapters/upstream"
	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/retry"
)

// DefaultBaseURL is the public Track API host
const DefaultBaseURL = "https://trackapi.nutritionix.com"

// Options configures the Client
type Options struct {
	AppID   string
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Retry   retry.Policy
}

// FromConfig reads NUTRITIONIX_* style keys from cfg
func FromConfig(cfg config.Conf) Options {
	return Options{
		AppID:   cfg.MaySecret("APP_ID"),
		APIKey:  cfg.MaySecret("API_KEY"),
		BaseURL: cfg.MayURL("BASE_URL", DefaultBaseURL),
		Timeout: cfg.MayDuration("TIMEOUT", 30*time.Second),
		Retry:   retry.FromConfig(cfg),
	}
}

// Client talks to Nutritionix
type Client struct {
	up         *upstream.Client
	configured bool
}

// New builds a Client; without both credentials every call fails with NotConfigured
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	return &Client{
		configured: o.AppID != "" && o.APIKey != "",
		up: upstream.New(upstream.Options{
			Name:    "nutritionix",
			BaseURL: o.BaseURL,
			Timeout: o.Timeout,
			Retry:   o.Retry,
			Header: http.Header{
				"X-App-Id":  {o.AppID},
				"X-App-Key": {o.APIKey},
			},
		}),
	}
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool { return c.configured }

func (c *Client) check() error {
	if !c.configured {
		return perr.NotConfiguredf("nutritionix credentials not configured")
	}
	return nil
}

// Nutrients are the per-serving values of the best natural-language match
type Nutrients struct {
	FoodName string
	Calories float64
	ProteinG float64
	FatG     float64
	CarbsG   float64
}

// ErrNoMatch is returned when Nutritionix understood the request but matched no food
var ErrNoMatch = perr.NotFoundf("nutritionix: no matching food")

// Nutrients resolves query with POST /v2/natural/nutrients and returns foods[0].
// Missing numeric fields read as 0
func (c *Client) Nutrients(ctx context.Context, query string) (Nutrients, error) {
	if err := c.check(); err != nil {
		return Nutrients{}, err
	}
	var out naturalResponse
	err := c.up.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "/v2/natural/nutrients",
		Body:   naturalRequest{Query: query},
	}, &out)
	if err != nil {
		c.up.Log().Warn().Err(err).Str("food", query).Msg("nutrients lookup failed")
		return Nutrients{}, err
	}
	if len(out.Foods) == 0 {
		return Nutrients{}, ErrNoMatch
	}
	f := out.Foods[0]
	return Nutrients{
		FoodName: f.FoodName,
		Calories: f.Calories,
		ProteinG: f.Protein,
		FatG:     f.TotalFat,
		CarbsG:   f.TotalCarbohydrate,
	}, nil
}

// Instant matches query against common and branded foods with GET /v2/search/instant
func (c *Client) Instant(ctx context.Context, query string) (InstantResult, error) {
	if err := c.check(); err != nil {
		return InstantResult{}, err
	}
	var out InstantResult
	err := c.up.Do(ctx, upstream.Request{
		Method: http.MethodGet,
		Path:   "/v2/search/instant",
		Query:  url.Values{"query": {query}},
	}, &out)
	if err != nil {
		c.up.Log().Warn().Err(err).Str("query", query).Msg("instant search failed")
		return InstantResult{}, err
	}
	return out, nil
}
