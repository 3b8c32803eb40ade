// Package cohere is a minimal client for the Cohere v1 chat endpoint, used to
// estimate nutrition when no database match exists
package cohere

import (
	"context"
	"net/http"
	"time"

	"nutriscope/internal/adapters/upstream"
	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/retry"
)

// Defaults for the chat endpoint
const (
	DefaultBaseURL = "https://api.cohere.com"
	DefaultModel   = "command-xlarge-nightly"
)

// Options configures the Client
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Retry   retry.Policy
}

// FromConfig reads COHERE_* style keys from cfg
func FromConfig(cfg config.Conf) Options {
	return Options{
		APIKey:  cfg.MaySecret("API_KEY"),
		BaseURL: cfg.MayURL("BASE_URL", DefaultBaseURL),
		Model:   cfg.MayString("MODEL", DefaultModel),
		Timeout: cfg.MayDuration("TIMEOUT", 30*time.Second),
		Retry:   retry.FromConfig(cfg),
	}
}

// Client calls Cohere chat
type Client struct {
	up    *upstream.Client
	model string
	key   string
}

// New builds a Client; without an API key Chat fails with NotConfigured
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	h := http.Header{}
	if o.APIKey != "" {
		h.Set("Authorization", "Bearer "+o.APIKey)
	}
	return &Client{
		key:   o.APIKey,
		model: o.Model,
		up: upstream.New(upstream.Options{
			Name:    "cohere",
			BaseURL: o.BaseURL,
			Timeout: o.Timeout,
			Retry:   o.Retry,
			Header:  h,
		}),
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool { return c.key != "" }

type chatRequest struct {
	Model   string `json:"model"`
	Message string `json:"message"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// Chat sends a single-turn message and returns the reply text
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if !c.Configured() {
		return "", perr.NotConfiguredf("cohere api key not configured")
	}
	var out chatResponse
	err := c.up.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "/v1/chat",
		Body:   chatRequest{Model: c.model, Message: message},
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
