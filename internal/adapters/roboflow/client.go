// Package roboflow runs hosted Roboflow workflows against an image
package roboflow

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutriscope/internal/adapters/upstream"
	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/retry"
)

// DefaultBaseURL is the serverless inference host
const DefaultBaseURL = "https://serverless.roboflow.com"

// Workflow addresses one hosted workflow
type Workflow struct {
	Workspace string
	ID        string
}

func (w Workflow) String() string { return w.Workspace + "/" + w.ID }

// ParseWorkflow parses "workspace/workflow_id"
func ParseWorkflow(s string) (Workflow, error) {
	ws, id, ok := strings.Cut(strings.TrimSpace(s), "/")
	ws, id = strings.TrimSpace(ws), strings.TrimSpace(id)
	if !ok || ws == "" || id == "" || strings.Contains(id, "/") {
		return Workflow{}, perr.InvalidArgf("roboflow workflow %q must be workspace/workflow_id", s)
	}
	return Workflow{Workspace: ws, ID: id}, nil
}

// Options configures the Client
type Options struct {
	APIKey   string
	BaseURL  string
	UseCache bool
	Timeout  time.Duration
	Retry    retry.Policy
}

// FromConfig reads ROBOFLOW_* style keys from cfg
func FromConfig(cfg config.Conf) Options {
	return Options{
		APIKey:   cfg.MaySecret("API_KEY"),
		BaseURL:  cfg.MayURL("API_URL", DefaultBaseURL),
		UseCache: cfg.MayBool("USE_CACHE", true),
		Timeout:  cfg.MayDuration("TIMEOUT", 30*time.Second),
		Retry:    retry.FromConfig(cfg),
	}
}

// Client runs workflows
type Client struct {
	up       *upstream.Client
	key      string
	useCache bool
}

// New builds a Client; without an API key every run fails with NotConfigured
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	return &Client{
		key:      o.APIKey,
		useCache: o.UseCache,
		up: upstream.New(upstream.Options{
			Name:    "roboflow",
			BaseURL: o.BaseURL,
			Timeout: o.Timeout,
			Retry:   o.Retry,
		}),
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool { return c.key != "" }

// Prediction is one labelled prediction from a workflow
type Prediction struct {
	Class      string  `json:"class"`
	ClassID    int     `json:"class_id"`
	Confidence float64 `json:"confidence"`
}

type imageInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type runRequest struct {
	APIKey   string                `json:"api_key"`
	UseCache bool                  `json:"use_cache"`
	Inputs   map[string]imageInput `json:"inputs"`
}

type runResponse struct {
	Outputs []struct {
		Predictions struct {
			Predictions []Prediction `json:"predictions"`
		} `json:"predictions"`
	} `json:"outputs"`
}

// Run posts image to wf and returns outputs[0].predictions.predictions.
// An empty outputs list yields no predictions and no error
func (c *Client) Run(ctx context.Context, wf Workflow, image []byte) ([]Prediction, error) {
	if !c.Configured() {
		return nil, perr.NotConfiguredf("roboflow api key not configured")
	}
	var out runResponse
	err := c.up.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		Path:   "/" + url.PathEscape(wf.Workspace) + "/workflows/" + url.PathEscape(wf.ID),
		Body: runRequest{
			APIKey:   c.key,
			UseCache: c.useCache,
			Inputs: map[string]imageInput{
				"image": {Type: "base64", Value: base64.StdEncoding.EncodeToString(image)},
			},
		},
	}, &out)
	if err != nil {
		c.up.Log().Warn().Err(err).Str("workflow", wf.String()).Msg("workflow run failed")
		return nil, perr.WithOp(err, "roboflow.Run")
	}
	if len(out.Outputs) == 0 {
		return nil, nil
	}
	return out.Outputs[0].Predictions.Predictions, nil
}
