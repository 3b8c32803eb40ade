package roboflow

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
)

const workflowBody = `{
  "outputs": [
    {
      "predictions": {
        "image": {"width": 640, "height": 480},
        "predictions": [
          {"width": 210, "height": 180, "x": 320, "y": 240, "confidence": 0.91, "class_id": 4, "class": "Masala Dosa", "detection_id": "a1", "parent_id": "image"},
          {"width": 60, "height": 50, "x": 100, "y": 90, "confidence": 0.42, "class_id": 9, "class": "chutney", "detection_id": "a2", "parent_id": "image"}
        ]
      }
    }
  ],
  "profiler_trace": []
}`

func TestParseWorkflow(t *testing.T) {
	wf, err := ParseWorkflow(" south-indian/custom-workflow-1 ")
	if err != nil || wf.Workspace != "south-indian" || wf.ID != "custom-workflow-1" {
		t.Fatalf("got %+v err=%v", wf, err)
	}
	if wf.String() != "south-indian/custom-workflow-1" {
		t.Fatalf("String() = %q", wf.String())
	}
	for _, bad := range []string{"", "noslash", "/id", "ws/", "a/b/c"} {
		if _, err := ParseWorkflow(bad); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Errorf("ParseWorkflow(%q) err = %v, want invalid_argument", bad, err)
		}
	}
}

func TestRun_DecodesPredictions(t *testing.T) {
	img := []byte{0xff, 0xd8, 0xff, 0xe0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/south-indian/workflows/custom-workflow-2" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var in runRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.APIKey != "rf-key" || !in.UseCache {
			t.Errorf("request = %+v", in)
		}
		if in.Inputs["image"].Type != "base64" || in.Inputs["image"].Value != base64.StdEncoding.EncodeToString(img) {
			t.Errorf("image input = %+v", in.Inputs["image"])
		}
		_, _ = w.Write([]byte(workflowBody))
	}))
	defer srv.Close()

	c := New(Options{APIKey: "rf-key", BaseURL: srv.URL, UseCache: true})
	preds, err := c.Run(context.Background(), Workflow{Workspace: "south-indian", ID: "custom-workflow-2"}, img)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("len = %d", len(preds))
	}
	if preds[0].Class != "Masala Dosa" || preds[0].Confidence != 0.91 || preds[0].ClassID != 4 {
		t.Fatalf("first prediction = %+v", preds[0])
	}
}

func TestRun_EmptyOutputs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"outputs": []}`))
	}))
	defer srv.Close()

	c := New(Options{APIKey: "k", BaseURL: srv.URL})
	preds, err := c.Run(context.Background(), Workflow{"w", "f"}, nil)
	if err != nil || len(preds) != 0 {
		t.Fatalf("preds=%v err=%v", preds, err)
	}
}

func TestRun_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Unauthorized api_key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(Options{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Run(context.Background(), Workflow{"w", "f"}, []byte("x"))
	if perr.UpstreamStatus(err) != http.StatusForbidden {
		t.Fatalf("err = %v, want upstream 403", err)
	}
}

func TestRun_NotConfigured(t *testing.T) {
	c := New(Options{})
	if _, err := c.Run(context.Background(), Workflow{"w", "f"}, nil); !perr.IsCode(err, perr.ErrorCodeNotConfigured) {
		t.Fatalf("err = %v, want not_configured", err)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("ROBOFLOW_USE_CACHE", "false")
	o := FromConfig(config.New().Prefix("ROBOFLOW_"))
	if o.UseCache || o.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected options %+v", o)
	}
}
