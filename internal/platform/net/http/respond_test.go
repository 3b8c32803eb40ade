package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "nutriscope/internal/platform/errors"
	pnet "nutriscope/internal/platform/net"
	phttp "nutriscope/internal/platform/net/http"
)

// helper to build a request with a request_id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func TestJSONAndText(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("JSON status: expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type = %q", ct)
	}

	rec2 := httptest.NewRecorder()
	phttp.Text(rec2, http.StatusOK, "OK")
	if rec2.Body.String() != "OK" || !strings.HasPrefix(rec2.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("Text wrote %q %q", rec2.Body.String(), rec2.Header().Get("Content-Type"))
	}
}

func TestRespondOK_RawBody(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithReqID("GET", "/x", "rid-1"), map[string]string{"food": "idli"})

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["food"] != "idli" || len(body) != 1 {
		t.Fatalf("expected raw body without envelope, got %#v", body)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := reqWithReqID("POST", "/predict", "rid-err")
	phttp.RespondError(rec, req, perr.Validationf("food_type", "food_type must be 'indian' or 'international'"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var w perr.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Code != "validation" || w.Field != "food_type" || w.RequestID != "rid-err" || w.Error == "" {
		t.Fatalf("bad error body: %+v", w)
	}
}

func TestHandle(t *testing.T) {
	cases := []struct {
		name     string
		resp     phttp.Response
		wantCode int
		wantBody string
		wantCT   string
	}{
		{"ok", phttp.OK(map[string]int{"n": 1}), 200, `{"n":1}`, "application/json"},
		{"created", phttp.Created([]string{"a"}), 201, `["a"]`, "application/json"},
		{"zero status", phttp.Response{Body: true}, 200, "true", "application/json"},
		{"text", phttp.TextOK("OK"), 200, "OK", "text/plain"},
		{"no content", phttp.NoContent(), 204, "", ""},
		{"error", phttp.Error(perr.Unavailablef("cohere down")), 503, `"code":"unavailable"`, "application/json"},
		{"foreign error", phttp.Error(errors.New("boom")), 500, `"error":"boom"`, "application/json"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := phttp.Handle(func(*http.Request) phttp.Response { return c.resp })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest("GET", "/h", nil))
			if rec.Code != c.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, c.wantCode)
			}
			if !strings.Contains(rec.Body.String(), c.wantBody) {
				t.Fatalf("body = %q, want to contain %q", rec.Body.String(), c.wantBody)
			}
			if c.wantCT != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), c.wantCT) {
				t.Fatalf("content-type = %q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHandle_HeaderOverrides(t *testing.T) {
	h := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: 200, Body: "x", Header: http.Header{"X-Extra": {"1"}}}
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Header().Get("X-Extra") != "1" {
		t.Fatalf("header not forwarded")
	}
}
