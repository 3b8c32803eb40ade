package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"nutriscope/internal/modkit"
	"nutriscope/internal/modkit/module"
	"nutriscope/internal/platform/config"
	phttp "nutriscope/internal/platform/net/http"
	kit "nutriscope/internal/platform/testkit"
	"nutriscope/internal/services/nutrition/domain"
)

func TestNew_UnconfiguredUpstreams(t *testing.T) {
	t.Setenv("NUTRITIONIX_APP_ID", "")
	t.Setenv("NUTRITIONIX_API_KEY", "")
	t.Setenv("COHERE_API_KEY", "")

	m := New(modkit.Deps{Cfg: config.New()})
	if m.Name() != "nutrition" {
		t.Fatalf("name = %q", m.Name())
	}

	ports := module.MustPortsOf[Ports](m)
	rec := ports.Resolver.Resolve(context.Background(), "idli")
	if rec != (domain.Record{Source: domain.SourceCohereNotConfigured}) {
		t.Fatalf("Resolve = %+v", rec)
	}
	if got := module.Configured(m); got["nutritionix"] || got["cohere"] {
		t.Fatalf("readiness = %v", got)
	}
}

func TestMountRoutes(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()})
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/food-suggestions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `"suggestions":[]`)
}
