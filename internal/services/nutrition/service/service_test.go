package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"nutriscope/internal/adapters/cohere"
	"nutriscope/internal/adapters/nutritionix"
	perr "nutriscope/internal/platform/errors"
	kit "nutriscope/internal/platform/testkit"
	"nutriscope/internal/services/nutrition/domain"
)

type fakeDB struct {
	configured bool
	nutrients  nutritionix.Nutrients
	err        error
	instant    nutritionix.InstantResult
	instantErr error
	queries    []string
}

func (f *fakeDB) Configured() bool { return f.configured }
func (f *fakeDB) Nutrients(_ context.Context, q string) (nutritionix.Nutrients, error) {
	f.queries = append(f.queries, q)
	return f.nutrients, f.err
}
func (f *fakeDB) Instant(_ context.Context, q string) (nutritionix.InstantResult, error) {
	f.queries = append(f.queries, q)
	return f.instant, f.instantErr
}

type fakeAI struct {
	configured bool
	est        cohere.Estimate
	err        error
	calls      int
}

func (f *fakeAI) Configured() bool { return f.configured }
func (f *fakeAI) EstimateNutrition(context.Context, string) (cohere.Estimate, error) {
	f.calls++
	return f.est, f.err
}

var errDown = perr.Unavailablef("down")

func TestResolve_NutritionixFirst(t *testing.T) {
	db := &fakeDB{configured: true, nutrients: nutritionix.Nutrients{Calories: 285, ProteinG: 12.2, FatG: 10.4, CarbsG: 35.7}}
	ai := &fakeAI{configured: true}
	rec := New(db, ai, nil).Resolve(context.Background(), "pizza")

	want := domain.Record{Calories: 285, ProteinG: 12.2, FatG: 10.4, CarbsG: 35.7, Source: domain.SourceNutritionix}
	if rec != want {
		t.Fatalf("rec = %+v", rec)
	}
	if ai.calls != 0 {
		t.Fatal("cohere should not be asked on a nutritionix hit")
	}
}

func TestResolve_Fallbacks(t *testing.T) {
	cases := []struct {
		name string
		db   *fakeDB
		ai   *fakeAI
		want domain.Record
	}{
		{
			name: "no match uses cohere",
			db:   &fakeDB{configured: true, err: nutritionix.ErrNoMatch},
			ai:   &fakeAI{configured: true, est: cohere.Estimate{Calories: 150, ProteinG: 4, FatG: 3, CarbsG: 28}},
			want: domain.Record{Calories: 150, ProteinG: 4, FatG: 3, CarbsG: 28, Source: domain.SourceCohere},
		},
		{
			name: "nutritionix unconfigured uses cohere",
			db:   &fakeDB{err: perr.NotConfiguredf("no creds")},
			ai:   &fakeAI{configured: true, est: cohere.Estimate{Calories: 90}},
			want: domain.Record{Calories: 90, Source: domain.SourceCohere},
		},
		{
			name: "cohere without key",
			db:   &fakeDB{configured: true, err: errDown},
			ai:   &fakeAI{err: perr.NotConfiguredf("no key")},
			want: domain.Record{Source: domain.SourceCohereNotConfigured},
		},
		{
			name: "cohere failure",
			db:   &fakeDB{configured: true, err: errDown},
			ai:   &fakeAI{configured: true, err: errors.New("timeout")},
			want: domain.Record{Source: domain.SourceFallback},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := New(tc.db, tc.ai, nil).Resolve(context.Background(), "dosa"); got != tc.want {
				t.Fatalf("Resolve = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestResolve_NeverFails(t *testing.T) {
	s := New(&fakeDB{err: errDown}, &fakeAI{configured: true, err: errDown}, nil)
	kit.MustNotPanic(t, func() {
		rec := s.Resolve(context.Background(), "")
		if rec.Source == "" {
			t.Fatal("source must always be set")
		}
	})
}

func TestNew_RequiresCollaborators(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, &fakeAI{}, nil) })
	kit.MustPanic(t, func() { New(&fakeDB{}, nil, nil) })
}

func TestConfigured(t *testing.T) {
	got := New(&fakeDB{configured: true}, &fakeAI{}, nil).Configured()
	if !got["nutritionix"] || got["cohere"] {
		t.Fatalf("Configured = %v", got)
	}
}

func ptr(v float64) *float64 { return &v }

func TestManual_GramsScaling(t *testing.T) {
	db := &fakeDB{configured: true, nutrients: nutritionix.Nutrients{Calories: 100, ProteinG: 10, FatG: 5, CarbsG: 20}}
	res, err := New(db, &fakeAI{}, nil).Manual(context.Background(), domain.ManualInput{FoodName: "rice", Quantity: ptr(250)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Unit != domain.UnitGrams || res.Quantity != 250 {
		t.Fatalf("defaults not applied: %+v", res)
	}
	want := domain.Totals{Calories: 250, ProteinG: 25, FatG: 12.5, CarbsG: 50}
	if res.TotalNutrition != want {
		t.Fatalf("totals = %+v", res.TotalNutrition)
	}
	if res.Source != domain.SourceNutritionix || res.Nutrition.Source != res.Source {
		t.Fatalf("source = %q / %q", res.Source, res.Nutrition.Source)
	}
	// graded on the per-serving record
	kit.MustContain(t, res.Summary.ProteinG, "Low protein (10g)")
}

func TestManual_DefaultsAndCount(t *testing.T) {
	db := &fakeDB{configured: true, nutrients: nutritionix.Nutrients{Calories: 70}}
	s := New(db, &fakeAI{}, nil)

	res, _ := s.Manual(context.Background(), domain.ManualInput{FoodName: "egg"})
	if res.Quantity != 100 || res.TotalNutrition.Calories != 70 {
		t.Fatalf("default quantity: %+v", res)
	}

	res, _ = s.Manual(context.Background(), domain.ManualInput{FoodName: "egg", Quantity: ptr(3), Unit: "count"})
	if res.TotalNutrition.Calories != 210 || res.Unit != "count" {
		t.Fatalf("count: %+v", res)
	}
}

func TestMultiplier(t *testing.T) {
	cases := []struct {
		qty  float64
		unit string
		want float64
	}{
		{250, "grams", 2.5},
		{2, "count", 2},
		{2, "Count", 2},
		{50, "oz", 0.5},
	}
	for _, tc := range cases {
		if got := Multiplier(tc.qty, tc.unit); got != tc.want {
			t.Errorf("Multiplier(%v, %q) = %v, want %v", tc.qty, tc.unit, got, tc.want)
		}
	}
}

func TestScale_HalfToEven(t *testing.T) {
	got := Scale(domain.Record{Calories: 2.5, ProteinG: 0.25, FatG: 0.75, CarbsG: 1.04}, 1)
	want := domain.Totals{Calories: 2, ProteinG: 0.2, FatG: 0.8, CarbsG: 1}
	if got != want {
		t.Fatalf("Scale = %+v, want %+v", got, want)
	}
	if c := Scale(domain.Record{Calories: 3.5}, 1).Calories; c != 4 {
		t.Fatalf("3.5 should round to 4, got %v", c)
	}
}

func TestScale_RoundsStoredValue(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.35, 0.3}, // stored as 0.34999...
		{0.45, 0.5}, // stored as 0.45000...01
		{2.675, 2.7},
		{12.04, 12},
		{-0.25, -0.2},
	}
	for _, tc := range cases {
		if got := Scale(domain.Record{ProteinG: tc.in}, 1).ProteinG; got != tc.want {
			t.Errorf("ProteinG %v -> %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	qty := 2.0
	res := nutritionix.InstantResult{}
	for i := 0; i < 12; i++ {
		res.Common = append(res.Common, nutritionix.InstantFood{FoodName: fmt.Sprintf("common %d", i), ServingUnit: "cup"})
		res.Branded = append(res.Branded, nutritionix.InstantFood{FoodName: fmt.Sprintf("branded %d", i), Calories: 120, ServingQty: &qty})
	}
	res.Branded[0].BrandName = "Amul"
	db := &fakeDB{configured: true, instant: res}

	out := New(db, &fakeAI{}, nil).Suggest(context.Background(), " paneer ")
	if len(out.Suggestions) != 20 {
		t.Fatalf("len = %d", len(out.Suggestions))
	}
	if db.queries[0] != "paneer" {
		t.Fatalf("query not trimmed: %q", db.queries[0])
	}
	c, b := out.Suggestions[0], out.Suggestions[10]
	if c.BrandName != nil || c.ServingQty != 1 || c.ServingUnit != "cup" {
		t.Fatalf("common = %+v", c)
	}
	if b.BrandName == nil || *b.BrandName != "Amul" || b.ServingQty != 2 || b.Calories != 120 {
		t.Fatalf("branded = %+v", b)
	}
	if out.Suggestions[11].BrandName == nil || *out.Suggestions[11].BrandName != "" {
		t.Fatal("branded foods always carry brand_name")
	}

	raw, _ := json.Marshal(c)
	if string(raw) != `{"food_name":"common 0","calories":0,"serving_unit":"cup","serving_qty":1}` {
		t.Fatalf("common json = %s", raw)
	}
}

func TestSuggest_EmptyOnErrorOrQuery(t *testing.T) {
	s := New(&fakeDB{instantErr: errDown}, &fakeAI{}, nil)
	for _, q := range []string{"", "   ", "dal"} {
		out := s.Suggest(context.Background(), q)
		if out.Suggestions == nil || len(out.Suggestions) != 0 {
			t.Fatalf("Suggest(%q) = %+v", q, out)
		}
	}
}
