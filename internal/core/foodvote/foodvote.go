// Package foodvote turns raw classifier output into a single food decision.
//
// Two strategies live here: area-weighted selection over object-detector boxes,
// and majority voting across an ensemble of classification workflows.
package foodvote

import (
	"sort"
	"strings"
)

// Detection is one detector box reduced to what selection needs
type Detection struct {
	Class      string
	Confidence float64
	Area       float64
}

// Aggregate accumulates the detections of one class
type Aggregate struct {
	Class         string
	Count         int
	TotalArea     float64
	MaxConfidence float64
}

// IgnoreSet holds lower-cased class names that never count as food
type IgnoreSet map[string]struct{}

// DefaultIgnore lists tableware and drinks commonly detected next to a meal
var DefaultIgnore = []string{"juice", "fork", "plate", "glass", "cup", "knife", "spoon", "bowl"}

// NewIgnoreSet builds an IgnoreSet, trimming and lower-casing names
func NewIgnoreSet(names ...string) IgnoreSet {
	s := make(IgnoreSet, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Has reports whether class is ignored
func (s IgnoreSet) Has(class string) bool {
	_, ok := s[class]
	return ok
}

// Group folds detections per class, skipping ignored classes, sorted by class name
func Group(dets []Detection, ignore IgnoreSet) []Aggregate {
	byClass := map[string]*Aggregate{}
	for _, d := range dets {
		if ignore.Has(d.Class) {
			continue
		}
		a, ok := byClass[d.Class]
		if !ok {
			a = &Aggregate{Class: d.Class}
			byClass[d.Class] = a
		}
		a.Count++
		a.TotalArea += d.Area
		if d.Confidence > a.MaxConfidence {
			a.MaxConfidence = d.Confidence
		}
	}
	out := make([]Aggregate, 0, len(byClass))
	for _, a := range byClass {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}

// Pick selects the class covering the largest total area.
// Equal areas resolve to the lexicographically smallest class.
// ok is false when nothing survives the ignore filter
func Pick(dets []Detection, ignore IgnoreSet) (best Aggregate, ok bool) {
	for _, a := range Group(dets, ignore) {
		// Group output is sorted, so strict > keeps the smallest name on ties
		if !ok || a.TotalArea > best.TotalArea {
			best, ok = a, true
		}
	}
	return best, ok
}
