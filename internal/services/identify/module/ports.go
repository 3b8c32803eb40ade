package module

import (
	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/services/identify/domain"
)

// Ports declares what identify needs injected from outside
type Ports struct {
	Nutrition domain.NutritionPort
	Detector  detector.Detector
}

// status is the port set identify exposes for readiness
type status struct {
	detector bool
	roboflow bool
}

// Configured reports which identification collaborators are usable
func (s status) Configured() map[string]bool {
	return map[string]bool{"detector": s.detector, "roboflow": s.roboflow}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
