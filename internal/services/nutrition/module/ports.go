package module

import "nutriscope/internal/services/nutrition/domain"

// Ports are exposed to other modules
type Ports struct {
	Resolver domain.ResolverPort
	status   func() map[string]bool
}

// Configured reports upstream credentials for readiness
func (p Ports) Configured() map[string]bool { return p.status() }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
