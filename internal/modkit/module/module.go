// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "nutriscope/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// keep this sibling to avoid import knots when a module also exports its own ports type
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Readiness is implemented by port sets whose upstream collaborators may be unconfigured
type Readiness interface {
	// Configured maps collaborator name to whether credentials/handles are present
	Configured() map[string]bool
}

// Configured merges the Readiness reports of every module exposing one
func Configured(mods ...Module) map[string]bool {
	out := map[string]bool{}
	for _, m := range mods {
		r, ok := PortsOf[Readiness](m)
		if !ok {
			continue
		}
		for k, v := range r.Configured() {
			out[k] = v
		}
	}
	return out
}
