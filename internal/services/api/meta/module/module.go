// Package module wires meta endpoints into the API using a tiny module
package module

import (
	modkit "nutriscope/internal/modkit"
	"nutriscope/internal/modkit/httpkit"
	str "nutriscope/internal/platform/strings"

	metahttp "nutriscope/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	ready func() map[string]bool
}

// New constructs a meta module; ready feeds /meta/ready and may be nil
func New(_ modkit.Deps, ready func() map[string]bool, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)
	return &Module{b: b, ready: ready}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{Ready: m.ready})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
