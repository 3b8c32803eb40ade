// Package module wires nutrition into the API using modkit
package module

import (
	"nutriscope/internal/adapters/cohere"
	"nutriscope/internal/adapters/nutritionix"
	modkit "nutriscope/internal/modkit"
	"nutriscope/internal/modkit/httpkit"
	str "nutriscope/internal/platform/strings"
	nuthttp "nutriscope/internal/services/nutrition/http"
	nutsvc "nutriscope/internal/services/nutrition/service"
)

// Module implements the nutrition module
type Module struct {
	b     modkit.Built
	svc   nutsvc.Service
	ports Ports
}

// New builds the nutrition module from NUTRITIONIX_ and COHERE_ config
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	svc := nutsvc.New(nutritionix.New(o.Nutritionix), cohere.New(o.Cohere), deps.Logger("nutrition"))
	return NewWithService(svc, opts...)
}

// NewWithService wires an existing service, mostly for tests
func NewWithService(svc *nutsvc.Svc, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("nutrition")}, opts...)...)
	return &Module{
		b:     b,
		svc:   svc,
		ports: Ports{Resolver: svc, status: svc.Configured},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { nuthttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }
