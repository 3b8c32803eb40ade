// Package module wires food identification into the API using modkit
package module

import (
	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/adapters/roboflow"
	modkit "nutriscope/internal/modkit"
	"nutriscope/internal/modkit/httpkit"
	identhttp "nutriscope/internal/services/identify/http"
	identsvc "nutriscope/internal/services/identify/service"
)

// Module implements the identify module
type Module struct {
	b     modkit.Built
	svc   identsvc.Service
	ports status
}

// New constructs the identify module. Nutrition must be injected with modkit.WithPorts;
// a missing Detector behaves as no detector
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("identify")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Nutrition == nil {
		panic("identify module requires Nutrition port (from nutrition module)")
	}
	det := injected.Detector
	if det == nil {
		det = detector.None{}
	}

	log := deps.Logger("identify")
	o := FromConfig(deps.Cfg)
	rf := roboflow.New(o.Roboflow)
	svc := identsvc.New(det, rf, injected.Nutrition, o.serviceConfig(log), log)

	_, none := det.(detector.None)
	return &Module{
		b:     b,
		svc:   svc,
		ports: status{detector: !none, roboflow: rf.Configured()},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { identhttp.Register(rr, m.svc, m.b.BodyLimit) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }
