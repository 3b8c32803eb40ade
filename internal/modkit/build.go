package modkit

import (
	"net/http"

	"nutriscope/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	BodyLimit int64

	// router hooks set via options and exposed to modules
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		BodyLimit: c.bodyLimit,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount applies the built prefix, middlewares and hooks around mount
// an empty or "/" prefix mounts in a group at the current level
func (b Built) Mount(r httpkit.Router, mount func(httpkit.Router)) {
	scoped := func(rr httpkit.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		rr = b.Subrouter(rr)
		mount(rr)
		b.Register(rr)
	}
	if b.Prefix == "" || b.Prefix == "/" {
		r.Group(scoped)
		return
	}
	r.Route(b.Prefix, scoped)
}
