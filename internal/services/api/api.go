// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
	phttp "nutriscope/internal/platform/net/http"

	"nutriscope/internal/modkit"
	"nutriscope/internal/modkit/httpkit"
	"nutriscope/internal/modkit/module"
	"nutriscope/internal/modkit/swaggerkit"

	metamod "nutriscope/internal/services/api/meta/module"
	identmod "nutriscope/internal/services/identify/module"
	nutmod "nutriscope/internal/services/nutrition/module"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules read their own prefixes from it
	Config config.Conf
	// API is the CORE_API_ scope
	API            config.Conf
	Detector       detector.Detector
	EnableSwagger  bool
	EnableProfiler bool
	MaxUploadMB    int
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}

	// middleware must be registered before any route
	r.Use(httpkit.CommonStack(httpkit.StackFromConfig(opt.API))...)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		phttp.RespondError(w, req, perr.NotFoundf("route %s not found", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		phttp.JSON(w, http.StatusMethodNotAllowed, perr.Wire{
			Error: "method " + req.Method + " not allowed on " + req.URL.Path,
			Code:  "method_not_allowed",
		})
	})

	// nutrition first so identify can consume its resolver
	nutrition := nutmod.New(deps)
	resolver := module.MustPortsOf[nutmod.Ports](nutrition).Resolver

	uploadMB := opt.MaxUploadMB
	if uploadMB <= 0 {
		uploadMB = 16
	}
	identify := identmod.New(
		deps,
		modkit.WithPorts(identmod.Ports{Nutrition: resolver, Detector: opt.Detector}),
		modkit.WithBodyLimit(int64(uploadMB)<<20),
	)

	mods := []module.Module{nutrition, identify}
	ready := func() map[string]bool { return module.Configured(mods...) }
	mods = append(mods, metamod.New(deps, ready))

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	for _, m := range mods {
		m.MountRoutes(r)
	}
}
