// @title         NutriScope API
// @version       1.0
// @description   Food photo identification with nutrition lookup and meal balance summaries

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nutriscope/internal/platform/config"
	"nutriscope/internal/platform/config/raw"
	"nutriscope/internal/platform/logger"
	phttp "nutriscope/internal/platform/net/http"

	"nutriscope/internal/services/api"
	identmod "nutriscope/internal/services/identify/module"
)

func main() {
	// .env before anything reads the environment, logger included
	dotenv := raw.New().Get("DOTENV_PATH", ".env")
	loaded, envErr := raw.LoadDotenv(dotenv)

	logger.Init(logger.FromEnv())
	l := logger.Get()
	if envErr != nil {
		l.Warn().Err(envErr).Str("path", dotenv).Msg("could not load dotenv file")
	} else if loaded {
		l.Info().Str("path", dotenv).Msg("loaded dotenv file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// one detector per process; the onnx session is shared across requests
	det, release := identmod.NewDetector(ctx, identmod.FromConfig(root))
	defer release()

	// http server (reads CORE_API_API_PORT, then PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			API:            apiCfg,
			Detector:       det,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			MaxUploadMB:    apiCfg.MayInt("MAX_UPLOAD_MB", 16),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		release()
		os.Exit(1)
	}
}
