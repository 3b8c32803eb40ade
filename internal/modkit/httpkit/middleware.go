package httpkit

import (
	"net/http"
	"time"

	"nutriscope/internal/platform/config"
	"nutriscope/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// Slow marks access log lines at warn level, 0 disables
	Slow time.Duration
	// Timeout bounds each request, 0 disables
	Timeout time.Duration
	// Origins allowed by CORS, empty means any
	Origins []string
}

// StackFromConfig reads SLOW, REQUEST_TIMEOUT and CORS_ORIGINS from cfg (usually CORE_API_)
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		Slow:    cfg.MayDuration("SLOW", 2*time.Second),
		Timeout: cfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
		Origins: cfg.MayCSV("CORS_ORIGINS", nil),
	}
}

// CommonStack returns the root middleware slice for the API mux
func CommonStack(opt StackOptions) []func(http.Handler) http.Handler {
	stack := append(middleware.Defaults(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: opt.Slow}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: opt.Origins}),
		middleware.StripSlashes(),
	)
	if opt.Timeout > 0 {
		stack = append(stack, middleware.Timeout(opt.Timeout))
	}
	return stack
}
