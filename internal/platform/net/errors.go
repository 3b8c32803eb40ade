package net

import (
	"net/http"

	perr "nutriscope/internal/platform/errors"

	"github.com/rs/zerolog"
)

// HTTPStatus maps a project error to http status
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return perr.HTTPStatus(err)
}

// LogLevel picks the level a failed request is logged at: client mistakes are noise
func LogLevel(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
