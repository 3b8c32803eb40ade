// Package modkit provides module wiring and core deps
package modkit

import (
	"nutriscope/internal/platform/config"
	"nutriscope/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// upstream clients are not here; each module builds its own from Cfg
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
}

// Logger returns Log, or a component logger named after the module when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(component)
}
