// Package injector wires the process-level components from a loaded config.
package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/coulomb/internal/config"
	"github.com/zeusync/coulomb/internal/core/observability/log"
)

// LoggerSet provides the zap-backed logger behind the log.Log interface.
var LoggerSet = wire.NewSet(ProvideLogger, wire.Bind(new(log.Log), new(*log.Logger)))

// ProvideLogger builds the logger; the cleanup flushes buffered entries.
func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}
