//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/coulomb/internal/config"
	"github.com/zeusync/coulomb/internal/core/observability/log"
	"github.com/zeusync/coulomb/internal/server"
)

func InitializeLogger(cfg config.Config) (*log.Logger, func(), error) {
	wire.Build(ProvideLogger)
	return nil, nil, nil
}

func InitializeServer(cfg config.Config) (*server.Server, func(), error) {
	wire.Build(LoggerSet, server.NewServer)
	return nil, nil, nil
}
