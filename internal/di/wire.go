//go:build wireinject
// +build wireinject

package di

import (
	"VolSense/pkg/config"
	"VolSense/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvidePool,
		ProvideEstimateOptions,
		ProvideAnalyzer,
		ProvideHandler,
		ProvideServerOptions,
		ProvideApp,
	)
	return &server.App{}, nil
}
