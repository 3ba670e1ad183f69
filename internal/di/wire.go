//go:build wireinject
// +build wireinject

package di

import (
	"DugoutEdge/pkg/config"
	"DugoutEdge/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideRedisCache,

		// Repositories
		ProvideHistorySink,
		ProvideAlertPublisher,
		ProvideLineupStream,
		ProvideSources,
		ProvideResponseCache,
		ProvideJobQueue,

		// Use cases
		ProvideEngine,
		ProvideAggregator,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
