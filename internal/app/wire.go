//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/opsgov/internal/adapters"
	"github.com/trebuchet-org/opsgov/internal/config"
	"github.com/trebuchet-org/opsgov/internal/logging"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewTransactor,
		usecase.NewInitLedger,
		usecase.NewManageClients,
		usecase.NewProposeRelease,
		usecase.NewProposeChecksum,
		usecase.NewListRequests,
		usecase.NewResolveRequest,
		usecase.NewConfigureTracks,
		usecase.NewTransferOwnership,
		usecase.NewRatifyFork,
		usecase.NewRelayCall,
		usecase.NewQueryRegistry,
		usecase.NewListEvents,

		// App
		NewApp,
	)
	return nil, nil, nil
}
