//go:build wireinject
// +build wireinject

package app

import (
	"github.com/bluetoken/bluedeploy/internal/adapters"
	"github.com/bluetoken/bluedeploy/internal/config"
	"github.com/bluetoken/bluedeploy/internal/logging"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployUpgradeableToken,
		usecase.NewDeployTokenV2,
		usecase.NewRunDeployments,
		usecase.NewUpgradeProxy,
		usecase.NewInspectToken,
		usecase.NewTransferTokens,
		usecase.NewMintTokens,
		usecase.NewBlacklistAccounts,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,
		usecase.NewVerifyDeployment,

		// App
		NewApp,
	)
	return nil, nil
}
