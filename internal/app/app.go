package app

import (
	"context"
	"log/slog"

	"github.com/bluetoken/bluedeploy/internal/adapters/verification"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Chain    usecase.Chain
	Verifier *verification.Background

	// Use cases
	RunDeployments    *usecase.RunDeployments
	UpgradeProxy      *usecase.UpgradeProxy
	InspectToken      *usecase.InspectToken
	TransferTokens    *usecase.TransferTokens
	MintTokens        *usecase.MintTokens
	BlacklistAccounts *usecase.BlacklistAccounts
	ListDeployments   *usecase.ListDeployments
	ShowDeployment    *usecase.ShowDeployment
	ListNetworks      *usecase.ListNetworks
	VerifyDeployment  *usecase.VerifyDeployment
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	chain usecase.Chain,
	verifier *verification.Background,
	runDeployments *usecase.RunDeployments,
	upgradeProxy *usecase.UpgradeProxy,
	inspectToken *usecase.InspectToken,
	transferTokens *usecase.TransferTokens,
	mintTokens *usecase.MintTokens,
	blacklistAccounts *usecase.BlacklistAccounts,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	verifyDeployment *usecase.VerifyDeployment,
) *App {
	return &App{
		Config:            cfg,
		Log:               log,
		Chain:             chain,
		Verifier:          verifier,
		RunDeployments:    runDeployments,
		UpgradeProxy:      upgradeProxy,
		InspectToken:      inspectToken,
		TransferTokens:    transferTokens,
		MintTokens:        mintTokens,
		BlacklistAccounts: blacklistAccounts,
		ListDeployments:   listDeployments,
		ShowDeployment:    showDeployment,
		ListNetworks:      listNetworks,
		VerifyDeployment:  verifyDeployment,
	}
}

// Close waits for background verifications and releases the chain connection.
// Verifications still running when ctx is cancelled are aborted.
func (a *App) Close(ctx context.Context) {
	if a.Verifier != nil {
		a.Verifier.Wait(ctx)
	}
	if closer, ok := a.Chain.(interface{ Close() }); ok {
		closer.Close()
	}
}
