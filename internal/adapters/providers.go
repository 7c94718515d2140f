package adapters

import (
	"log/slog"

	"github.com/bluetoken/bluedeploy/internal/adapters/accounts"
	"github.com/bluetoken/bluedeploy/internal/adapters/blockchain"
	"github.com/bluetoken/bluedeploy/internal/adapters/devchain"
	"github.com/bluetoken/bluedeploy/internal/adapters/interactive"
	"github.com/bluetoken/bluedeploy/internal/adapters/repository/artifacts"
	"github.com/bluetoken/bluedeploy/internal/adapters/repository/deployments"
	"github.com/bluetoken/bluedeploy/internal/adapters/verification"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/google/wire"
)

// ProvideChain serves the in-process network from the devchain and every
// other network over JSON-RPC.
func ProvideChain(cfg *config.RuntimeConfig, log *slog.Logger) usecase.Chain {
	if cfg.Network.InProcess() {
		return devchain.New(log)
	}
	return blockchain.NewClient(cfg.Network, log)
}

// ProvideDeploymentRepository keeps in-process records in memory, since the
// chain they describe is gone when the process exits.
func ProvideDeploymentRepository(cfg *config.RuntimeConfig) (usecase.DeploymentRepository, error) {
	if cfg.Network.InProcess() {
		return deployments.NewMemoryRepository(cfg.Network.Name), nil
	}
	return deployments.NewFileRepository(cfg.DeploymentsDir, cfg.Network.Name, cfg.Network.ChainID)
}

// ProvideArtifactRepository reads compiled artifacts from the project
func ProvideArtifactRepository(cfg *config.RuntimeConfig, log *slog.Logger) *artifacts.Repository {
	return artifacts.NewRepository(cfg.ArtifactsDir, log)
}

// ProvideForgeVerifier runs forge from the project root
func ProvideForgeVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *verification.ForgeVerifier {
	return verification.NewForgeVerifier(cfg, verification.ExecRunner{}, log)
}

// RepositorySet provides record and artifact storage
var RepositorySet = wire.NewSet(
	ProvideDeploymentRepository,
	ProvideArtifactRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// ChainSet provides the ledger and the accounts that sign for it
var ChainSet = wire.NewSet(
	ProvideChain,
	accounts.NewResolver,
	wire.Bind(new(usecase.AccountResolver), new(*accounts.Resolver)),
)

// VerificationSet provides source verification
var VerificationSet = wire.NewSet(
	ProvideForgeVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.ForgeVerifier)),
	verification.NewBackground,
	wire.Bind(new(usecase.AsyncVerifier), new(*verification.Background)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	ChainSet,
	VerificationSet,
	InteractiveSet,
)
