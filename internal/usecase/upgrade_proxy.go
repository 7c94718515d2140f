package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// ErrUpgradeAborted is returned when the operator declines the upgrade
var ErrUpgradeAborted = errors.New("upgrade aborted")

// UpgradeProxyParams contains parameters for the upgrade
type UpgradeProxyParams struct {
	// Target names the implementation record, BEP20TokenV2 when empty
	Target string
	// ExpectedCurrent, when set, must match the implementation read before upgrading
	ExpectedCurrent *common.Address
	// SkipConfirm bypasses the confirmation prompt
	SkipConfirm bool
}

// UpgradeProxyResult reports the implementation before and after the upgrade
type UpgradeProxyResult struct {
	Proxy   common.Address
	Admin   common.Address
	Before  common.Address
	After   common.Address
	Target  *models.Deployment
	TxHash  common.Hash
	Receipt *models.Receipt
}

// UpgradeProxy repoints the token proxy at a new implementation through the
// proxy admin, signed by the deployer.
type UpgradeProxy struct {
	cfg       *config.RuntimeConfig
	chain     Chain
	accounts  AccountResolver
	artifacts ArtifactRepository
	repo      DeploymentRepository
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewUpgradeProxy creates a new UpgradeProxy use case
func NewUpgradeProxy(
	cfg *config.RuntimeConfig,
	chain Chain,
	accounts AccountResolver,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *UpgradeProxy {
	return &UpgradeProxy{
		cfg:       cfg,
		chain:     chain,
		accounts:  accounts,
		artifacts: artifacts,
		repo:      repo,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// Run executes the upgrade
func (uc *UpgradeProxy) Run(ctx context.Context, params UpgradeProxyParams) (*UpgradeProxyResult, error) {
	token, err := uc.repo.GetDeployment(ctx, domain.TokenDeployment)
	if err != nil {
		return nil, err
	}
	if token.ProxyInfo == nil {
		return nil, fmt.Errorf("%s is not a proxied deployment", token.Name)
	}
	proxy := common.HexToAddress(token.ProxyInfo.Proxy)

	adminRecord, err := uc.repo.GetDeployment(ctx, domain.TokenProxyAdminDeployment)
	if err != nil {
		return nil, err
	}
	adminAddress := common.HexToAddress(adminRecord.Address)

	adminArtifact, err := uc.artifacts.GetArtifact(ctx, adminRecord.ContractName)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", adminRecord.ContractName, err)
	}

	// Upgrades always wait for at least one confirmation
	confirmations := max(uc.cfg.Confirmations(), 1)
	admin := NewProxyAdminContract(uc.chain, adminAddress, &adminArtifact.ABI, confirmations)

	before, err := admin.GetProxyImplementation(ctx, proxy)
	if err != nil {
		return nil, fmt.Errorf("failed to read current implementation: %w", err)
	}
	uc.log.Info("current implementation", "proxy", proxy.Hex(), "implementation", before.Hex())

	if params.ExpectedCurrent != nil && *params.ExpectedCurrent != before {
		return nil, fmt.Errorf("%w: expected %s, found %s",
			domain.ErrImplementationChanged, params.ExpectedCurrent.Hex(), before.Hex())
	}

	targetName := params.Target
	if targetName == "" {
		targetName = domain.TokenV2Deployment
	}
	target, err := uc.repo.GetDeployment(ctx, targetName)
	if err != nil {
		return nil, err
	}
	if target.Kind != models.ImplementationDeployment {
		return nil, fmt.Errorf("%w: %s is a %s deployment, not an implementation",
			domain.ErrInvalidUpgradeTarget, target.Name, target.Kind)
	}
	targetAddress := common.HexToAddress(target.Address)

	if !params.SkipConfirm && !uc.cfg.NonInteractive && uc.confirmer != nil {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Upgrade proxy %s from %s to %s (%s)",
			proxy.Hex(), before.Hex(), targetAddress.Hex(), target.Name))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUpgradeAborted
		}
	}

	deployer, err := signer(ctx, uc.accounts, domain.RoleDeployer)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "upgrading",
		Message: fmt.Sprintf("Upgrading %s to %s, waiting for %d confirmation(s)", token.Name, target.Name, confirmations),
		Spinner: true,
	})

	receipt, err := admin.Upgrade(ctx, deployer, proxy, targetAddress)
	if err != nil {
		return nil, err
	}

	after, err := admin.GetProxyImplementation(ctx, proxy)
	if err != nil {
		return nil, fmt.Errorf("failed to read new implementation: %w", err)
	}
	uc.log.Info("upgraded", "proxy", proxy.Hex(), "before", before.Hex(), "after", after.Hex(), "tx", receipt.TxHash.Hex())

	token.ContractName = target.ContractName
	token.ProxyInfo.Implementation = after.Hex()
	token.ProxyInfo.History = append(token.ProxyInfo.History, models.ProxyUpgrade{
		From:        before.Hex(),
		To:          after.Hex(),
		UpgradeTxID: receipt.TxHash.Hex(),
		UpgradedAt:  time.Now().UTC(),
	})
	token.UpdatedAt = time.Now().UTC()
	if err := uc.repo.SaveDeployment(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", token.Name, err)
	}

	return &UpgradeProxyResult{
		Proxy:   proxy,
		Admin:   adminAddress,
		Before:  before,
		After:   after,
		Target:  target,
		TxHash:  receipt.TxHash,
		Receipt: receipt,
	}, nil
}
