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

// DeployUpgradeableTokenParams contains parameters for deploying the token
type DeployUpgradeableTokenParams struct {
	// Reset redeploys contracts even when records exist
	Reset bool
}

// DeployUpgradeableTokenResult contains the records of the deployed triple
type DeployUpgradeableTokenResult struct {
	Implementation *models.Deployment
	ProxyAdmin     *models.Deployment
	Proxy          *models.Deployment
	Token          *models.Deployment
	Params         models.TokenParams
	// Reused is set when every contract came from an existing record
	Reused bool
	// VerificationSubmitted is set when source verification was queued
	VerificationSubmitted bool
}

// DeployUpgradeableToken deploys the V1 token implementation, its proxy
// admin and the proxy initialized with the token parameters.
type DeployUpgradeableToken struct {
	cfg       *config.RuntimeConfig
	accounts  AccountResolver
	artifacts ArtifactRepository
	repo      DeploymentRepository
	verifier  AsyncVerifier
	deployer  *contractDeployer
	log       *slog.Logger
}

// NewDeployUpgradeableToken creates a new DeployUpgradeableToken use case
func NewDeployUpgradeableToken(
	cfg *config.RuntimeConfig,
	chain Chain,
	accounts AccountResolver,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
	verifier AsyncVerifier,
	progress ProgressSink,
	log *slog.Logger,
) *DeployUpgradeableToken {
	return &DeployUpgradeableToken{
		cfg:       cfg,
		accounts:  accounts,
		artifacts: artifacts,
		repo:      repo,
		verifier:  verifier,
		deployer: &contractDeployer{
			cfg:       cfg,
			chain:     chain,
			artifacts: artifacts,
			repo:      repo,
			progress:  progress,
			log:       log,
		},
		log: log,
	}
}

// Run executes the deployment
func (uc *DeployUpgradeableToken) Run(ctx context.Context, params DeployUpgradeableTokenParams) (*DeployUpgradeableTokenResult, error) {
	deployer, err := signer(ctx, uc.accounts, domain.RoleDeployer)
	if err != nil {
		return nil, err
	}

	var tokenConfig config.TokenConfig
	if uc.cfg.BlueConfig != nil {
		tokenConfig = uc.cfg.BlueConfig.Token
	}
	tokenParams, err := tokenConfig.Params(deployer.Address)
	if err != nil {
		return nil, err
	}

	tags := []string{domain.TagAll, domain.TagBlue}
	result := &DeployUpgradeableTokenResult{Params: tokenParams}

	implementation, implReused, err := uc.deployer.deploy(ctx, deployRequest{
		Name:         domain.TokenImplementationDeployment,
		ContractName: domain.TokenContract,
		Kind:         models.ImplementationDeployment,
		From:         deployer,
		Tags:         tags,
		Reset:        params.Reset,
	})
	if err != nil {
		return nil, err
	}
	result.Implementation = implementation

	admin, adminReused, err := uc.deployer.deploy(ctx, deployRequest{
		Name:         domain.TokenProxyAdminDeployment,
		ContractName: domain.ProxyAdminContract,
		Kind:         models.ProxyAdminDeployment,
		From:         deployer,
		Args:         []any{deployer.Address},
		RenderedArgs: []string{deployer.Address.Hex()},
		Tags:         tags,
		Reset:        params.Reset,
	})
	if err != nil {
		return nil, err
	}
	result.ProxyAdmin = admin

	tokenArtifact, err := uc.artifacts.GetArtifact(ctx, domain.TokenContract)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifact %s: %w", domain.TokenContract, err)
	}
	initData, err := tokenArtifact.ABI.Pack("initialize",
		tokenParams.Name,
		tokenParams.Symbol,
		tokenParams.Decimals,
		tokenParams.InitialSupply,
		tokenParams.Mintable,
		tokenParams.Owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to encode initializer: %w", err)
	}

	implAddress := common.HexToAddress(implementation.Address)
	adminAddress := common.HexToAddress(admin.Address)

	// A fresh implementation or admin invalidates a previously recorded proxy
	redeployProxy := params.Reset || !implReused || !adminReused
	if redeployProxy {
		// The token record keeps pointing at the old proxy until the new one is recorded
		if err := uc.repo.DeleteDeployment(ctx, domain.TokenDeployment); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to drop stale %s: %w", domain.TokenDeployment, err)
		}
	}
	proxy, proxyReused, err := uc.deployer.deploy(ctx, deployRequest{
		Name:         domain.TokenProxyDeployment,
		ContractName: domain.ProxyContract,
		Kind:         models.ProxyDeployment,
		From:         deployer,
		Args:         []any{implAddress, adminAddress, initData},
		RenderedArgs: []string{implAddress.Hex(), adminAddress.Hex(), common.Bytes2Hex(initData)},
		Tags:         tags,
		Reset:        redeployProxy,
	})
	if err != nil {
		return nil, err
	}
	result.Proxy = proxy
	result.Reused = implReused && adminReused && proxyReused

	token, err := uc.recordToken(ctx, proxy, admin, implementation, tokenParams, tags, result.Reused)
	if err != nil {
		return nil, err
	}
	result.Token = token

	result.VerificationSubmitted = submitVerification(uc.cfg, uc.verifier, token)

	return result, nil
}

// recordToken writes the proxy-facing BEP20Token record. A reused triple
// keeps its existing record, which may already point at a newer implementation.
func (uc *DeployUpgradeableToken) recordToken(
	ctx context.Context,
	proxy, admin, implementation *models.Deployment,
	params models.TokenParams,
	tags []string,
	reused bool,
) (*models.Deployment, error) {
	if reused {
		if existing, err := uc.repo.GetDeployment(ctx, domain.TokenDeployment); err == nil {
			return existing, nil
		}
	}

	now := time.Now().UTC()
	token := &models.Deployment{
		Name:            domain.TokenDeployment,
		Network:         proxy.Network,
		ChainID:         proxy.ChainID,
		ContractName:    domain.TokenContract,
		Address:         proxy.Address,
		Kind:            models.ProxiedDeployment,
		TransactionHash: proxy.TransactionHash,
		BlockNumber:     proxy.BlockNumber,
		Deployer:        proxy.Deployer,
		Args:            params.Args(),
		ProxyInfo: &models.ProxyInfo{
			Proxy:          proxy.Address,
			Admin:          admin.Address,
			Implementation: implementation.Address,
			History:        []models.ProxyUpgrade{},
		},
		Verification: models.VerificationInfo{Status: models.VerificationStatusUnverified},
		Tags:         tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if uc.cfg.Network.IsDevelopment() {
		token.Verification.Status = models.VerificationStatusSkipped
	}

	if err := uc.repo.SaveDeployment(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", token.Name, err)
	}
	return token, nil
}
