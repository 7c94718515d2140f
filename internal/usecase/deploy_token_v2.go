package usecase

import (
	"context"
	"log/slog"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
)

// DeployTokenV2Params contains parameters for deploying the second implementation
type DeployTokenV2Params struct {
	Reset bool
}

// DeployTokenV2Result contains the BEP20TokenV2 record
type DeployTokenV2Result struct {
	Implementation *models.Deployment
	Reused         bool
	// VerificationSubmitted is set when source verification was queued
	VerificationSubmitted bool
}

// DeployTokenV2 deploys the second token implementation. It does not touch
// the proxy; pointing the proxy at it is the upgrade's job.
type DeployTokenV2 struct {
	cfg      *config.RuntimeConfig
	accounts AccountResolver
	verifier AsyncVerifier
	deployer *contractDeployer
}

// NewDeployTokenV2 creates a new DeployTokenV2 use case
func NewDeployTokenV2(
	cfg *config.RuntimeConfig,
	chain Chain,
	accounts AccountResolver,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
	verifier AsyncVerifier,
	progress ProgressSink,
	log *slog.Logger,
) *DeployTokenV2 {
	return &DeployTokenV2{
		cfg:      cfg,
		accounts: accounts,
		verifier: verifier,
		deployer: &contractDeployer{
			cfg:       cfg,
			chain:     chain,
			artifacts: artifacts,
			repo:      repo,
			progress:  progress,
			log:       log,
		},
	}
}

// Run executes the deployment
func (uc *DeployTokenV2) Run(ctx context.Context, params DeployTokenV2Params) (*DeployTokenV2Result, error) {
	deployer, err := signer(ctx, uc.accounts, domain.RoleDeployer)
	if err != nil {
		return nil, err
	}

	implementation, reused, err := uc.deployer.deploy(ctx, deployRequest{
		Name:         domain.TokenV2Deployment,
		ContractName: domain.TokenV2Contract,
		Kind:         models.ImplementationDeployment,
		From:         deployer,
		Tags:         []string{domain.TagAll, domain.TagTokenV2},
		Reset:        params.Reset,
	})
	if err != nil {
		return nil, err
	}

	return &DeployTokenV2Result{
		Implementation:        implementation,
		Reused:                reused,
		VerificationSubmitted: submitVerification(uc.cfg, uc.verifier, implementation),
	}, nil
}
