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
)

// deployRequest describes one named contract deployment
type deployRequest struct {
	Name         string
	ContractName string
	Kind         models.DeploymentKind
	From         *models.Account
	Args         []any
	// RenderedArgs are the human readable constructor arguments recorded
	RenderedArgs []string
	Tags         []string
	Reset        bool
}

// contractDeployer deploys artifacts and records them, reusing existing
// records unless a reset is requested.
type contractDeployer struct {
	cfg       *config.RuntimeConfig
	chain     Chain
	artifacts ArtifactRepository
	repo      DeploymentRepository
	progress  ProgressSink
	log       *slog.Logger
}

func (d *contractDeployer) deploy(ctx context.Context, req deployRequest) (*models.Deployment, bool, error) {
	if !req.Reset {
		existing, err := d.repo.GetDeployment(ctx, req.Name)
		if err == nil {
			d.log.Info("reusing deployment", "name", req.Name, "address", existing.Address)
			return existing, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("failed to load %s: %w", req.Name, err)
		}
	}

	artifact, err := d.artifacts.GetArtifact(ctx, req.ContractName)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load artifact %s: %w", req.ContractName, err)
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s", req.Name),
		Spinner: true,
	})

	tx, err := d.chain.Deploy(ctx, req.From, artifact, req.Args...)
	if err != nil {
		return nil, false, fmt.Errorf("failed to deploy %s: %w", req.Name, err)
	}

	receipt, err := d.wait(ctx, tx, req.Name)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	deployment := &models.Deployment{
		Name:            req.Name,
		Network:         d.cfg.Network.Name,
		ChainID:         d.cfg.Network.ChainID,
		ContractName:    req.ContractName,
		Address:         receipt.ContractAddress.Hex(),
		Kind:            req.Kind,
		TransactionHash: receipt.TxHash.Hex(),
		BlockNumber:     receipt.BlockNumber,
		Deployer:        req.From.Address.Hex(),
		Args:            req.RenderedArgs,
		Verification:    models.VerificationInfo{Status: models.VerificationStatusUnverified},
		Tags:            req.Tags,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if deployment.Args == nil {
		deployment.Args = []string{}
	}

	if err := d.repo.SaveDeployment(ctx, deployment); err != nil {
		return nil, false, fmt.Errorf("failed to save %s: %w", req.Name, err)
	}

	d.log.Info("deployed", "name", req.Name, "address", deployment.Address, "tx", deployment.TransactionHash)
	return deployment, false, nil
}

// wait blocks until tx reaches the network's confirmation depth
func (d *contractDeployer) wait(ctx context.Context, tx *models.PendingTx, what string) (*models.Receipt, error) {
	confirmations := d.cfg.Confirmations()
	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "confirming",
		Message: fmt.Sprintf("Waiting for %d confirmation(s) of %s", confirmations, what),
		Spinner: true,
	})

	receipt, err := d.chain.WaitForConfirmations(ctx, tx, confirmations)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", what, err)
	}
	if !receipt.Succeeded() {
		return nil, fmt.Errorf("%s: %w", what, domain.Revert(""))
	}
	return receipt, nil
}

// submitVerification queues record for source verification on non-development
// networks when an explorer key is configured. Verified records are skipped,
// reused ones are retried.
func submitVerification(cfg *config.RuntimeConfig, verifier AsyncVerifier, record *models.Deployment) bool {
	network := cfg.Network
	if verifier == nil || network.IsDevelopment() || cfg.EtherscanAPIKey == "" {
		return false
	}
	if record.Verification.Status == models.VerificationStatusVerified {
		return false
	}
	verifier.Submit(record, network)
	return true
}

// signer resolves the deployer role and checks it can sign
func signer(ctx context.Context, accounts AccountResolver, role string) (*models.Account, error) {
	account, err := accounts.Account(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s account: %w", role, err)
	}
	if !account.CanSign() {
		return nil, fmt.Errorf("account %s (%s) has no private key", role, account.Address.Hex())
	}
	return account, nil
}
