package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
)

// VerifyDeployment handles contract verification on block explorers
type VerifyDeployment struct {
	config   *config.RuntimeConfig
	repo     DeploymentRepository
	verifier ContractVerifier
	sink     ProgressSink
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	repo DeploymentRepository,
	verifier ContractVerifier,
	sink ProgressSink,
) *VerifyDeployment {
	return &VerifyDeployment{
		config:   cfg,
		repo:     repo,
		verifier: verifier,
		sink:     sink,
	}
}

// VerifyOptions contains options for verification
type VerifyOptions struct {
	Force bool // Re-verify even if already verified
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Deployment *models.Deployment
	Success    bool
	Skipped    bool
	Errors     []string
}

// Run verifies the named deployment and records the outcome
func (v *VerifyDeployment) Run(ctx context.Context, name string, options VerifyOptions) (*VerifyResult, error) {
	deployment, err := v.repo.GetDeployment(ctx, name)
	if err != nil {
		return nil, err
	}

	network := v.config.Network
	if network.IsDevelopment() {
		return &VerifyResult{
			Deployment: deployment,
			Skipped:    true,
			Errors:     []string{fmt.Sprintf("%s is a development network", network.Name)},
		}, nil
	}

	if deployment.Verification.Status == models.VerificationStatusVerified && !options.Force {
		return &VerifyResult{
			Deployment: deployment,
			Success:    true,
			Errors:     []string{"Already verified. Use --force to re-verify."},
		}, nil
	}

	v.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "verifying",
		Message: fmt.Sprintf("Verifying %s", deployment.Name),
		Spinner: true,
	})

	info, verifyErr := v.verifier.Verify(ctx, deployment, network)
	if info != nil {
		deployment.Verification = *info
	} else if verifyErr != nil {
		deployment.Verification = models.VerificationInfo{
			Status: models.VerificationStatusFailed,
			Reason: verifyErr.Error(),
		}
	}
	deployment.UpdatedAt = time.Now().UTC()

	if err := v.repo.SaveDeployment(ctx, deployment); err != nil {
		return nil, fmt.Errorf("failed to update registry: %w", err)
	}

	if verifyErr != nil {
		return &VerifyResult{
			Deployment: deployment,
			Errors:     []string{verifyErr.Error()},
		}, nil
	}
	return &VerifyResult{
		Deployment: deployment,
		Success:    true,
	}, nil
}
