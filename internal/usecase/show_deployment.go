package usecase

import (
	"context"
	"fmt"

	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Name of the record; an interactive picker is offered when empty
	Name string
	// ResolveProxy loads the implementation record of proxied deployments
	ResolveProxy bool
}

// ShowDeploymentResult contains the deployment and, for proxies, its implementation
type ShowDeploymentResult struct {
	Deployment     *models.Deployment
	Implementation *models.Deployment
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config   *config.RuntimeConfig
	repo     DeploymentRepository
	selector DeploymentSelector
	sink     ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, repo DeploymentRepository, selector DeploymentSelector, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config:   cfg,
		repo:     repo,
		selector: selector,
		sink:     sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})

	deployment, err := uc.resolve(ctx, params.Name)
	if err != nil {
		return nil, err
	}
	result := &ShowDeploymentResult{Deployment: deployment}

	if params.ResolveProxy && deployment.ProxyInfo != nil && deployment.ProxyInfo.Implementation != "" {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "resolving",
			Message: "Resolving proxy implementation",
			Spinner: true,
		})

		// The implementation might not be tracked
		all, err := uc.repo.ListDeployments(ctx)
		if err == nil {
			for _, d := range all {
				if d.Kind == models.ImplementationDeployment && equalAddress(d.Address, deployment.ProxyInfo.Implementation) {
					result.Implementation = d
					break
				}
			}
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Deployment loaded",
	})

	return result, nil
}

func (uc *ShowDeployment) resolve(ctx context.Context, name string) (*models.Deployment, error) {
	if name != "" {
		return uc.repo.GetDeployment(ctx, name)
	}

	if uc.config.NonInteractive || uc.selector == nil {
		return nil, fmt.Errorf("deployment name is required in non-interactive mode")
	}

	deployments, err := uc.repo.ListDeployments(ctx)
	if err != nil {
		return nil, err
	}
	if len(deployments) == 0 {
		return nil, fmt.Errorf("no deployments found on network %s", uc.config.Network.Name)
	}
	sortDeployments(deployments)
	return uc.selector.SelectDeployment(ctx, deployments, "Select a deployment")
}
