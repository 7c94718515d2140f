package usecase

import (
	"context"
	"sort"

	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Kind filters by deployment kind when set
	Kind models.DeploymentKind
	// Tag filters by deploy tag when set
	Tag string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Network     string
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total  int
	ByKind map[models.DeploymentKind]int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		repo:   repo,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments",
		Spinner: true,
	})

	all, err := uc.repo.ListDeployments(ctx)
	if err != nil {
		return nil, err
	}

	deployments := make([]*models.Deployment, 0, len(all))
	for _, d := range all {
		if params.Kind != "" && d.Kind != params.Kind {
			continue
		}
		if params.Tag != "" && !hasTag(d, params.Tag) {
			continue
		}
		deployments = append(deployments, d)
	}

	sortDeployments(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Network:     uc.config.Network.Name,
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts deployments by block number, then name
func sortDeployments(deployments []*models.Deployment) {
	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].BlockNumber != deployments[j].BlockNumber {
			return deployments[i].BlockNumber < deployments[j].BlockNumber
		}
		return deployments[i].Name < deployments[j].Name
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:  len(deployments),
		ByKind: make(map[models.DeploymentKind]int),
	}
	for _, dep := range deployments {
		summary.ByKind[dep.Kind]++
	}
	return summary
}

func hasTag(d *models.Deployment, tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
