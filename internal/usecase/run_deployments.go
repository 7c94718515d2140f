package usecase

import (
	"context"
	"log/slog"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/samber/lo"
)

// RunDeploymentsParams selects the deploy drivers to run
type RunDeploymentsParams struct {
	// Tags selects drivers; empty means "all"
	Tags  []string
	Reset bool
}

// RunDeploymentsResult contains the results of the drivers that ran
type RunDeploymentsResult struct {
	Executed []string
	Token    *DeployUpgradeableTokenResult
	TokenV2  *DeployTokenV2Result
}

type deployDriver struct {
	name string
	tags []string
	run  func(ctx context.Context, params RunDeploymentsParams, result *RunDeploymentsResult) error
}

// RunDeployments runs the deploy drivers matching the requested tags, in
// dependency order.
type RunDeployments struct {
	drivers []deployDriver
	log     *slog.Logger
}

// NewRunDeployments creates a new RunDeployments use case
func NewRunDeployments(token *DeployUpgradeableToken, tokenV2 *DeployTokenV2, log *slog.Logger) *RunDeployments {
	return &RunDeployments{
		drivers: []deployDriver{
			{
				name: domain.TokenDeployment,
				tags: []string{domain.TagAll, domain.TagBlue},
				run: func(ctx context.Context, params RunDeploymentsParams, result *RunDeploymentsResult) error {
					res, err := token.Run(ctx, DeployUpgradeableTokenParams{Reset: params.Reset})
					result.Token = res
					return err
				},
			},
			{
				name: domain.TokenV2Deployment,
				tags: []string{domain.TagAll, domain.TagTokenV2},
				run: func(ctx context.Context, params RunDeploymentsParams, result *RunDeploymentsResult) error {
					res, err := tokenV2.Run(ctx, DeployTokenV2Params{Reset: params.Reset})
					result.TokenV2 = res
					return err
				},
			},
		},
		log: log,
	}
}

// AvailableTags returns every tag some driver answers to
func (uc *RunDeployments) AvailableTags() []string {
	return lo.Uniq(lo.FlatMap(uc.drivers, func(d deployDriver, _ int) []string {
		return d.tags
	}))
}

// Run executes the use case
func (uc *RunDeployments) Run(ctx context.Context, params RunDeploymentsParams) (*RunDeploymentsResult, error) {
	tags := lo.Uniq(lo.Compact(params.Tags))
	if len(tags) == 0 {
		tags = []string{domain.TagAll}
	}

	available := uc.AvailableTags()
	if unknown, _ := lo.Difference(tags, available); len(unknown) > 0 {
		return nil, domain.UnknownTagsErr{Tags: unknown, Available: available}
	}

	result := &RunDeploymentsResult{}
	for _, driver := range uc.drivers {
		if !lo.Some(driver.tags, tags) {
			continue
		}
		uc.log.Debug("running deploy driver", "driver", driver.name, "tags", tags)
		if err := driver.run(ctx, params, result); err != nil {
			return result, err
		}
		result.Executed = append(result.Executed, driver.name)
	}
	return result, nil
}
