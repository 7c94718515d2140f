package cli

import (
	"context"

	"github.com/bluetoken/bluedeploy/internal/app"
	"github.com/bluetoken/bluedeploy/internal/usecase"
)

// prepareInProcess deploys the full token stack when the selected network is
// the in-process chain, which starts empty on every invocation.
func prepareInProcess(ctx context.Context, a *app.App) error {
	if !a.Config.Network.InProcess() {
		return nil
	}
	a.Log.Debug("deploying token stack on in-process chain")
	_, err := a.RunDeployments.Run(ctx, usecase.RunDeploymentsParams{})
	return err
}
