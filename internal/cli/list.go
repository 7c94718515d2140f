package cli

import (
	"fmt"
	"strings"

	"github.com/bluetoken/bluedeploy/internal/cli/render"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		kind string
		tag  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployment records of the selected network",
		Long: `List the deployment records of the selected network grouped by kind.

The list can be filtered by kind (proxied, proxy, proxy_admin, implementation)
or by deploy tag.`,
		Example: `  # List all deployments on sepolia
  blue list -n sepolia

  # List implementations only
  blue list -n sepolia --kind implementation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			deploymentKind, err := parseKind(kind)
			if err != nil {
				return err
			}

			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				Kind: deploymentKind,
				Tag:  tag,
			})
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout())
			return renderer.RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (proxied, proxy, proxy_admin, implementation)")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by deploy tag")

	return cmd
}

func parseKind(value string) (models.DeploymentKind, error) {
	if value == "" {
		return "", nil
	}
	kind := models.DeploymentKind(strings.ToUpper(strings.ReplaceAll(value, "-", "_")))
	switch kind {
	case models.ProxiedDeployment, models.ProxyDeployment, models.ProxyAdminDeployment, models.ImplementationDeployment:
		return kind, nil
	}
	return "", fmt.Errorf("invalid deployment kind: %s (valid: proxied, proxy, proxy_admin, implementation)", value)
}
