package cli

import (
	"strings"

	"github.com/bluetoken/bluedeploy/internal/cli/render"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		tags  []string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the deploy drivers",
		Long: `Run the deploy drivers selected by tag, in dependency order.

The "blue" tag deploys the BEP20Token implementation, its proxy admin and the
transparent proxy, initializing the token through the proxy. The "tokenV2" tag
deploys the BEP20TokenV2 implementation. Contracts that already have a record
on the selected network are reused unless --reset is given.`,
		Example: `  # Deploy everything on the in-process chain
  blue deploy

  # Deploy the token stack on sepolia
  blue deploy --tags blue -n sepolia

  # Deploy only the second implementation
  blue deploy --tags tokenV2 -n sepolia`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RunDeployments.Run(cmd.Context(), usecase.RunDeploymentsParams{
				Tags:  tags,
				Reset: reset,
			})
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			return renderer.RenderRunDeployments(app.Config.Network.Name, result)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Deploy tags to run (all, blue, tokenV2)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Redeploy contracts even when a record exists")
	_ = cmd.RegisterFlagCompletionFunc("tags", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, tag := range []string{"all", "blue", "tokenV2"} {
			if strings.HasPrefix(tag, toComplete) {
				out = append(out, tag)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
