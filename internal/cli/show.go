package cli

import (
	"github.com/bluetoken/bluedeploy/internal/cli/render"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show detailed deployment information",
		Long: `Show the full record of a deployment. Without a name an interactive picker
lists the records of the selected network.`,
		Example: `  blue show BEP20Token -n sepolia
  blue show BEP20Token_Proxy -n sepolia -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			renderer, err := render.NewDeploymentRenderer(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}

			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			params := usecase.ShowDeploymentParams{ResolveProxy: true}
			if len(args) > 0 {
				params.Name = args[0]
			}
			result, err := app.ShowDeployment.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return renderer.RenderDeployment(result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", render.FormatText, "Output format (text, json, yaml)")

	return cmd
}
