package cli

import (
	"github.com/bluetoken/bluedeploy/internal/cli/render"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "verify <name>",
		Short: "Verify a deployment's source on the block explorer",
		Long: `Verify the source of a recorded deployment with forge verify-contract and
record the outcome. Proxied records are verified at their implementation.
Requires ETHERSCAN_API_KEY.`,
		Example: `  blue verify BEP20TokenV2 -n sepolia
  blue verify BEP20Token -n sepolia --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			result, err := app.VerifyDeployment.Run(cmd.Context(), args[0], usecase.VerifyOptions{Force: force})
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			return renderer.RenderVerify(result)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Re-verify even if already verified")

	return cmd
}
