package cli

import (
	"fmt"

	"github.com/bluetoken/bluedeploy/internal/cli/render"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

// NewUpgradeCmd creates the upgrade command
func NewUpgradeCmd() *cobra.Command {
	var (
		target          string
		expectedCurrent string
		yes             bool
	)

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the token proxy to a new implementation",
		Long: `Repoint the token proxy at a recorded implementation through the proxy
admin. The transaction is signed by the deployer and waits for at least one
confirmation. The implementation is read back afterwards and the upgrade is
appended to the token's history.`,
		Example: `  # Upgrade to BEP20TokenV2 on sepolia
  blue upgrade -n sepolia

  # Refuse to upgrade unless the proxy still points at a known implementation
  blue upgrade -n sepolia --expect-current 0x5FbDB2315678afecb367f032d93F642f64180aa3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.UpgradeProxyParams{
				Target:      target,
				SkipConfirm: yes,
			}
			if expectedCurrent != "" {
				if !common.IsHexAddress(expectedCurrent) {
					return fmt.Errorf("invalid --expect-current address %q", expectedCurrent)
				}
				addr := common.HexToAddress(expectedCurrent)
				params.ExpectedCurrent = &addr
			}

			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			result, err := app.UpgradeProxy.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout())
			return renderer.RenderUpgrade(result)
		},
	}

	cmd.Flags().StringVar(&target, "to", "", "Implementation record to upgrade to (default BEP20TokenV2)")
	cmd.Flags().StringVar(&expectedCurrent, "expect-current", "", "Abort unless the proxy currently points at this implementation")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
