package cli

import (
	"github.com/bluetoken/bluedeploy/internal/cli/render"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewTokenCmd creates the token command group
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Read and operate the deployed token",
		Long: `Commands that act on the recorded BEP20Token through its proxy. Accounts
are given as named roles (deployer, user, anotherUser) or as addresses.
Amounts are in whole tokens.`,
	}

	cmd.AddCommand(newTokenInfoCmd())
	cmd.AddCommand(newTokenTransferCmd())
	cmd.AddCommand(newTokenMintCmd())
	cmd.AddCommand(newTokenBlacklistCmd())

	return cmd
}

func newTokenInfoCmd() *cobra.Command {
	var holders []string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show token metadata, supply and balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			info, err := app.InspectToken.Run(cmd.Context(), usecase.InspectTokenParams{Holders: holders})
			if err != nil {
				return err
			}

			return render.NewTokenRenderer(cmd.OutOrStdout()).RenderTokenInfo(info)
		},
	}

	cmd.Flags().StringSliceVar(&holders, "holder", nil, "Extra roles or addresses to report balances for")
	return cmd
}

func newTokenTransferCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "transfer <to> <amount>",
		Short: "Transfer tokens",
		Example: `  blue token transfer user 50
  blue token transfer 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 0.5 --from user -n sepolia`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			result, err := app.TransferTokens.Run(cmd.Context(), usecase.TransferTokensParams{
				From:   from,
				To:     args[0],
				Amount: args[1],
			})
			if err != nil {
				return err
			}

			return render.NewTokenRenderer(cmd.OutOrStdout()).RenderTransfer(result)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Signing role (default deployer)")
	return cmd
}

func newTokenMintCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "mint <amount>",
		Short: "Mint tokens to the signer (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			result, err := app.MintTokens.Run(cmd.Context(), usecase.MintTokensParams{
				From:   from,
				Amount: args[0],
			})
			if err != nil {
				return err
			}

			return render.NewTokenRenderer(cmd.OutOrStdout()).RenderMint(result)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Signing role (default deployer)")
	return cmd
}

func newTokenBlacklistCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "blacklist <account>...",
		Short: "Add accounts to or remove them from the V2 blacklist",
		Long: `Update the blacklist of a token upgraded to BEP20TokenV2. Blacklisted
accounts cannot send tokens. Only the owner may update the list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if err := prepareInProcess(cmd.Context(), app); err != nil {
				return err
			}

			result, err := app.BlacklistAccounts.Run(cmd.Context(), usecase.BlacklistAccountsParams{
				Accounts: args,
				Remove:   remove,
			})
			if err != nil {
				return err
			}

			return render.NewTokenRenderer(cmd.OutOrStdout()).RenderBlacklist(result)
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the accounts from the blacklist")
	return cmd
}
