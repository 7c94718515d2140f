package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bluetoken/bluedeploy/internal/adapters/progress"
	"github.com/bluetoken/bluedeploy/internal/app"
	"github.com/bluetoken/bluedeploy/internal/cli/render"
	"github.com/bluetoken/bluedeploy/internal/config"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// sinkKey is the context key for the progress sink
	sinkKey contextKey = "sink"
)

// NewRootCmd creates the root command of the blue CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blue",
		Short: "Deploy and operate the upgradeable Blue BEP20 token",
		Long: `blue deploys the Blue BEP20 token behind a transparent upgradeable proxy,
records every deployment per network, and drives upgrades and token
operations against the recorded contracts.

The default network, hardhat, runs an in-process development chain that
lives for the duration of a single command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			// Prompts need a terminal on stdin
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				v.Set("non_interactive", true)
			}

			interactive := !v.GetBool("non_interactive") && isatty.IsTerminal(os.Stderr.Fd())
			var sink usecase.ProgressSink = progress.NewSpinnerSink(os.Stderr, interactive)
			if format := v.GetString("output"); format == render.FormatJSON || format == render.FormatYAML {
				sink = progress.NewNopSink()
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, sinkKey, sink)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (hardhat, sepolia, bscTestnet or one from blue.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (default 10m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "token",
		Title: "Token Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{NewDeployCmd(), NewUpgradeCmd(), NewVerifyCmd()} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	tokenCmd := NewTokenCmd()
	tokenCmd.GroupID = "token"
	rootCmd.AddCommand(tokenCmd)

	for _, cmd := range []*cobra.Command{NewListCmd(), NewShowCmd(), NewNetworksCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command and releases the app of whichever command ran.
// Cancelling ctx also aborts background verifications still draining.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if cmd != nil && cmd.Context() != nil {
		if sink, ok := cmd.Context().Value(sinkKey).(*progress.SpinnerSink); ok {
			sink.Stop()
		}
		if appInstance, ok := cmd.Context().Value(appKey).(*app.App); ok {
			appInstance.Close(ctx)
		}
	}
	return err
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
