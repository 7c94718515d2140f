package verification

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
)

// CommandRunner runs an external command and returns its combined output
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// ForgeVerifier submits sources to an Etherscan-compatible explorer through
// `forge verify-contract`.
type ForgeVerifier struct {
	projectRoot string
	apiKey      string
	runner      CommandRunner
	log         *slog.Logger
}

var _ usecase.ContractVerifier = (*ForgeVerifier)(nil)

// NewForgeVerifier creates a verifier using the configured explorer API key
func NewForgeVerifier(cfg *config.RuntimeConfig, runner CommandRunner, log *slog.Logger) *ForgeVerifier {
	return &ForgeVerifier{
		projectRoot: cfg.ProjectRoot,
		apiKey:      cfg.EtherscanAPIKey,
		runner:      runner,
		log:         log,
	}
}

// Verify submits the deployment's source. A proxied record is verified at its
// current implementation address; explorers link the proxy to it.
func (v *ForgeVerifier) Verify(ctx context.Context, deployment *models.Deployment, network *domain.Network) (*models.VerificationInfo, error) {
	if v.apiKey == "" {
		return nil, fmt.Errorf("ETHERSCAN_API_KEY is not set")
	}

	address := deployment.Address
	if deployment.Kind == models.ProxiedDeployment && deployment.ProxyInfo != nil {
		address = deployment.ProxyInfo.Implementation
	}

	args := v.buildVerifyArgs(address, deployment, network)
	v.log.Debug("running forge", "args", strings.Join(redact(args, v.apiKey), " "))

	output, err := v.runner.Run(ctx, v.projectRoot, "forge", args...)
	if err := parseForgeOutput(string(output), err); err != nil {
		return &models.VerificationInfo{
			Status: models.VerificationStatusFailed,
			Reason: err.Error(),
		}, err
	}

	now := time.Now().UTC()
	return &models.VerificationInfo{
		Status:     models.VerificationStatusVerified,
		URL:        ExplorerURL(network, address),
		VerifiedAt: &now,
	}, nil
}

// buildVerifyArgs builds the forge verify-contract arguments
func (v *ForgeVerifier) buildVerifyArgs(address string, deployment *models.Deployment, network *domain.Network) []string {
	args := []string{
		"verify-contract",
		address,
		deployment.ContractName,
		"--chain-id", fmt.Sprintf("%d", network.ChainID),
		"--etherscan-api-key", v.apiKey,
		"--watch",
	}
	if deployment.Kind != models.ProxiedDeployment && len(deployment.Args) > 0 {
		args = append(args, "--guess-constructor-args")
	}
	return args
}

// parseForgeOutput treats an already verified contract as success
func parseForgeOutput(output string, runErr error) error {
	if alreadyVerified(output) {
		return nil
	}
	if runErr != nil {
		if strings.TrimSpace(output) == "" {
			return fmt.Errorf("verification failed: %w", runErr)
		}
		return fmt.Errorf("verification failed: %s", strings.TrimSpace(output))
	}
	if strings.Contains(output, "Contract successfully verified") {
		return nil
	}
	return fmt.Errorf("verification status unclear: %s", strings.TrimSpace(output))
}

func alreadyVerified(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "already verified")
}

// ExplorerURL builds the explorer page for a contract, empty when the network
// has no explorer.
func ExplorerURL(network *domain.Network, address string) string {
	if network == nil || network.ExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", strings.TrimSuffix(network.ExplorerURL, "/"), address)
}

func redact(args []string, secret string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if secret != "" && arg == secret {
			arg = "***"
		}
		out[i] = arg
	}
	return out
}
