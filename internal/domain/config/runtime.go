package config

import (
	"time"

	"github.com/bluetoken/bluedeploy/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// DeploymentsDir holds the per-network deployment records
	DeploymentsDir string
	// ArtifactsDir holds compiled contract artifacts
	ArtifactsDir string

	// Context settings
	Network  *domain.Network
	Networks *domain.NetworkTable

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Verification
	EtherscanAPIKey string

	// Resolved configurations
	BlueConfig *BlueFileConfig
}

// Confirmations returns the block confirmations for the selected network.
func (c *RuntimeConfig) Confirmations() uint64 {
	if c.Network == nil || c.Networks == nil {
		return domain.DefaultBlockConfirmations
	}
	return c.Networks.Confirmations(c.Network.Name)
}
