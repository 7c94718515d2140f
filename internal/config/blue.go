package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env and .env.local from the project root. Variables
// already present in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadBlueFile parses blue.toml in projectRoot. A missing file yields an
// empty configuration. String values are expanded against the environment.
func LoadBlueFile(projectRoot string) (*config.BlueFileConfig, error) {
	cfg := &config.BlueFileConfig{
		Networks: make(map[string]config.NetworkConfig),
		Accounts: make(map[string]string),
	}

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.Accounts == nil {
		cfg.Accounts = make(map[string]string)
	}

	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		cfg.Networks[name] = network
	}
	for role, key := range cfg.Accounts {
		cfg.Accounts[role] = os.ExpandEnv(key)
	}
	cfg.Token.Name = os.ExpandEnv(cfg.Token.Name)
	cfg.Token.Symbol = os.ExpandEnv(cfg.Token.Symbol)
	cfg.Token.InitialSupply = os.ExpandEnv(cfg.Token.InitialSupply)

	return cfg, nil
}

// BuildNetworkTable overlays the blue.toml networks on the built-in rows.
func BuildNetworkTable(cfg *config.BlueFileConfig) *domain.NetworkTable {
	rows := domain.DefaultNetworks()
	if cfg != nil {
		for name, network := range cfg.Networks {
			rows = append(rows, domain.Network{
				Name:               name,
				ChainID:            network.ChainID,
				RPCURL:             network.RPCURL,
				ExplorerURL:        network.ExplorerURL,
				BlockConfirmations: network.BlockConfirmations,
			})
		}
	}
	return domain.NewNetworkTable(rows...)
}
