package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "blue.toml"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env files must be loaded before blue.toml so its values can expand them
	loadEnvFiles(projectRoot)

	blueFile, err := LoadBlueFile(projectRoot)
	if err != nil {
		return nil, err
	}

	networks := BuildNetworkTable(blueFile)
	networkName := v.GetString("network")
	if networkName == "" {
		networkName = domain.NetworkHardhat
	}
	network, ok := networks.Lookup(networkName)
	if !ok {
		return nil, fmt.Errorf("unknown network %q (available: %s)", networkName, strings.Join(networks.Names(), ", "))
	}

	return &config.RuntimeConfig{
		ProjectRoot:     projectRoot,
		DeploymentsDir:  filepath.Join(projectRoot, "deployments"),
		ArtifactsDir:    filepath.Join(projectRoot, "artifacts"),
		Network:         &network,
		Networks:        networks,
		Debug:           v.GetBool("debug"),
		NonInteractive:  v.GetBool("non_interactive"),
		Timeout:         v.GetDuration("timeout"),
		EtherscanAPIKey: v.GetString("etherscan_api_key"),
		BlueConfig:      blueFile,
	}, nil
}

// FindProjectRoot walks up from the current directory to find blue.toml.
// Without one, the current directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".blue"))

	// Set up environment variables
	v.SetEnvPrefix("BLUE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	_ = v.BindEnv("etherscan_api_key", "BLUE_ETHERSCAN_API_KEY", "ETHERSCAN_API_KEY")

	// Set defaults
	v.SetDefault("network", domain.NetworkHardhat)
	v.SetDefault("timeout", "10m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
