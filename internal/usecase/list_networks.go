package usecase

import (
	"context"

	"github.com/bluetoken/bluedeploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents one row of the network table
type NetworkStatus struct {
	Name          string
	ChainID       uint64
	RPCURL        string
	ExplorerURL   string
	Confirmations uint64
	Development   bool
	Current       bool
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{
		config: cfg,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	table := uc.config.Networks
	names := table.Names()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		network, _ := table.Lookup(name)
		networks = append(networks, NetworkStatus{
			Name:          name,
			ChainID:       network.ChainID,
			RPCURL:        network.RPCURL,
			ExplorerURL:   network.ExplorerURL,
			Confirmations: table.Confirmations(name),
			Development:   network.IsDevelopment(),
			Current:       uc.config.Network != nil && uc.config.Network.Name == name,
		})
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
