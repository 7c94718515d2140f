package domain

import (
	"sort"
)

// Built-in network names.
const (
	NetworkHardhat    = "hardhat"
	NetworkLocalhost  = "localhost"
	NetworkSepolia    = "sepolia"
	NetworkBSCTestnet = "bscTestnet"

	// DevChainID is the chain id of the in-process development network
	DevChainID uint64 = 31337

	// DefaultBlockConfirmations applies when a network does not set its own
	DefaultBlockConfirmations uint64 = 1
)

// DevelopmentChains are the networks considered local; source verification
// never runs against them.
var DevelopmentChains = []string{NetworkHardhat, NetworkLocalhost}

// Network represents network configuration
type Network struct {
	Name               string  `json:"name" yaml:"name"`
	ChainID            uint64  `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	RPCURL             string  `json:"rpcUrl,omitempty" yaml:"rpcUrl,omitempty"`
	ExplorerURL        string  `json:"explorerUrl,omitempty" yaml:"explorerUrl,omitempty"`
	BlockConfirmations *uint64 `json:"blockConfirmations,omitempty" yaml:"blockConfirmations,omitempty"`
}

// IsDevelopment reports whether the network is a local development network
func (n *Network) IsDevelopment() bool {
	return IsDevelopmentChain(n.Name)
}

// InProcess reports whether the network is served by the in-process devchain
func (n *Network) InProcess() bool {
	return n.Name == NetworkHardhat
}

// IsDevelopmentChain reports whether name is one of DevelopmentChains
func IsDevelopmentChain(name string) bool {
	for _, dev := range DevelopmentChains {
		if dev == name {
			return true
		}
	}
	return false
}

// NetworkTable maps network names to their parameters. It is built once at
// startup and never mutated afterwards.
type NetworkTable struct {
	networks map[string]Network
}

// DefaultNetworks returns the built-in network rows
func DefaultNetworks() []Network {
	six := uint64(6)
	return []Network{
		{Name: NetworkLocalhost, ChainID: DevChainID, RPCURL: "http://127.0.0.1:8545"},
		{Name: NetworkHardhat, ChainID: DevChainID},
		{Name: NetworkSepolia, ChainID: 11155111, ExplorerURL: "https://sepolia.etherscan.io", BlockConfirmations: &six},
		{Name: NetworkBSCTestnet, ChainID: 97, ExplorerURL: "https://testnet.bscscan.com", BlockConfirmations: &six},
	}
}

// NewNetworkTable builds a table from rows. Later rows with the same name
// override fields set in earlier ones.
func NewNetworkTable(rows ...Network) *NetworkTable {
	t := &NetworkTable{networks: make(map[string]Network, len(rows))}
	for _, row := range rows {
		existing, ok := t.networks[row.Name]
		if !ok {
			t.networks[row.Name] = copyNetwork(row)
			continue
		}
		if row.ChainID != 0 {
			existing.ChainID = row.ChainID
		}
		if row.RPCURL != "" {
			existing.RPCURL = row.RPCURL
		}
		if row.ExplorerURL != "" {
			existing.ExplorerURL = row.ExplorerURL
		}
		if row.BlockConfirmations != nil {
			existing.BlockConfirmations = copyNetwork(row).BlockConfirmations
		}
		t.networks[row.Name] = existing
	}
	return t
}

// Lookup returns a copy of the named network
func (t *NetworkTable) Lookup(name string) (Network, bool) {
	n, ok := t.networks[name]
	if !ok {
		return Network{}, false
	}
	return copyNetwork(n), true
}

// Confirmations returns the confirmation depth for a network, 1 when unset
// or when the network is unknown.
func (t *NetworkTable) Confirmations(name string) uint64 {
	n, ok := t.networks[name]
	if !ok || n.BlockConfirmations == nil || *n.BlockConfirmations == 0 {
		return DefaultBlockConfirmations
	}
	return *n.BlockConfirmations
}

// Names returns the sorted network names
func (t *NetworkTable) Names() []string {
	names := make([]string, 0, len(t.networks))
	for name := range t.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyNetwork(n Network) Network {
	if n.BlockConfirmations != nil {
		v := *n.BlockConfirmations
		n.BlockConfirmations = &v
	}
	return n
}
