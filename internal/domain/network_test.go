package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkTable(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		table := NewNetworkTable(DefaultNetworks()...)

		assert.Equal(t, uint64(6), table.Confirmations(NetworkSepolia))
		assert.Equal(t, uint64(6), table.Confirmations(NetworkBSCTestnet))
		assert.Equal(t, uint64(1), table.Confirmations(NetworkHardhat))
		assert.Equal(t, uint64(1), table.Confirmations(NetworkLocalhost))
		assert.Equal(t, []string{"bscTestnet", "hardhat", "localhost", "sepolia"}, table.Names())
	})

	t.Run("unknown network falls back to one confirmation", func(t *testing.T) {
		table := NewNetworkTable(DefaultNetworks()...)
		assert.Equal(t, uint64(1), table.Confirmations("mainnet"))

		_, ok := table.Lookup("mainnet")
		assert.False(t, ok)
	})

	t.Run("overlay keeps unset fields", func(t *testing.T) {
		two := uint64(2)
		table := NewNetworkTable(append(DefaultNetworks(),
			Network{Name: NetworkSepolia, RPCURL: "https://rpc.sepolia.example"},
			Network{Name: "mainnet", ChainID: 1, BlockConfirmations: &two},
		)...)

		sepolia, ok := table.Lookup(NetworkSepolia)
		assert.True(t, ok)
		assert.Equal(t, "https://rpc.sepolia.example", sepolia.RPCURL)
		assert.Equal(t, uint64(11155111), sepolia.ChainID)
		assert.Equal(t, uint64(6), table.Confirmations(NetworkSepolia))
		assert.Equal(t, uint64(2), table.Confirmations("mainnet"))
	})

	t.Run("lookup returns a copy", func(t *testing.T) {
		table := NewNetworkTable(DefaultNetworks()...)
		sepolia, _ := table.Lookup(NetworkSepolia)
		*sepolia.BlockConfirmations = 42

		assert.Equal(t, uint64(6), table.Confirmations(NetworkSepolia))
	})
}

func TestIsDevelopmentChain(t *testing.T) {
	assert.True(t, IsDevelopmentChain("hardhat"))
	assert.True(t, IsDevelopmentChain("localhost"))
	assert.False(t, IsDevelopmentChain("sepolia"))
}
