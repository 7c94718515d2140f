package accounts

import (
	"context"
	"testing"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runtimeConfig(network string, accounts map[string]string) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network:    &domain.Network{Name: network},
		BlueConfig: &config.BlueFileConfig{Accounts: accounts},
	}
}

func TestResolverDevelopmentKeys(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(runtimeConfig(domain.NetworkHardhat, nil))

	expected := map[string]string{
		domain.RoleDeployer:    "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		domain.RoleUser:        "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		domain.RoleAnotherUser: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
	}
	for role, address := range expected {
		account, err := r.Account(ctx, role)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(address), account.Address, role)
		assert.True(t, account.CanSign())
	}
}

func TestResolverConfiguredAccounts(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(runtimeConfig(domain.NetworkSepolia, map[string]string{
		domain.RoleDeployer: "0x" + DevelopmentKeys[1],
		"treasury":          "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
	}))

	deployer, err := r.Account(ctx, domain.RoleDeployer)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), deployer.Address)

	treasury, err := r.Account(ctx, "treasury")
	require.NoError(t, err)
	assert.False(t, treasury.CanSign())

	_, err = r.Account(ctx, domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolverConfiguredOverridesDevelopment(t *testing.T) {
	r := NewResolver(runtimeConfig(domain.NetworkLocalhost, map[string]string{
		domain.RoleDeployer: DevelopmentKeys[2],
	}))

	deployer, err := r.Account(context.Background(), domain.RoleDeployer)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"), deployer.Address)
}

func TestResolverInvalidValue(t *testing.T) {
	r := NewResolver(runtimeConfig(domain.NetworkSepolia, map[string]string{
		domain.RoleDeployer: "0x1234",
	}))

	_, err := r.NamedAccounts(context.Background())
	assert.Error(t, err)
}
