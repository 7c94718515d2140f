package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func runtimeConfig(t *testing.T, network string) *config.RuntimeConfig {
	t.Helper()
	networks := domain.NewNetworkTable(domain.DefaultNetworks()...)
	n, ok := networks.Lookup(network)
	require.True(t, ok)
	return &config.RuntimeConfig{Network: &n, Networks: networks, NonInteractive: true}
}

func records() []*models.Deployment {
	return []*models.Deployment{
		{Name: "BEP20TokenV2", Kind: models.ImplementationDeployment, BlockNumber: 9,
			Address: "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9", Tags: []string{"all", "tokenV2"}},
		{Name: "BEP20Token", Kind: models.ProxiedDeployment, BlockNumber: 3,
			Address: "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0", Tags: []string{"all", "blue"},
			ProxyInfo: &models.ProxyInfo{Implementation: "0xcf7ed3acca5a467e9e704c703e8d87f634fb0fc9"}},
		{Name: "BEP20Token_Proxy", Kind: models.ProxyDeployment, BlockNumber: 3,
			Address: "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0", Tags: []string{"all", "blue"}},
		{Name: "BEP20Token_Implementation", Kind: models.ImplementationDeployment, BlockNumber: 1,
			Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3", Tags: []string{"all", "blue"}},
	}
}

func TestListDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted by block then name", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("ListDeployments", ctx).Return(records(), nil)

		result, err := NewListDeployments(runtimeConfig(t, domain.NetworkSepolia), repo, NopProgress{}).
			Run(ctx, ListDeploymentsParams{})
		require.NoError(t, err)

		names := make([]string, 0, len(result.Deployments))
		for _, d := range result.Deployments {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"BEP20Token_Implementation", "BEP20Token", "BEP20Token_Proxy", "BEP20TokenV2"}, names)
		assert.Equal(t, "sepolia", result.Network)
		assert.Equal(t, 4, result.Summary.Total)
		assert.Equal(t, 2, result.Summary.ByKind[models.ImplementationDeployment])
	})

	t.Run("filters by kind and tag", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("ListDeployments", ctx).Return(records(), nil)
		uc := NewListDeployments(runtimeConfig(t, domain.NetworkSepolia), repo, NopProgress{})

		result, err := uc.Run(ctx, ListDeploymentsParams{Kind: models.ImplementationDeployment, Tag: "tokenV2"})
		require.NoError(t, err)
		require.Len(t, result.Deployments, 1)
		assert.Equal(t, "BEP20TokenV2", result.Deployments[0].Name)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("ListDeployments", ctx).Return(nil, errors.New("disk gone"))

		_, err := NewListDeployments(runtimeConfig(t, domain.NetworkSepolia), repo, NopProgress{}).
			Run(ctx, ListDeploymentsParams{})
		assert.EqualError(t, err, "disk gone")
	})
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves proxy implementation", func(t *testing.T) {
		all := records()
		repo := &mockRepo{}
		repo.On("GetDeployment", ctx, "BEP20Token").Return(all[1], nil)
		repo.On("ListDeployments", ctx).Return(all, nil)

		result, err := NewShowDeployment(runtimeConfig(t, domain.NetworkSepolia), repo, nil, NopProgress{}).
			Run(ctx, ShowDeploymentParams{Name: "BEP20Token", ResolveProxy: true})
		require.NoError(t, err)
		require.NotNil(t, result.Implementation)
		assert.Equal(t, "BEP20TokenV2", result.Implementation.Name)
	})

	t.Run("missing record", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetDeployment", ctx, "Nope").Return(nil, domain.DeploymentNotFoundError{Name: "Nope"})

		_, err := NewShowDeployment(runtimeConfig(t, domain.NetworkSepolia), repo, nil, NopProgress{}).
			Run(ctx, ShowDeploymentParams{Name: "Nope"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("name required without a terminal", func(t *testing.T) {
		_, err := NewShowDeployment(runtimeConfig(t, domain.NetworkSepolia), &mockRepo{}, &mockSelector{}, NopProgress{}).
			Run(ctx, ShowDeploymentParams{})
		assert.Error(t, err)
	})

	t.Run("interactive picker", func(t *testing.T) {
		all := records()
		cfg := runtimeConfig(t, domain.NetworkSepolia)
		cfg.NonInteractive = false

		repo := &mockRepo{}
		repo.On("ListDeployments", ctx).Return(all, nil)
		selector := &mockSelector{}
		selector.On("SelectDeployment", ctx, mock.Anything, "Select a deployment").Return(all[0], nil)

		result, err := NewShowDeployment(cfg, repo, selector, NopProgress{}).Run(ctx, ShowDeploymentParams{})
		require.NoError(t, err)
		assert.Equal(t, "BEP20TokenV2", result.Deployment.Name)
		selector.AssertExpectations(t)
	})
}

func TestListNetworks(t *testing.T) {
	result, err := NewListNetworks(runtimeConfig(t, domain.NetworkSepolia)).Run(context.Background(), ListNetworksParams{})
	require.NoError(t, err)

	byName := map[string]NetworkStatus{}
	for _, n := range result.Networks {
		byName[n.Name] = n
	}
	require.Contains(t, byName, "hardhat")
	require.Contains(t, byName, "sepolia")
	assert.True(t, byName["sepolia"].Current)
	assert.Equal(t, uint64(6), byName["sepolia"].Confirmations)
	assert.True(t, byName["hardhat"].Development)
	assert.Equal(t, uint64(1), byName["hardhat"].Confirmations)
}

func TestVerifyDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("development network is skipped", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetDeployment", ctx, "BEP20TokenV2").Return(records()[0], nil)
		verifier := &mockVerifier{}

		result, err := NewVerifyDeployment(runtimeConfig(t, domain.NetworkHardhat), repo, verifier, NopProgress{}).
			Run(ctx, "BEP20TokenV2", VerifyOptions{})
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("records verifier outcome", func(t *testing.T) {
		record := records()[0]
		repo := &mockRepo{}
		repo.On("GetDeployment", ctx, "BEP20TokenV2").Return(record, nil)
		repo.On("SaveDeployment", ctx, record).Return(nil)
		verifier := &mockVerifier{}
		verifier.On("Verify", ctx, record, mock.Anything).
			Return(&models.VerificationInfo{Status: models.VerificationStatusVerified, URL: "https://sepolia.etherscan.io/address/x"}, nil)

		result, err := NewVerifyDeployment(runtimeConfig(t, domain.NetworkSepolia), repo, verifier, NopProgress{}).
			Run(ctx, "BEP20TokenV2", VerifyOptions{})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, models.VerificationStatusVerified, record.Verification.Status)
		repo.AssertExpectations(t)
	})

	t.Run("failure is reported not returned", func(t *testing.T) {
		record := records()[0]
		repo := &mockRepo{}
		repo.On("GetDeployment", ctx, "BEP20TokenV2").Return(record, nil)
		repo.On("SaveDeployment", ctx, record).Return(nil)
		verifier := &mockVerifier{}
		verifier.On("Verify", ctx, record, mock.Anything).Return(nil, errors.New("explorer unreachable"))

		result, err := NewVerifyDeployment(runtimeConfig(t, domain.NetworkSepolia), repo, verifier, NopProgress{}).
			Run(ctx, "BEP20TokenV2", VerifyOptions{})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, []string{"explorer unreachable"}, result.Errors)
		assert.Equal(t, models.VerificationStatusFailed, record.Verification.Status)
	})

	t.Run("already verified needs force", func(t *testing.T) {
		record := records()[0]
		record.Verification.Status = models.VerificationStatusVerified
		repo := &mockRepo{}
		repo.On("GetDeployment", ctx, "BEP20TokenV2").Return(record, nil)
		verifier := &mockVerifier{}

		result, err := NewVerifyDeployment(runtimeConfig(t, domain.NetworkSepolia), repo, verifier, NopProgress{}).
			Run(ctx, "BEP20TokenV2", VerifyOptions{})
		require.NoError(t, err)
		assert.True(t, result.Success)
		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRunDeploymentsRejectsUnknownTags(t *testing.T) {
	uc := NewRunDeployments(nil, nil, nil)

	_, err := uc.Run(context.Background(), RunDeploymentsParams{Tags: []string{"blue", "nope"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTag)

	var unknown domain.UnknownTagsErr
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"nope"}, unknown.Tags)
	assert.ElementsMatch(t, []string{"all", "blue", "tokenV2"}, uc.AvailableTags())
}
