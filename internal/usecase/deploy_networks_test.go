package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/bluetoken/bluedeploy/internal/adapters/accounts"
	"github.com/bluetoken/bluedeploy/internal/adapters/devchain"
	"github.com/bluetoken/bluedeploy/internal/adapters/repository/artifacts"
	"github.com/bluetoken/bluedeploy/internal/adapters/repository/deployments"
	"github.com/bluetoken/bluedeploy/internal/adapters/verification"
	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingChain records the depth of every confirmation wait and can refuse
// to deploy one contract
type recordingChain struct {
	*devchain.Chain

	mu           sync.Mutex
	depths       []uint64
	failContract string
}

func (c *recordingChain) Deploy(ctx context.Context, from *models.Account, artifact *models.Artifact, args ...any) (*models.PendingTx, error) {
	if artifact.ContractName == c.failContract {
		return nil, errors.New("deployment rejected")
	}
	return c.Chain.Deploy(ctx, from, artifact, args...)
}

func (c *recordingChain) WaitForConfirmations(ctx context.Context, tx *models.PendingTx, confirmations uint64) (*models.Receipt, error) {
	c.mu.Lock()
	c.depths = append(c.depths, confirmations)
	c.mu.Unlock()
	return c.Chain.WaitForConfirmations(ctx, tx, confirmations)
}

type mockAsyncVerifier struct {
	mock.Mock
}

func (m *mockAsyncVerifier) Submit(deployment *models.Deployment, network *domain.Network) {
	m.Called(deployment, network)
}

type mockContractVerifier struct {
	mock.Mock
}

func (m *mockContractVerifier) Verify(ctx context.Context, deployment *models.Deployment, network *domain.Network) (*models.VerificationInfo, error) {
	args := m.Called(ctx, deployment, network)
	info, _ := args.Get(0).(*models.VerificationInfo)
	return info, args.Error(1)
}

func named(name string) any {
	return mock.MatchedBy(func(d *models.Deployment) bool { return d.Name == name })
}

// networkDeploy runs the deploy drivers against a devchain configured as
// the named network, signing with a configured deployer key
type networkDeploy struct {
	cfg       *config.RuntimeConfig
	chain     *recordingChain
	repo      *deployments.MemoryRepository
	artifacts *artifacts.Repository
	accounts  *accounts.Resolver
	log       *slog.Logger
}

func newNetworkDeploy(t *testing.T, networkName, apiKey string) *networkDeploy {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	networks := domain.NewNetworkTable(domain.DefaultNetworks()...)
	network, ok := networks.Lookup(networkName)
	require.True(t, ok)

	cfg := &config.RuntimeConfig{
		Network:         &network,
		Networks:        networks,
		EtherscanAPIKey: apiKey,
		BlueConfig: &config.BlueFileConfig{
			Accounts: map[string]string{domain.RoleDeployer: accounts.DevelopmentKeys[0]},
		},
	}
	return &networkDeploy{
		cfg:       cfg,
		chain:     &recordingChain{Chain: devchain.New(log)},
		repo:      deployments.NewMemoryRepository(networkName),
		artifacts: artifacts.NewRepository(t.TempDir(), log),
		accounts:  accounts.NewResolver(cfg),
		log:       log,
	}
}

func (d *networkDeploy) run(verifier usecase.AsyncVerifier, params usecase.RunDeploymentsParams) (*usecase.RunDeploymentsResult, error) {
	progress := usecase.NopProgress{}
	token := usecase.NewDeployUpgradeableToken(d.cfg, d.chain, d.accounts, d.artifacts, d.repo, verifier, progress, d.log)
	tokenV2 := usecase.NewDeployTokenV2(d.cfg, d.chain, d.accounts, d.artifacts, d.repo, verifier, progress, d.log)
	return usecase.NewRunDeployments(token, tokenV2, d.log).Run(context.Background(), params)
}

func TestDeployVerificationGating(t *testing.T) {
	t.Run("public network with explorer key submits", func(t *testing.T) {
		d := newNetworkDeploy(t, domain.NetworkSepolia, "KEY")
		onSepolia := mock.MatchedBy(func(n *domain.Network) bool { return n.Name == domain.NetworkSepolia })

		verifier := &mockAsyncVerifier{}
		verifier.On("Submit", named(domain.TokenDeployment), onSepolia).Once()
		verifier.On("Submit", named(domain.TokenV2Deployment), onSepolia).Once()

		result, err := d.run(verifier, usecase.RunDeploymentsParams{})
		require.NoError(t, err)
		assert.True(t, result.Token.VerificationSubmitted)
		assert.True(t, result.TokenV2.VerificationSubmitted)
		verifier.AssertExpectations(t)
	})

	t.Run("missing explorer key skips", func(t *testing.T) {
		d := newNetworkDeploy(t, domain.NetworkSepolia, "")
		verifier := &mockAsyncVerifier{}

		result, err := d.run(verifier, usecase.RunDeploymentsParams{})
		require.NoError(t, err)
		assert.False(t, result.Token.VerificationSubmitted)
		assert.False(t, result.TokenV2.VerificationSubmitted)
		verifier.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("development network skips", func(t *testing.T) {
		d := newNetworkDeploy(t, domain.NetworkHardhat, "KEY")
		verifier := &mockAsyncVerifier{}

		result, err := d.run(verifier, usecase.RunDeploymentsParams{})
		require.NoError(t, err)
		assert.False(t, result.Token.VerificationSubmitted)
		verifier.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("reused records are resubmitted until verified", func(t *testing.T) {
		d := newNetworkDeploy(t, domain.NetworkSepolia, "KEY")
		first := &mockAsyncVerifier{}
		first.On("Submit", mock.Anything, mock.Anything)
		_, err := d.run(first, usecase.RunDeploymentsParams{})
		require.NoError(t, err)

		ctx := context.Background()
		token, err := d.repo.GetDeployment(ctx, domain.TokenDeployment)
		require.NoError(t, err)
		token.Verification.Status = models.VerificationStatusVerified
		require.NoError(t, d.repo.SaveDeployment(ctx, token))

		second := &mockAsyncVerifier{}
		second.On("Submit", named(domain.TokenV2Deployment), mock.Anything).Once()

		result, err := d.run(second, usecase.RunDeploymentsParams{})
		require.NoError(t, err)
		assert.True(t, result.Token.Reused)
		assert.False(t, result.Token.VerificationSubmitted)
		assert.True(t, result.TokenV2.VerificationSubmitted)
		second.AssertExpectations(t)
		second.AssertNumberOfCalls(t, "Submit", 1)
	})
}

func TestVerifierFailureLeavesDeploySuccessful(t *testing.T) {
	d := newNetworkDeploy(t, domain.NetworkSepolia, "KEY")

	contractVerifier := &mockContractVerifier{}
	contractVerifier.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(
		&models.VerificationInfo{Status: models.VerificationStatusFailed, Reason: "explorer unavailable"},
		errors.New("explorer unavailable"),
	)
	background := verification.NewBackground(contractVerifier, d.repo, d.log)

	result, err := d.run(background, usecase.RunDeploymentsParams{})
	require.NoError(t, err)
	assert.Len(t, result.Executed, 2)
	background.Wait(context.Background())

	contractVerifier.AssertNumberOfCalls(t, "Verify", 2)
	token, err := d.repo.GetDeployment(context.Background(), domain.TokenDeployment)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusFailed, token.Verification.Status)
	assert.Equal(t, "explorer unavailable", token.Verification.Reason)
}

func TestDeployWaitsForNetworkConfirmations(t *testing.T) {
	d := newNetworkDeploy(t, domain.NetworkSepolia, "")

	_, err := d.run(&mockAsyncVerifier{}, usecase.RunDeploymentsParams{})
	require.NoError(t, err)

	upgrade := usecase.NewUpgradeProxy(d.cfg, d.chain, d.accounts, d.artifacts, d.repo, usecase.AutoConfirm{}, usecase.NopProgress{}, d.log)
	_, err = upgrade.Run(context.Background(), usecase.UpgradeProxyParams{SkipConfirm: true})
	require.NoError(t, err)

	// implementation, admin, proxy, V2 and the upgrade
	require.Len(t, d.chain.depths, 5)
	for _, depth := range d.chain.depths {
		assert.Equal(t, uint64(6), depth)
	}
}

func TestResetDropsStaleTokenRecord(t *testing.T) {
	ctx := context.Background()
	d := newNetworkDeploy(t, domain.NetworkHardhat, "")
	verifier := &mockAsyncVerifier{}

	first, err := d.run(verifier, usecase.RunDeploymentsParams{Tags: []string{domain.TagBlue}})
	require.NoError(t, err)

	d.chain.failContract = domain.ProxyContract
	_, err = d.run(verifier, usecase.RunDeploymentsParams{Tags: []string{domain.TagBlue}, Reset: true})
	require.Error(t, err)

	_, err = d.repo.GetDeployment(ctx, domain.TokenDeployment)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	proxy, err := d.repo.GetDeployment(ctx, domain.TokenProxyDeployment)
	require.NoError(t, err)
	assert.Equal(t, first.Token.Proxy.Address, proxy.Address)
	verifier.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
