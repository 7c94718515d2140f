package deployments_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bluetoken/bluedeploy/internal/adapters/repository/deployments"
	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenRecord() *models.Deployment {
	return &models.Deployment{
		Name:         domain.TokenDeployment,
		Network:      domain.NetworkSepolia,
		ChainID:      11155111,
		ContractName: domain.TokenContract,
		Address:      "0x1234567890123456789012345678901234567890",
		Kind:         models.ProxiedDeployment,
		Args:         []string{"Blue Token", "BL"},
		ProxyInfo: &models.ProxyInfo{
			Proxy:          "0x1234567890123456789012345678901234567890",
			Admin:          "0x2222222222222222222222222222222222222222",
			Implementation: "0x3333333333333333333333333333333333333333",
			History:        []models.ProxyUpgrade{},
		},
		Verification: models.VerificationInfo{Status: models.VerificationStatusUnverified},
		Tags:         []string{domain.TagAll, domain.TagBlue},
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		UpdatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and reload", func(t *testing.T) {
		root := t.TempDir()
		repo, err := deployments.NewFileRepository(root, domain.NetworkSepolia, 11155111)
		require.NoError(t, err)

		require.NoError(t, repo.SaveDeployment(ctx, tokenRecord()))

		assert.FileExists(t, filepath.Join(root, domain.NetworkSepolia, "BEP20Token.json"))
		chainID, err := os.ReadFile(filepath.Join(root, domain.NetworkSepolia, deployments.ChainIDFile))
		require.NoError(t, err)
		assert.Equal(t, "11155111", string(chainID))

		reloaded, err := deployments.NewFileRepository(root, domain.NetworkSepolia, 11155111)
		require.NoError(t, err)
		got, err := reloaded.GetDeployment(ctx, domain.TokenDeployment)
		require.NoError(t, err)
		assert.Equal(t, tokenRecord().Address, got.Address)
		assert.Equal(t, tokenRecord().ProxyInfo.Implementation, got.ProxyInfo.Implementation)
		assert.Equal(t, models.ProxiedDeployment, got.Kind)
	})

	t.Run("missing record", func(t *testing.T) {
		repo, err := deployments.NewFileRepository(t.TempDir(), domain.NetworkSepolia, 0)
		require.NoError(t, err)

		_, err = repo.GetDeployment(ctx, "Nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Contains(t, err.Error(), "Nope")
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		root := t.TempDir()
		repo, err := deployments.NewFileRepository(root, domain.NetworkSepolia, 11155111)
		require.NoError(t, err)
		require.NoError(t, repo.SaveDeployment(ctx, tokenRecord()))

		_, err = deployments.NewFileRepository(root, domain.NetworkSepolia, 97)
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		repo, err := deployments.NewFileRepository(t.TempDir(), domain.NetworkSepolia, 0)
		require.NoError(t, err)
		require.NoError(t, repo.SaveDeployment(ctx, tokenRecord()))

		got, err := repo.GetDeployment(ctx, domain.TokenDeployment)
		require.NoError(t, err)
		got.ProxyInfo.Implementation = "0x0"

		again, err := repo.GetDeployment(ctx, domain.TokenDeployment)
		require.NoError(t, err)
		assert.Equal(t, tokenRecord().ProxyInfo.Implementation, again.ProxyInfo.Implementation)
	})

	t.Run("list and delete", func(t *testing.T) {
		root := t.TempDir()
		repo, err := deployments.NewFileRepository(root, domain.NetworkSepolia, 0)
		require.NoError(t, err)

		admin := tokenRecord()
		admin.Name = domain.TokenProxyAdminDeployment
		admin.Kind = models.ProxyAdminDeployment
		admin.ProxyInfo = nil
		require.NoError(t, repo.SaveDeployment(ctx, tokenRecord()))
		require.NoError(t, repo.SaveDeployment(ctx, admin))

		all, err := repo.ListDeployments(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, domain.TokenDeployment, all[0].Name)
		assert.Equal(t, domain.TokenProxyAdminDeployment, all[1].Name)

		require.NoError(t, repo.DeleteDeployment(ctx, domain.TokenDeployment))
		assert.NoFileExists(t, filepath.Join(root, domain.NetworkSepolia, "BEP20Token.json"))
		assert.ErrorIs(t, repo.DeleteDeployment(ctx, domain.TokenDeployment), domain.ErrNotFound)
	})
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	var repo usecase.DeploymentRepository = deployments.NewMemoryRepository(domain.NetworkHardhat)

	_, err := repo.GetDeployment(ctx, domain.TokenDeployment)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.SaveDeployment(ctx, tokenRecord()))
	got, err := repo.GetDeployment(ctx, domain.TokenDeployment)
	require.NoError(t, err)
	assert.Equal(t, tokenRecord().Address, got.Address)

	all, err := repo.ListDeployments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteDeployment(ctx, domain.TokenDeployment))
	all, err = repo.ListDeployments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.Error(t, repo.SaveDeployment(ctx, &models.Deployment{}))
}
