package interactive

import (
	"context"
	"testing"

	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records() []*models.Deployment {
	return []*models.Deployment{
		{Name: "BEP20Token", ContractName: "BEP20Token", Kind: models.ProxiedDeployment, Address: "0xaa"},
		{Name: "BEP20Token_Proxy", ContractName: "BEP20UpgradeableProxy", Kind: models.ProxyDeployment, Address: "0xbb"},
		{Name: "BEP20TokenProxyAdmin", ContractName: "BEP20TokenProxyAdmin", Kind: models.ProxyAdminDeployment, Address: "0xcc"},
	}
}

func TestSelectDeploymentSingleChoice(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	selected, err := s.SelectDeployment(context.Background(), records()[:1], "pick")
	require.NoError(t, err)
	assert.Equal(t, "BEP20Token", selected.Name)
}

func TestSelectDeploymentNonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	_, err := s.SelectDeployment(context.Background(), records(), "pick")
	assert.ErrorIs(t, err, ErrNonInteractive)

	_, err = s.SelectDeployment(context.Background(), nil, "pick")
	assert.Error(t, err)

	_, err = s.Confirm(context.Background(), "continue?")
	assert.ErrorIs(t, err, ErrNonInteractive)
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc(searchKeys(records()))

	assert.True(t, search("", 0))
	assert.True(t, search("proxy", 1))
	assert.True(t, search("PrxAdm", 2))
	assert.False(t, search("proxy", 0))
	assert.True(t, search("0xcc", 2))
}

func TestFormatDeploymentOptions(t *testing.T) {
	color.NoColor = true
	options := formatDeploymentOptions([]*models.Deployment{
		{Name: "BEP20Token", ContractName: "BEP20TokenV2", Kind: models.ProxiedDeployment, Address: "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"},
		{Name: "BEP20TokenV2", ContractName: "BEP20TokenV2", Kind: models.ImplementationDeployment, Address: "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9"},
	})
	assert.Equal(t, []string{
		"BEP20Token (BEP20TokenV2) [proxied] 0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
		"BEP20TokenV2 [implementation] 0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9",
	}, options)
}
