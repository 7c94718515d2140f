package render

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func sampleDeployments() []*models.Deployment {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return []*models.Deployment{
		{
			Name:         "BEP20Token",
			Network:      "sepolia",
			ChainID:      11155111,
			ContractName: "BEP20TokenV2",
			Address:      "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
			Kind:         models.ProxiedDeployment,
			Args:         []string{"Blue Token", "BL"},
			ProxyInfo: &models.ProxyInfo{
				Proxy:          "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
				Admin:          "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
				Implementation: "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9",
				History: []models.ProxyUpgrade{{
					From:        "0x5FbDB2315678afecb367f032d93F642f64180aa3",
					To:          "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9",
					UpgradeTxID: "0xabc",
					UpgradedAt:  created,
				}},
			},
			Verification: models.VerificationInfo{Status: models.VerificationStatusVerified, URL: "https://sepolia.etherscan.io/address/0xCf7E"},
			Tags:         []string{"all", "blue"},
			CreatedAt:    created,
			UpdatedAt:    created,
		},
		{
			Name:         "BEP20TokenV2",
			Network:      "sepolia",
			ChainID:      11155111,
			ContractName: "BEP20TokenV2",
			Address:      "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9",
			Kind:         models.ImplementationDeployment,
			BlockNumber:  42,
			Tags:         []string{"all", "tokenV2"},
			CreatedAt:    created,
			UpdatedAt:    created,
		},
	}
}

func TestFormatMessages(t *testing.T) {
	assert.Equal(t, "❌ Boom", FormatError("boom"))
	assert.Equal(t, "❌ ", FormatError(""))
	assert.Equal(t, "✅ done", FormatSuccess("done"))
	assert.Equal(t, "⚠️  careful", FormatWarning("careful"))
}

func TestFormatAmount(t *testing.T) {
	amount, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5 BL", FormatAmount(amount, 18, "BL"))
	assert.Equal(t, "1.5", FormatAmount(amount, 18, ""))
	assert.Equal(t, "0", FormatAmount(nil, 18, ""))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Proxy Admin", title("PROXY_ADMIN"))
	assert.Equal(t, "Implementation", title("IMPLEMENTATION"))
}

func TestRenderDeploymentList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewDeploymentsRenderer(&buf).RenderDeploymentList(&usecase.DeploymentListResult{Network: "sepolia"})
		require.NoError(t, err)
		assert.Equal(t, "No deployments found on sepolia\n", buf.String())
	})

	t.Run("grouped by kind", func(t *testing.T) {
		var buf bytes.Buffer
		deployments := sampleDeployments()
		err := NewDeploymentsRenderer(&buf).RenderDeploymentList(&usecase.DeploymentListResult{
			Network:     "sepolia",
			Deployments: deployments,
			Summary:     usecase.DeploymentSummary{Total: len(deployments)},
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "PROXIED")
		assert.Contains(t, out, "IMPLEMENTATION")
		assert.NotContains(t, out, "PROXY ADMIN")
		assert.Contains(t, out, "└─ impl 0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9")
		assert.Contains(t, out, "verified")
		assert.Contains(t, out, "all,tokenV2")
		assert.Contains(t, out, "Total deployments: 2")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("PROXIED")), bytes.Index(buf.Bytes(), []byte("IMPLEMENTATION")))
	})
}

func TestRenderDeployment(t *testing.T) {
	deployments := sampleDeployments()
	result := &usecase.ShowDeploymentResult{Deployment: deployments[0], Implementation: deployments[1]}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewDeploymentRenderer(&buf, "")
		require.NoError(t, err)
		require.NoError(t, r.RenderDeployment(result))

		out := buf.String()
		assert.Contains(t, out, "Deployment: BEP20Token")
		assert.Contains(t, out, "Kind: Proxied")
		assert.Contains(t, out, "Implementation: 0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9 (BEP20TokenV2)")
		assert.Contains(t, out, "0x5FbDB2315678afecb367f032d93F642f64180aa3 → 0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9 at 2025-01-02 03:04:05")
		assert.Contains(t, out, "URL: https://sepolia.etherscan.io/address/0xCf7E")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewDeploymentRenderer(&buf, FormatJSON)
		require.NoError(t, err)
		require.NoError(t, r.RenderDeployment(result))

		var decoded struct {
			Deployment     models.Deployment `json:"deployment"`
			Implementation models.Deployment `json:"implementation"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "BEP20Token", decoded.Deployment.Name)
		assert.Equal(t, "BEP20TokenV2", decoded.Implementation.Name)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewDeploymentRenderer(&buf, FormatYAML)
		require.NoError(t, err)
		require.NoError(t, r.RenderDeployment(&usecase.ShowDeploymentResult{Deployment: deployments[1]}))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Contains(t, decoded, "deployment")
		assert.NotContains(t, decoded, "implementation")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := NewDeploymentRenderer(&bytes.Buffer{}, "xml")
		assert.Error(t, err)
	})
}

func TestRenderNetworks(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "hardhat", ChainID: 31337, Confirmations: 0, Development: true, Current: true},
			{Name: "sepolia", ChainID: 11155111, Confirmations: 6, ExplorerURL: "https://sepolia.etherscan.io"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "hardhat (dev)")
	assert.Contains(t, out, "in-process")
	assert.Contains(t, out, "not configured")
	assert.Contains(t, out, "11155111")
	assert.Contains(t, out, "●")
}

func TestRenderTokenOperations(t *testing.T) {
	deployer := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	user := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	t.Run("blacklist", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewTokenRenderer(&buf).RenderBlacklist(&usecase.BlacklistAccountsResult{
			Accounts: []common.Address{user},
			Removed:  true,
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Removed from blacklist 1 account(s)")
		assert.Contains(t, buf.String(), user.Hex())
	})

	t.Run("token info", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewTokenRenderer(&buf).RenderTokenInfo(&models.TokenInfo{
			Owner:       deployer,
			Name:        "Blue Token",
			Symbol:      "BL",
			Decimals:    0,
			TotalSupply: big.NewInt(1000),
			Balances: []models.AccountBalance{
				{Name: "deployer", Address: deployer, Balance: big.NewInt(950)},
				{Name: "user", Address: user, Balance: big.NewInt(50)},
			},
		})
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "Total Supply: 1000 BL")
		assert.Contains(t, out, "950")
		assert.NotContains(t, out, "Proxy:")
	})
}
