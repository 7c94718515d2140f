package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/bluetoken/bluedeploy/internal/app"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCLI(t, append(args, "--non-interactive")...)
}

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Chdir(t.TempDir())
	t.Setenv("BLUE_NETWORK", "")
	t.Setenv("ETHERSCAN_API_KEY", "")
	t.Setenv("BLUE_ETHERSCAN_API_KEY", "")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(context.Background())
	if cmd == nil || cmd.Context() == nil {
		return out.String(), err
	}
	if a, ok := cmd.Context().Value(appKey).(*app.App); ok {
		a.Close(context.Background())
	}
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"deploy"},
		{"upgrade"},
		{"verify"},
		{"list"},
		{"show"},
		{"networks"},
		{"version"},
		{"token", "info"},
		{"token", "transfer"},
		{"token", "mint"},
		{"token", "blacklist"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	for _, flag := range []string{"network", "debug", "non-interactive", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "n", root.PersistentFlags().Lookup("network").Shorthand)
}

func TestArgValidation(t *testing.T) {
	root := NewRootCmd()
	cases := map[string]struct {
		path []string
		args []string
	}{
		"verify needs a name":     {[]string{"verify"}, nil},
		"transfer needs amount":   {[]string{"token", "transfer"}, []string{"user"}},
		"mint needs an amount":    {[]string{"token", "mint"}, nil},
		"blacklist needs account": {[]string{"token", "blacklist"}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find(tc.path)
			require.NoError(t, err)
			require.NotNil(t, cmd.Args)
			assert.Error(t, cmd.Args(cmd, tc.args))
		})
	}
}

func TestVersionSkipsAppInit(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "blue version dev")
}

func TestDeployOnInProcessChain(t *testing.T) {
	out, err := runCLI(t, "deploy")
	require.NoError(t, err)

	for _, name := range []string{
		"BEP20Token_Implementation",
		"BEP20TokenProxyAdmin",
		"BEP20Token_Proxy",
		"BEP20Token",
		"BEP20TokenV2",
	} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "2 driver(s) executed")
	assert.Contains(t, out, "1000000 BL minted to 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
}

func TestDeployRejectsUnknownTag(t *testing.T) {
	_, err := runCLI(t, "deploy", "--tags", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestTokenInfoOnInProcessChain(t *testing.T) {
	out, err := runCLI(t, "token", "info")
	require.NoError(t, err)

	assert.Contains(t, out, "Blue Token (BL)")
	assert.Contains(t, out, "Total Supply: 1000000 BL")
	assert.Contains(t, out, "Owner: 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Contains(t, out, "deployer")
}

func TestTokenTransferOnInProcessChain(t *testing.T) {
	out, err := runCLI(t, "token", "transfer", "user", "50")
	require.NoError(t, err)

	assert.Contains(t, out, "Transferred 50 from 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266 to 0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	assert.Contains(t, out, "Sender balance: 999950")
	assert.Contains(t, out, "Recipient balance: 50")
}

func TestUpgradeOnInProcessChain(t *testing.T) {
	out, err := runCLI(t, "upgrade", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Proxy upgraded to BEP20TokenV2")
}

func TestUpgradeWithoutTerminalSkipsPrompt(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	stdin := os.Stdin
	os.Stdin = devNull
	t.Cleanup(func() {
		os.Stdin = stdin
		devNull.Close()
	})

	out, err := executeCLI(t, "upgrade")
	require.NoError(t, err)
	assert.Contains(t, out, "Proxy upgraded to BEP20TokenV2")
}

func TestUnknownNetwork(t *testing.T) {
	_, err := runCLI(t, "list", "-n", "nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown network "nowhere"`)
}

func TestListKindParsing(t *testing.T) {
	kind, err := parseKind("proxy-admin")
	require.NoError(t, err)
	assert.Equal(t, "PROXY_ADMIN", string(kind))

	_, err = parseKind("library")
	assert.Error(t, err)
}


func TestShowJSONOnInProcessChain(t *testing.T) {
	out, err := runCLI(t, "show", "BEP20Token", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"name": "BEP20Token"`)
	assert.Contains(t, out, `"kind": "PROXIED"`)
	assert.Contains(t, out, `"implementation": {`)
}
