package config

import (
	"fmt"

	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// BlueFileConfig is the parsed blue.toml project file.
type BlueFileConfig struct {
	Networks map[string]NetworkConfig `toml:"networks"`
	Accounts map[string]string        `toml:"accounts"`
	Token    TokenConfig              `toml:"token"`
}

// NetworkConfig overlays or extends a built-in network row.
type NetworkConfig struct {
	ChainID            uint64  `toml:"chain_id"`
	RPCURL             string  `toml:"rpc_url"`
	ExplorerURL        string  `toml:"explorer_url,omitempty"`
	BlockConfirmations *uint64 `toml:"block_confirmations,omitempty"`
}

// TokenConfig overrides the initial token parameters.
type TokenConfig struct {
	Name          string `toml:"name,omitempty"`
	Symbol        string `toml:"symbol,omitempty"`
	Decimals      *uint8 `toml:"decimals,omitempty"`
	InitialSupply string `toml:"initial_supply,omitempty"` // whole tokens, scaled by decimals
	Mintable      *bool  `toml:"mintable,omitempty"`
}

// Default token parameters.
const (
	DefaultTokenName     = "Blue Token"
	DefaultTokenSymbol   = "BL"
	DefaultTokenDecimals = uint8(18)
	DefaultInitialSupply = "1000000"
)

// Params resolves the initializer arguments, filling unset fields with the
// defaults. The initial supply is given in whole tokens.
func (c TokenConfig) Params(owner common.Address) (models.TokenParams, error) {
	params := models.TokenParams{
		Name:     DefaultTokenName,
		Symbol:   DefaultTokenSymbol,
		Decimals: DefaultTokenDecimals,
		Mintable: true,
		Owner:    owner,
	}
	if c.Name != "" {
		params.Name = c.Name
	}
	if c.Symbol != "" {
		params.Symbol = c.Symbol
	}
	if c.Decimals != nil {
		params.Decimals = *c.Decimals
	}
	if c.Mintable != nil {
		params.Mintable = *c.Mintable
	}

	supply := DefaultInitialSupply
	if c.InitialSupply != "" {
		supply = c.InitialSupply
	}
	amount, err := models.ParseUnits(supply, params.Decimals)
	if err != nil {
		return models.TokenParams{}, fmt.Errorf("invalid initial_supply %q: %w", supply, err)
	}
	params.InitialSupply = amount
	return params, nil
}
