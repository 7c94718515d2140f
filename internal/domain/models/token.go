package models

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// TokenParams are the one-time initializer arguments of the token
type TokenParams struct {
	Name          string
	Symbol        string
	Decimals      uint8
	InitialSupply *big.Int
	Mintable      bool
	Owner         common.Address
}

// Args renders the parameters in initializer order
func (p TokenParams) Args() []string {
	return []string{
		p.Name,
		p.Symbol,
		fmt.Sprintf("%d", p.Decimals),
		p.InitialSupply.String(),
		fmt.Sprintf("%t", p.Mintable),
		p.Owner.Hex(),
	}
}

// TokenInfo is a snapshot of token state read through the proxy
type TokenInfo struct {
	Address     common.Address
	Owner       common.Address
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *big.Int
	Mintable    bool
	Balances    []AccountBalance
	Proxy       *ProxyTriple
}

// AccountBalance is the token balance held by a named account
type AccountBalance struct {
	Name    string
	Address common.Address
	Balance *big.Int
}

// TransferEvent is a decoded Transfer(from, to, value) log
type TransferEvent struct {
	From  common.Address
	To    common.Address
	Value *big.Int
}

// ParseUnits converts a decimal string such as "1000000" or "1.5" into the
// integer amount scaled by 10^decimals.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", ""))
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	whole, frac, hasFrac := strings.Cut(value, ".")
	if hasFrac && len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %q has more than %d decimals", value, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))
	if whole == "" {
		whole = "0"
	}
	amount, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

// FormatUnits renders an integer amount scaled down by 10^decimals
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	s := new(big.Int).Abs(amount).String()
	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}
	if decimals == 0 {
		return sign + s
	}
	if len(s) <= int(decimals) {
		s = strings.Repeat("0", int(decimals)-len(s)+1) + s
	}
	whole, frac := s[:len(s)-int(decimals)], strings.TrimRight(s[len(s)-int(decimals):], "0")
	if frac == "" {
		return sign + whole
	}
	return sign + whole + "." + frac
}
