package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a named signer. Key is nil for accounts that can only be
// read from (e.g. an address configured without a private key).
type Account struct {
	Name    string
	Address common.Address
	Key     *ecdsa.PrivateKey
}

// CanSign reports whether the account holds a private key
func (a *Account) CanSign() bool {
	return a != nil && a.Key != nil
}

// NamedAccounts maps role names to accounts
type NamedAccounts map[string]*Account
