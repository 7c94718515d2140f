// Package bindings carries the ABI definitions of the token suite contracts.
package bindings

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

//go:embed abi/*.json
var abiFS embed.FS

// Contract names with an embedded ABI.
const (
	BEP20Token            = "BEP20Token"
	BEP20TokenV2          = "BEP20TokenV2"
	BEP20UpgradeableProxy = "BEP20UpgradeableProxy"
	BEP20TokenProxyAdmin  = "BEP20TokenProxyAdmin"
)

var (
	parsedMu sync.Mutex
	parsed   = map[string]*abi.ABI{}
)

// ABI returns the parsed embedded ABI of the named contract.
func ABI(contractName string) (*abi.ABI, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if a, ok := parsed[contractName]; ok {
		return a, nil
	}
	raw, err := abiFS.ReadFile("abi/" + contractName + ".json")
	if err != nil {
		return nil, fmt.Errorf("no embedded ABI for %s", contractName)
	}
	a, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", contractName, err)
	}
	parsed[contractName] = &a
	return &a, nil
}

// MustABI is ABI for contract names known at compile time.
func MustABI(contractName string) *abi.ABI {
	a, err := ABI(contractName)
	if err != nil {
		panic(err)
	}
	return a
}

// RawABI returns the embedded ABI JSON of the named contract.
func RawABI(contractName string) ([]byte, error) {
	return abiFS.ReadFile("abi/" + contractName + ".json")
}

// Has reports whether an ABI is embedded for the contract.
func Has(contractName string) bool {
	_, err := abiFS.ReadFile("abi/" + contractName + ".json")
	return err == nil
}

// GetEventID returns the topic hash of the named event on the contract.
func GetEventID(contractName, event string) (common.Hash, error) {
	a, err := ABI(contractName)
	if err != nil {
		return common.Hash{}, err
	}
	ev, ok := a.Events[event]
	if !ok {
		return common.Hash{}, fmt.Errorf("event %s not found in %s ABI", event, contractName)
	}
	return ev.ID, nil
}
