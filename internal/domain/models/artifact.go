package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is a compiled contract: its ABI and creation bytecode.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

// HasBytecode reports whether the artifact can be deployed to a real chain
func (a *Artifact) HasBytecode() bool {
	return len(a.Bytecode) > 0
}

// ArtifactFile is the on-disk artifact format. Both the Hardhat layout
// ("bytecode": "0x...") and the Foundry layout ("bytecode": {"object": "0x..."})
// are accepted.
type ArtifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     BytecodeField   `json:"bytecode"`
}

// BytecodeField decodes either bytecode layout
type BytecodeField struct {
	Object string
}

// UnmarshalJSON implements json.Unmarshaler
func (b *BytecodeField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}
	var object struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("invalid bytecode field: %w", err)
	}
	b.Object = object.Object
	return nil
}

// Decode returns the bytecode bytes, nil when empty
func (b BytecodeField) Decode() ([]byte, error) {
	object := strings.TrimSpace(b.Object)
	if object == "" || object == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	return hexutil.Decode(object)
}
