package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactFileBytecodeLayouts(t *testing.T) {
	t.Run("hardhat layout", func(t *testing.T) {
		var file ArtifactFile
		require.NoError(t, json.Unmarshal([]byte(`{"contractName":"BEP20Token","abi":[],"bytecode":"0x6080"}`), &file))

		code, err := file.Bytecode.Decode()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, code)
	})

	t.Run("foundry layout", func(t *testing.T) {
		var file ArtifactFile
		require.NoError(t, json.Unmarshal([]byte(`{"abi":[],"bytecode":{"object":"6080"}}`), &file))

		code, err := file.Bytecode.Decode()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, code)
	})

	t.Run("empty bytecode", func(t *testing.T) {
		var file ArtifactFile
		require.NoError(t, json.Unmarshal([]byte(`{"abi":[],"bytecode":"0x"}`), &file))

		code, err := file.Bytecode.Decode()
		require.NoError(t, err)
		assert.Nil(t, code)
	})
}
