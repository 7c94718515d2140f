package models

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{"1000000", 18, "1000000000000000000000000", false},
		{"1_000_000", 18, "1000000000000000000000000", false},
		{"1.5", 18, "1500000000000000000", false},
		{".25", 2, "25", false},
		{"100", 0, "100", false},
		{"1.234", 2, "", true},
		{"abc", 18, "", true},
		{"", 18, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnits(tt.in, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	supply, _ := new(big.Int).SetString("1000000000000000000000000", 10)
	assert.Equal(t, "1000000", FormatUnits(supply, 18))
	assert.Equal(t, "0.00000000000000005", FormatUnits(big.NewInt(50), 18))
	assert.Equal(t, "1.5", FormatUnits(big.NewInt(15), 1))
	assert.Equal(t, "-2", FormatUnits(big.NewInt(-2), 0))
	assert.Equal(t, "0", FormatUnits(nil, 18))
}
