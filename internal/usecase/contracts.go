package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// boundContract packs calls against a contract ABI and routes them through a Chain
type boundContract struct {
	chain         Chain
	abi           *abi.ABI
	address       common.Address
	confirmations uint64
}

func (c *boundContract) Address() common.Address {
	return c.address
}

// Supports reports whether the bound ABI declares the method
func (c *boundContract) Supports(method string) bool {
	_, ok := c.abi.Methods[method]
	return ok
}

func (c *boundContract) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	out, err := c.chain.Call(ctx, common.Address{}, c.address, data)
	if err != nil {
		return nil, err
	}
	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s returned no values", method)
	}
	return values, nil
}

// transact sends the call signed by from and waits for the configured depth
func (c *boundContract) transact(ctx context.Context, from *models.Account, method string, args ...any) (*models.Receipt, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	tx, err := c.chain.Transact(ctx, from, c.address, data)
	if err != nil {
		return nil, err
	}
	receipt, err := c.chain.WaitForConfirmations(ctx, tx, c.confirmations)
	if err != nil {
		return nil, err
	}
	if !receipt.Succeeded() {
		return receipt, domain.Revert("")
	}
	return receipt, nil
}

func (c *boundContract) callAddress(ctx context.Context, method string, args ...any) (common.Address, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *boundContract) callBigInt(ctx context.Context, method string, args ...any) (*big.Int, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	return abi.ConvertType(out[0], new(big.Int)).(*big.Int), nil
}

func (c *boundContract) callString(ctx context.Context, method string, args ...any) (string, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (c *boundContract) callBool(ctx context.Context, method string, args ...any) (bool, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *boundContract) callUint8(ctx context.Context, method string, args ...any) (uint8, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

func equalAddress(a, b string) bool {
	return common.HexToAddress(a) == common.HexToAddress(b)
}
