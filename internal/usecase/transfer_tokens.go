package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// TransferTokensParams contains parameters for a token transfer
type TransferTokensParams struct {
	// From is the signing role, deployer when empty
	From string
	// To is a role or an address
	To string
	// Amount in whole tokens, e.g. "50" or "0.5"
	Amount string
}

// TransferTokensResult contains the outcome of the transfer
type TransferTokensResult struct {
	From        common.Address
	To          common.Address
	Amount      *big.Int
	Decimals    uint8
	TxHash      common.Hash
	Transfers   []models.TransferEvent
	FromBalance *big.Int
	ToBalance   *big.Int
}

// TransferTokens moves tokens between accounts
type TransferTokens struct {
	binder   *tokenBinder
	accounts AccountResolver
}

// NewTransferTokens creates a new TransferTokens use case
func NewTransferTokens(
	cfg *config.RuntimeConfig,
	chain Chain,
	accounts AccountResolver,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
) *TransferTokens {
	return &TransferTokens{
		binder:   &tokenBinder{cfg: cfg, chain: chain, artifacts: artifacts, repo: repo},
		accounts: accounts,
	}
}

// Run executes the transfer
func (uc *TransferTokens) Run(ctx context.Context, params TransferTokensParams) (*TransferTokensResult, error) {
	role := params.From
	if role == "" {
		role = domain.RoleDeployer
	}
	from, err := signer(ctx, uc.accounts, role)
	if err != nil {
		return nil, err
	}
	to, err := resolveAddress(ctx, uc.accounts, params.To)
	if err != nil {
		return nil, err
	}

	token, _, err := uc.binder.bind(ctx)
	if err != nil {
		return nil, err
	}
	decimals, err := token.Decimals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read decimals: %w", err)
	}
	amount, err := models.ParseUnits(params.Amount, decimals)
	if err != nil {
		return nil, err
	}

	receipt, err := token.Transfer(ctx, from, to, amount)
	if err != nil {
		return nil, err
	}
	transfers, err := token.Transfers(receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transfer events: %w", err)
	}

	result := &TransferTokensResult{
		From:      from.Address,
		To:        to,
		Amount:    amount,
		Decimals:  decimals,
		TxHash:    receipt.TxHash,
		Transfers: transfers,
	}
	if result.FromBalance, err = token.BalanceOf(ctx, from.Address); err != nil {
		return nil, err
	}
	if result.ToBalance, err = token.BalanceOf(ctx, to); err != nil {
		return nil, err
	}
	return result, nil
}
