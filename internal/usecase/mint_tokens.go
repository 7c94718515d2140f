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

// MintTokensParams contains parameters for minting
type MintTokensParams struct {
	// From is the signing role, deployer when empty. Only the owner may mint.
	From string
	// Amount in whole tokens
	Amount string
}

// MintTokensResult contains the outcome of the mint
type MintTokensResult struct {
	Minter      common.Address
	Amount      *big.Int
	Decimals    uint8
	TxHash      common.Hash
	TotalSupply *big.Int
	Balance     *big.Int
}

// MintTokens mints new tokens to the signer
type MintTokens struct {
	binder   *tokenBinder
	accounts AccountResolver
}

// NewMintTokens creates a new MintTokens use case
func NewMintTokens(
	cfg *config.RuntimeConfig,
	chain Chain,
	accounts AccountResolver,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
) *MintTokens {
	return &MintTokens{
		binder:   &tokenBinder{cfg: cfg, chain: chain, artifacts: artifacts, repo: repo},
		accounts: accounts,
	}
}

// Run executes the mint
func (uc *MintTokens) Run(ctx context.Context, params MintTokensParams) (*MintTokensResult, error) {
	role := params.From
	if role == "" {
		role = domain.RoleDeployer
	}
	minter, err := signer(ctx, uc.accounts, role)
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

	receipt, err := token.Mint(ctx, minter, amount)
	if err != nil {
		return nil, err
	}

	result := &MintTokensResult{
		Minter:   minter.Address,
		Amount:   amount,
		Decimals: decimals,
		TxHash:   receipt.TxHash,
	}
	if result.TotalSupply, err = token.TotalSupply(ctx); err != nil {
		return nil, err
	}
	if result.Balance, err = token.BalanceOf(ctx, minter.Address); err != nil {
		return nil, err
	}
	return result, nil
}
