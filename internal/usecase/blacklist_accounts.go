package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
)

// ErrBlacklistUnsupported is returned when the current implementation has no blacklist
var ErrBlacklistUnsupported = errors.New("token implementation does not support blacklisting")

// BlacklistAccountsParams contains parameters for the blacklist update
type BlacklistAccountsParams struct {
	// Accounts are roles or addresses
	Accounts []string
	// Remove takes the accounts off the blacklist instead
	Remove bool
}

// BlacklistAccountsResult contains the outcome of the update
type BlacklistAccountsResult struct {
	Accounts []common.Address
	Removed  bool
	TxHash   common.Hash
}

// BlacklistAccounts adds accounts to or removes them from the V2 blacklist.
// Only the token owner may call it.
type BlacklistAccounts struct {
	binder   *tokenBinder
	accounts AccountResolver
}

// NewBlacklistAccounts creates a new BlacklistAccounts use case
func NewBlacklistAccounts(
	cfg *config.RuntimeConfig,
	chain Chain,
	accounts AccountResolver,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
) *BlacklistAccounts {
	return &BlacklistAccounts{
		binder:   &tokenBinder{cfg: cfg, chain: chain, artifacts: artifacts, repo: repo},
		accounts: accounts,
	}
}

// Run executes the use case
func (uc *BlacklistAccounts) Run(ctx context.Context, params BlacklistAccountsParams) (*BlacklistAccountsResult, error) {
	if len(params.Accounts) == 0 {
		return nil, fmt.Errorf("no accounts given")
	}

	token, record, err := uc.binder.bind(ctx)
	if err != nil {
		return nil, err
	}
	if !token.Supports("blackList") {
		return nil, fmt.Errorf("%w (%s)", ErrBlacklistUnsupported, record.ContractName)
	}

	owner, err := signer(ctx, uc.accounts, domain.RoleDeployer)
	if err != nil {
		return nil, err
	}

	addresses := make([]common.Address, 0, len(params.Accounts))
	for _, ref := range params.Accounts {
		address, err := resolveAddress(ctx, uc.accounts, ref)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}

	update := token.BlackList
	if params.Remove {
		update = token.RemoveFromBlackList
	}
	receipt, err := update(ctx, owner, addresses)
	if err != nil {
		return nil, err
	}

	return &BlacklistAccountsResult{
		Accounts: addresses,
		Removed:  params.Remove,
		TxHash:   receipt.TxHash,
	}, nil
}
