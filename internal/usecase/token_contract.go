package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// TokenContract is a typed view of the BEP20 token, usually bound to the
// proxy address with the ABI of the current implementation.
type TokenContract struct {
	boundContract
}

// NewTokenContract binds the token ABI to address. Transactions wait for
// confirmations blocks.
func NewTokenContract(chain Chain, address common.Address, tokenABI *abi.ABI, confirmations uint64) *TokenContract {
	return &TokenContract{boundContract{
		chain:         chain,
		abi:           tokenABI,
		address:       address,
		confirmations: confirmations,
	}}
}

func (t *TokenContract) Name(ctx context.Context) (string, error) {
	return t.callString(ctx, "name")
}

func (t *TokenContract) Symbol(ctx context.Context) (string, error) {
	return t.callString(ctx, "symbol")
}

func (t *TokenContract) Decimals(ctx context.Context) (uint8, error) {
	return t.callUint8(ctx, "decimals")
}

func (t *TokenContract) TotalSupply(ctx context.Context) (*big.Int, error) {
	return t.callBigInt(ctx, "totalSupply")
}

func (t *TokenContract) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	return t.callBigInt(ctx, "balanceOf", account)
}

func (t *TokenContract) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return t.callBigInt(ctx, "allowance", owner, spender)
}

func (t *TokenContract) Owner(ctx context.Context) (common.Address, error) {
	return t.callAddress(ctx, "owner")
}

// GetOwner is the BEP20 alias of Owner
func (t *TokenContract) GetOwner(ctx context.Context) (common.Address, error) {
	return t.callAddress(ctx, "getOwner")
}

func (t *TokenContract) Mintable(ctx context.Context) (bool, error) {
	return t.callBool(ctx, "mintable")
}

func (t *TokenContract) IsBlackListed(ctx context.Context, account common.Address) (bool, error) {
	return t.callBool(ctx, "isBlackListed", account)
}

func (t *TokenContract) Initialize(ctx context.Context, from *models.Account, params models.TokenParams) (*models.Receipt, error) {
	return t.transact(ctx, from, "initialize",
		params.Name, params.Symbol, params.Decimals, params.InitialSupply, params.Mintable, params.Owner)
}

func (t *TokenContract) Transfer(ctx context.Context, from *models.Account, to common.Address, amount *big.Int) (*models.Receipt, error) {
	return t.transact(ctx, from, "transfer", to, amount)
}

func (t *TokenContract) Approve(ctx context.Context, from *models.Account, spender common.Address, amount *big.Int) (*models.Receipt, error) {
	return t.transact(ctx, from, "approve", spender, amount)
}

func (t *TokenContract) TransferFrom(ctx context.Context, from *models.Account, sender, recipient common.Address, amount *big.Int) (*models.Receipt, error) {
	return t.transact(ctx, from, "transferFrom", sender, recipient, amount)
}

func (t *TokenContract) Mint(ctx context.Context, from *models.Account, amount *big.Int) (*models.Receipt, error) {
	return t.transact(ctx, from, "mint", amount)
}

func (t *TokenContract) Burn(ctx context.Context, from *models.Account, amount *big.Int) (*models.Receipt, error) {
	return t.transact(ctx, from, "burn", amount)
}

func (t *TokenContract) TransferOwnership(ctx context.Context, from *models.Account, newOwner common.Address) (*models.Receipt, error) {
	return t.transact(ctx, from, "transferOwnership", newOwner)
}

func (t *TokenContract) BlackList(ctx context.Context, from *models.Account, accounts []common.Address) (*models.Receipt, error) {
	return t.transact(ctx, from, "blackList", accounts)
}

func (t *TokenContract) RemoveFromBlackList(ctx context.Context, from *models.Account, accounts []common.Address) (*models.Receipt, error) {
	return t.transact(ctx, from, "removeFromBlackList", accounts)
}

// Transfers decodes the Transfer events this token emitted in the receipt
func (t *TokenContract) Transfers(receipt *models.Receipt) ([]models.TransferEvent, error) {
	event, ok := t.abi.Events["Transfer"]
	if !ok || receipt == nil {
		return nil, nil
	}

	var transfers []models.TransferEvent
	for _, log := range receipt.Logs {
		if log.Address != t.address || len(log.Topics) != 3 || log.Topics[0] != event.ID {
			continue
		}
		values, err := event.Inputs.NonIndexed().Unpack(log.Data)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, models.TransferEvent{
			From:  common.BytesToAddress(log.Topics[1].Bytes()),
			To:    common.BytesToAddress(log.Topics[2].Bytes()),
			Value: abi.ConvertType(values[0], new(big.Int)).(*big.Int),
		})
	}
	return transfers, nil
}

// tokenBinder binds the recorded BEP20Token proxy to the ABI of its current
// implementation.
type tokenBinder struct {
	cfg       *config.RuntimeConfig
	chain     Chain
	artifacts ArtifactRepository
	repo      DeploymentRepository
}

func (b *tokenBinder) bind(ctx context.Context) (*TokenContract, *models.Deployment, error) {
	record, err := b.repo.GetDeployment(ctx, domain.TokenDeployment)
	if err != nil {
		return nil, nil, err
	}
	artifact, err := b.artifacts.GetArtifact(ctx, record.ContractName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load artifact %s: %w", record.ContractName, err)
	}
	token := NewTokenContract(b.chain, common.HexToAddress(record.Address), &artifact.ABI, b.cfg.Confirmations())
	return token, record, nil
}

// resolveAddress accepts a named account role or a hex address
func resolveAddress(ctx context.Context, accounts AccountResolver, ref string) (common.Address, error) {
	if common.IsHexAddress(ref) {
		return common.HexToAddress(ref), nil
	}
	if strings.HasPrefix(ref, "0x") {
		return common.Address{}, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, ref)
	}
	account, err := accounts.Account(ctx, ref)
	if err != nil {
		return common.Address{}, err
	}
	return account.Address, nil
}
