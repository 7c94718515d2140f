package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// InspectTokenParams contains parameters for inspecting the token
type InspectTokenParams struct {
	// Holders are extra roles or addresses whose balances are reported
	Holders []string
}

// InspectToken reads the token state through the proxy
type InspectToken struct {
	binder   *tokenBinder
	accounts AccountResolver
	repo     DeploymentRepository
	sink     ProgressSink
}

// NewInspectToken creates a new InspectToken use case
func NewInspectToken(
	cfg *config.RuntimeConfig,
	chain Chain,
	accounts AccountResolver,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
	sink ProgressSink,
) *InspectToken {
	return &InspectToken{
		binder:   &tokenBinder{cfg: cfg, chain: chain, artifacts: artifacts, repo: repo},
		accounts: accounts,
		repo:     repo,
		sink:     sink,
	}
}

// Run executes the use case
func (uc *InspectToken) Run(ctx context.Context, params InspectTokenParams) (*models.TokenInfo, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Reading token state",
		Spinner: true,
	})

	token, record, err := uc.binder.bind(ctx)
	if err != nil {
		return nil, err
	}

	info := &models.TokenInfo{Address: token.Address()}
	if info.Name, err = token.Name(ctx); err != nil {
		return nil, fmt.Errorf("failed to read name: %w", err)
	}
	if info.Symbol, err = token.Symbol(ctx); err != nil {
		return nil, fmt.Errorf("failed to read symbol: %w", err)
	}
	if info.Decimals, err = token.Decimals(ctx); err != nil {
		return nil, fmt.Errorf("failed to read decimals: %w", err)
	}
	if info.TotalSupply, err = token.TotalSupply(ctx); err != nil {
		return nil, fmt.Errorf("failed to read totalSupply: %w", err)
	}
	if info.Owner, err = token.GetOwner(ctx); err != nil {
		return nil, fmt.Errorf("failed to read owner: %w", err)
	}
	if info.Mintable, err = token.Mintable(ctx); err != nil {
		return nil, fmt.Errorf("failed to read mintable: %w", err)
	}

	named, err := uc.accounts.NamedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(named))
	for role := range named {
		roles = append(roles, role)
	}
	sort.SliceStable(roles, func(i, j int) bool { return roleOrder(roles[i]) < roleOrder(roles[j]) })

	for _, role := range roles {
		balance, err := token.BalanceOf(ctx, named[role].Address)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance of %s: %w", role, err)
		}
		info.Balances = append(info.Balances, models.AccountBalance{Name: role, Address: named[role].Address, Balance: balance})
	}
	for _, holder := range params.Holders {
		address, err := resolveAddress(ctx, uc.accounts, holder)
		if err != nil {
			return nil, err
		}
		balance, err := token.BalanceOf(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance of %s: %w", holder, err)
		}
		info.Balances = append(info.Balances, models.AccountBalance{Name: holder, Address: address, Balance: balance})
	}

	if record.ProxyInfo != nil {
		info.Proxy = &models.ProxyTriple{
			Proxy:          record.ProxyInfo.Proxy,
			Admin:          record.ProxyInfo.Admin,
			Implementation: record.ProxyInfo.Implementation,
		}
		if live, err := uc.liveImplementation(ctx, record); err == nil {
			info.Proxy.Implementation = live.Hex()
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Token state loaded",
	})

	return info, nil
}

// liveImplementation asks the proxy admin for the implementation, which may
// differ from the record if the proxy was upgraded elsewhere.
func (uc *InspectToken) liveImplementation(ctx context.Context, record *models.Deployment) (common.Address, error) {
	adminRecord, err := uc.repo.GetDeployment(ctx, domain.TokenProxyAdminDeployment)
	if err != nil {
		return common.Address{}, err
	}
	artifact, err := uc.binder.artifacts.GetArtifact(ctx, adminRecord.ContractName)
	if err != nil {
		return common.Address{}, err
	}
	admin := NewProxyAdminContract(uc.binder.chain, common.HexToAddress(adminRecord.Address), &artifact.ABI, uc.binder.cfg.Confirmations())
	return admin.GetProxyImplementation(ctx, common.HexToAddress(record.ProxyInfo.Proxy))
}

// roleOrder sorts the well-known roles first, in their key order
func roleOrder(role string) int {
	for i, r := range domain.NamedRoles {
		if r == role {
			return i
		}
	}
	return len(domain.NamedRoles)
}
