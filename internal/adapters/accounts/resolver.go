package accounts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/config"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DevelopmentKeys are the well-known keys funded by local development nodes,
// in named role order.
var DevelopmentKeys = []string{
	"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
}

// Resolver maps account roles to signers. Roles come from blue.toml
// [accounts], where a value is either a private key or a bare address. On
// development networks the named roles fall back to the development keys.
type Resolver struct {
	configured  map[string]string
	development bool

	once     sync.Once
	accounts models.NamedAccounts
	err      error
}

// NewResolver creates a resolver from the runtime configuration
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	r := &Resolver{configured: map[string]string{}}
	if cfg.BlueConfig != nil {
		r.configured = cfg.BlueConfig.Accounts
	}
	if cfg.Network != nil {
		r.development = cfg.Network.IsDevelopment()
	}
	return r
}

// Account returns the account for role
func (r *Resolver) Account(ctx context.Context, role string) (*models.Account, error) {
	accounts, err := r.NamedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	account, ok := accounts[role]
	if !ok {
		return nil, fmt.Errorf("%w: account %q is not configured in [accounts]", domain.ErrNotFound, role)
	}
	return account, nil
}

// NamedAccounts returns every resolvable account
func (r *Resolver) NamedAccounts(ctx context.Context) (models.NamedAccounts, error) {
	r.once.Do(func() {
		r.accounts, r.err = r.resolve()
	})
	return r.accounts, r.err
}

func (r *Resolver) resolve() (models.NamedAccounts, error) {
	accounts := make(models.NamedAccounts)

	if r.development {
		for i, role := range domain.NamedRoles {
			account, err := FromPrivateKey(role, DevelopmentKeys[i])
			if err != nil {
				return nil, err
			}
			accounts[role] = account
		}
	}

	for role, value := range r.configured {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		account, err := parseAccount(role, value)
		if err != nil {
			return nil, err
		}
		accounts[role] = account
	}
	return accounts, nil
}

// parseAccount accepts a 20-byte address (read-only) or a 32-byte private key
func parseAccount(role, value string) (*models.Account, error) {
	hex := strings.TrimPrefix(value, "0x")
	switch len(hex) {
	case 40:
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("%w for account %s", domain.ErrInvalidAddress, role)
		}
		return &models.Account{Name: role, Address: common.HexToAddress(value)}, nil
	case 64:
		return FromPrivateKey(role, hex)
	default:
		return nil, fmt.Errorf("account %s: expected a private key or an address", role)
	}
}

// FromPrivateKey builds a signing account from a hex private key
func FromPrivateKey(role, hexKey string) (*models.Account, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key for account %s: %w", role, err)
	}
	return &models.Account{
		Name:    role,
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Key:     key,
	}, nil
}

var _ usecase.AccountResolver = (*Resolver)(nil)
