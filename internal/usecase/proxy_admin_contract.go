package usecase

import (
	"context"

	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ProxyAdminContract is a typed view of the proxy admin
type ProxyAdminContract struct {
	boundContract
}

func NewProxyAdminContract(chain Chain, address common.Address, adminABI *abi.ABI, confirmations uint64) *ProxyAdminContract {
	return &ProxyAdminContract{boundContract{
		chain:         chain,
		abi:           adminABI,
		address:       address,
		confirmations: confirmations,
	}}
}

func (p *ProxyAdminContract) GetProxyImplementation(ctx context.Context, proxy common.Address) (common.Address, error) {
	return p.callAddress(ctx, "getProxyImplementation", proxy)
}

func (p *ProxyAdminContract) GetProxyAdmin(ctx context.Context, proxy common.Address) (common.Address, error) {
	return p.callAddress(ctx, "getProxyAdmin", proxy)
}

func (p *ProxyAdminContract) Owner(ctx context.Context) (common.Address, error) {
	return p.callAddress(ctx, "owner")
}

// Upgrade repoints proxy at implementation. Only the admin owner may call it.
func (p *ProxyAdminContract) Upgrade(ctx context.Context, from *models.Account, proxy, implementation common.Address) (*models.Receipt, error) {
	return p.transact(ctx, from, "upgrade", proxy, implementation)
}

func (p *ProxyAdminContract) UpgradeAndCall(ctx context.Context, from *models.Account, proxy, implementation common.Address, data []byte) (*models.Receipt, error) {
	return p.transact(ctx, from, "upgradeAndCall", proxy, implementation, data)
}

func (p *ProxyAdminContract) ChangeProxyAdmin(ctx context.Context, from *models.Account, proxy, newAdmin common.Address) (*models.Receipt, error) {
	return p.transact(ctx, from, "changeProxyAdmin", proxy, newAdmin)
}
