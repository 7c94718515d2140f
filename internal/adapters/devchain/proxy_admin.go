package devchain

import (
	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// proxyAdminCode is the Ownable contract that administers token proxies.
// It reaches the proxy's admin functions through nested calls sent as itself.
type proxyAdminCode struct {
	abi      *abi.ABI
	proxyABI *abi.ABI
}

func (a *proxyAdminCode) construct(exec *execution, f frame, args []any) error {
	return a.setOwner(exec, f, args[0].(common.Address))
}

func (a *proxyAdminCode) run(exec *execution, f frame, input []byte) ([]byte, error) {
	method, args, err := decode(a.abi, input)
	if err != nil {
		return nil, err
	}
	st := f.storage

	switch method.Name {
	case "owner":
		return method.Outputs.Pack(st.owner)
	case "getProxyImplementation":
		return a.readProxy(exec, f, method, args[0].(common.Address), "implementation")
	case "getProxyAdmin":
		return a.readProxy(exec, f, method, args[0].(common.Address), "admin")
	}

	if err := onlyOwner(st, f.sender); err != nil {
		return nil, err
	}
	switch method.Name {
	case "changeProxyAdmin":
		return nil, a.callProxy(exec, f, args[0].(common.Address), "changeAdmin", args[1])
	case "upgrade":
		return nil, a.callProxy(exec, f, args[0].(common.Address), "upgradeTo", args[1])
	case "upgradeAndCall":
		return nil, a.callProxy(exec, f, args[0].(common.Address), "upgradeToAndCall", args[1], args[2])
	case "renounceOwnership":
		return nil, a.setOwner(exec, f, common.Address{})
	case "transferOwnership":
		newOwner := args[0].(common.Address)
		if newOwner == (common.Address{}) {
			return nil, domain.Revert(domain.ReasonNewOwnerZero)
		}
		return nil, a.setOwner(exec, f, newOwner)
	}
	return nil, domain.Revert("")
}

// readProxy asks the proxy for one of its admin views. A proxy this contract
// does not administer delegates the call and the read reverts.
func (a *proxyAdminCode) readProxy(exec *execution, f frame, method *abi.Method, proxy common.Address, view string) ([]byte, error) {
	data, err := a.proxyABI.Pack(view)
	if err != nil {
		return nil, err
	}
	out, err := exec.call(f.self, proxy, data)
	if err != nil {
		return nil, domain.Revert("")
	}
	values, err := a.proxyABI.Unpack(view, out)
	if err != nil || len(values) == 0 {
		return nil, domain.Revert("")
	}
	return method.Outputs.Pack(values[0].(common.Address))
}

func (a *proxyAdminCode) callProxy(exec *execution, f frame, proxy common.Address, method string, args ...any) error {
	data, err := a.proxyABI.Pack(method, args...)
	if err != nil {
		return err
	}
	_, err = exec.call(f.self, proxy, data)
	return err
}

func (a *proxyAdminCode) setOwner(exec *execution, f frame, owner common.Address) error {
	previous := f.storage.owner
	f.storage.owner = owner
	return exec.emit(f.self, a.abi, "OwnershipTransferred", previous, owner)
}
