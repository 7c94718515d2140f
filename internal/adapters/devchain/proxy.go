package devchain

import (
	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// proxyCode is a transparent upgradeable proxy. The admin reaches only the
// admin functions; every other caller is delegated to the implementation.
type proxyCode struct {
	abi *abi.ABI
}

func (p *proxyCode) construct(exec *execution, f frame, args []any) error {
	logic, admin, data := args[0].(common.Address), args[1].(common.Address), args[2].([]byte)
	if err := p.upgradeTo(exec, f, logic); err != nil {
		return err
	}
	if err := p.changeAdmin(exec, f, admin); err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := exec.delegate(f, logic, data); err != nil {
			return err
		}
	}
	return nil
}

func (p *proxyCode) run(exec *execution, f frame, input []byte) ([]byte, error) {
	st := f.storage
	if f.sender != st.admin {
		return exec.delegate(f, st.implementation, input)
	}

	method, args, err := decode(p.abi, input)
	if err != nil {
		return nil, domain.Revert(domain.ReasonAdminFallback)
	}
	switch method.Name {
	case "admin":
		return method.Outputs.Pack(st.admin)
	case "implementation":
		return method.Outputs.Pack(st.implementation)
	case "changeAdmin":
		return nil, p.changeAdmin(exec, f, args[0].(common.Address))
	case "upgradeTo":
		return nil, p.upgradeTo(exec, f, args[0].(common.Address))
	case "upgradeToAndCall":
		implementation := args[0].(common.Address)
		if err := p.upgradeTo(exec, f, implementation); err != nil {
			return nil, err
		}
		_, err := exec.delegate(f, implementation, args[1].([]byte))
		return nil, err
	}
	return nil, domain.Revert(domain.ReasonAdminFallback)
}

func (p *proxyCode) upgradeTo(exec *execution, f frame, implementation common.Address) error {
	if !exec.isContract(implementation) {
		return domain.Revert(domain.ReasonNotContract)
	}
	f.storage.implementation = implementation
	return exec.emit(f.self, p.abi, "Upgraded", implementation)
}

func (p *proxyCode) changeAdmin(exec *execution, f frame, admin common.Address) error {
	if admin == (common.Address{}) {
		return domain.Revert(domain.ReasonNewAdminZero)
	}
	previous := f.storage.admin
	f.storage.admin = admin
	return exec.emit(f.self, p.abi, "AdminChanged", previous, admin)
}
