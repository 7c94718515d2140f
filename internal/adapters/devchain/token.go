package devchain

import (
	"math/big"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// tokenCode is the upgradeable BEP20 token. The v2 revision adds the sender
// blacklist.
type tokenCode struct {
	abi *abi.ABI
	v2  bool
}

func (t *tokenCode) construct(exec *execution, f frame, args []any) error {
	return nil
}

func (t *tokenCode) run(exec *execution, f frame, input []byte) ([]byte, error) {
	method, args, err := decode(t.abi, input)
	if err != nil {
		return nil, err
	}
	st := f.storage

	switch method.Name {
	case "name":
		return method.Outputs.Pack(st.name)
	case "symbol":
		return method.Outputs.Pack(st.symbol)
	case "decimals":
		return method.Outputs.Pack(st.decimals)
	case "totalSupply":
		return method.Outputs.Pack(new(big.Int).Set(st.totalSupply))
	case "balanceOf":
		return method.Outputs.Pack(new(big.Int).Set(st.balance(args[0].(common.Address))))
	case "allowance":
		return method.Outputs.Pack(new(big.Int).Set(st.allowance(args[0].(common.Address), args[1].(common.Address))))
	case "owner", "getOwner":
		return method.Outputs.Pack(st.owner)
	case "mintable":
		return method.Outputs.Pack(st.mintable)
	case "isBlackListed":
		return method.Outputs.Pack(st.blacklist[args[0].(common.Address)])

	case "initialize":
		if st.initialized {
			return nil, domain.Revert(domain.ReasonAlreadyInitialized)
		}
		st.initialized = true
		st.name = args[0].(string)
		st.symbol = args[1].(string)
		st.decimals = args[2].(uint8)
		st.mintable = args[4].(bool)
		owner := args[5].(common.Address)
		if err := t.setOwner(exec, f, owner); err != nil {
			return nil, err
		}
		return nil, t.mint(exec, f, owner, args[3].(*big.Int))

	case "transfer":
		if err := t.checkBlacklist(st, f.sender); err != nil {
			return nil, err
		}
		if err := t.transfer(exec, f, f.sender, args[0].(common.Address), args[1].(*big.Int)); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case "transferFrom":
		sender, recipient, amount := args[0].(common.Address), args[1].(common.Address), args[2].(*big.Int)
		if err := t.checkBlacklist(st, sender); err != nil {
			return nil, err
		}
		if err := t.transfer(exec, f, sender, recipient, amount); err != nil {
			return nil, err
		}
		remaining := new(big.Int).Sub(st.allowance(sender, f.sender), amount)
		if remaining.Sign() < 0 {
			return nil, domain.Revert(domain.ReasonExceedsAllowance)
		}
		if err := t.approve(exec, f, sender, f.sender, remaining); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case "approve":
		if err := t.approve(exec, f, f.sender, args[0].(common.Address), args[1].(*big.Int)); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case "increaseAllowance":
		spender := args[0].(common.Address)
		next := new(big.Int).Add(st.allowance(f.sender, spender), args[1].(*big.Int))
		if err := t.approve(exec, f, f.sender, spender, next); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case "decreaseAllowance":
		spender := args[0].(common.Address)
		next := new(big.Int).Sub(st.allowance(f.sender, spender), args[1].(*big.Int))
		if next.Sign() < 0 {
			return nil, domain.Revert(domain.ReasonAllowanceBelowZero)
		}
		if err := t.approve(exec, f, f.sender, spender, next); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)

	case "mint":
		if err := onlyOwner(st, f.sender); err != nil {
			return nil, err
		}
		if !st.mintable {
			return nil, domain.Revert(domain.ReasonNotMintable)
		}
		if err := t.mint(exec, f, f.sender, args[0].(*big.Int)); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)
	case "burn":
		if err := t.burn(exec, f, f.sender, args[0].(*big.Int)); err != nil {
			return nil, err
		}
		return method.Outputs.Pack(true)

	case "renounceOwnership":
		if err := onlyOwner(st, f.sender); err != nil {
			return nil, err
		}
		return nil, t.setOwner(exec, f, common.Address{})
	case "transferOwnership":
		if err := onlyOwner(st, f.sender); err != nil {
			return nil, err
		}
		newOwner := args[0].(common.Address)
		if newOwner == (common.Address{}) {
			return nil, domain.Revert(domain.ReasonNewOwnerZero)
		}
		return nil, t.setOwner(exec, f, newOwner)

	case "blackList", "removeFromBlackList":
		if err := onlyOwner(st, f.sender); err != nil {
			return nil, err
		}
		listed := method.Name == "blackList"
		event := "BlackListed"
		if !listed {
			event = "RemovedFromBlackList"
		}
		for _, account := range args[0].([]common.Address) {
			if listed {
				st.blacklist[account] = true
			} else {
				delete(st.blacklist, account)
			}
			if err := exec.emit(f.self, t.abi, event, account); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	return nil, domain.Revert("")
}

func (t *tokenCode) checkBlacklist(st *storage, sender common.Address) error {
	if t.v2 && st.blacklist[sender] {
		return domain.Revert(domain.ReasonBlacklisted)
	}
	return nil
}

func (t *tokenCode) transfer(exec *execution, f frame, from, to common.Address, amount *big.Int) error {
	st := f.storage
	if from == (common.Address{}) {
		return domain.Revert(domain.ReasonTransferFromZero)
	}
	if to == (common.Address{}) {
		return domain.Revert(domain.ReasonTransferToZero)
	}
	remaining := new(big.Int).Sub(st.balance(from), amount)
	if remaining.Sign() < 0 {
		return domain.Revert(domain.ReasonExceedsBalance)
	}
	st.balances[from] = remaining
	st.balances[to] = new(big.Int).Add(st.balance(to), amount)
	return exec.emit(f.self, t.abi, "Transfer", from, to, new(big.Int).Set(amount))
}

func (t *tokenCode) approve(exec *execution, f frame, owner, spender common.Address, amount *big.Int) error {
	if owner == (common.Address{}) {
		return domain.Revert(domain.ReasonApproveFromZero)
	}
	if spender == (common.Address{}) {
		return domain.Revert(domain.ReasonApproveToZero)
	}
	f.storage.setAllowance(owner, spender, amount)
	return exec.emit(f.self, t.abi, "Approval", owner, spender, new(big.Int).Set(amount))
}

func (t *tokenCode) mint(exec *execution, f frame, to common.Address, amount *big.Int) error {
	st := f.storage
	if to == (common.Address{}) {
		return domain.Revert(domain.ReasonMintToZero)
	}
	st.totalSupply = new(big.Int).Add(st.totalSupply, amount)
	st.balances[to] = new(big.Int).Add(st.balance(to), amount)
	return exec.emit(f.self, t.abi, "Transfer", common.Address{}, to, new(big.Int).Set(amount))
}

func (t *tokenCode) burn(exec *execution, f frame, from common.Address, amount *big.Int) error {
	st := f.storage
	remaining := new(big.Int).Sub(st.balance(from), amount)
	if remaining.Sign() < 0 {
		return domain.Revert(domain.ReasonBurnExceedsBalance)
	}
	st.balances[from] = remaining
	st.totalSupply = new(big.Int).Sub(st.totalSupply, amount)
	return exec.emit(f.self, t.abi, "Transfer", from, common.Address{}, new(big.Int).Set(amount))
}

func (t *tokenCode) setOwner(exec *execution, f frame, owner common.Address) error {
	previous := f.storage.owner
	f.storage.owner = owner
	return exec.emit(f.self, t.abi, "OwnershipTransferred", previous, owner)
}

func onlyOwner(st *storage, sender common.Address) error {
	if st.owner != sender {
		return domain.Revert(domain.ReasonNotOwner)
	}
	return nil
}
