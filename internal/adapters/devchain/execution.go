package devchain

import (
	"fmt"
	"maps"
	"math/big"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/bindings"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// contractCode is a native contract implementation. Storage lives in the
// frame, so the same code serves a proxy delegating to it.
type contractCode interface {
	construct(exec *execution, f frame, args []any) error
	run(exec *execution, f frame, input []byte) ([]byte, error)
}

type contract struct {
	name    string
	code    contractCode
	storage *storage
}

// frame is one call context: the executing address, its storage and msg.sender
type frame struct {
	self    common.Address
	sender  common.Address
	storage *storage
}

// storage is the union of the slots used by the token suite. A proxy and
// every implementation it points at share one storage.
type storage struct {
	implementation common.Address
	admin          common.Address

	initialized bool
	owner       common.Address
	name        string
	symbol      string
	decimals    uint8
	totalSupply *big.Int
	mintable    bool
	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int
	blacklist   map[common.Address]bool
}

func newStorage() *storage {
	return &storage{
		totalSupply: new(big.Int),
		balances:    make(map[common.Address]*big.Int),
		allowances:  make(map[common.Address]map[common.Address]*big.Int),
		blacklist:   make(map[common.Address]bool),
	}
}

func (s *storage) clone() *storage {
	out := *s
	out.totalSupply = new(big.Int).Set(s.totalSupply)
	out.balances = make(map[common.Address]*big.Int, len(s.balances))
	for k, v := range s.balances {
		out.balances[k] = new(big.Int).Set(v)
	}
	out.allowances = make(map[common.Address]map[common.Address]*big.Int, len(s.allowances))
	for owner, spenders := range s.allowances {
		inner := make(map[common.Address]*big.Int, len(spenders))
		for k, v := range spenders {
			inner[k] = new(big.Int).Set(v)
		}
		out.allowances[owner] = inner
	}
	out.blacklist = maps.Clone(s.blacklist)
	return &out
}

func (s *storage) balance(account common.Address) *big.Int {
	if b, ok := s.balances[account]; ok {
		return b
	}
	return new(big.Int)
}

func (s *storage) allowance(owner, spender common.Address) *big.Int {
	if a, ok := s.allowances[owner][spender]; ok {
		return a
	}
	return new(big.Int)
}

func (s *storage) setAllowance(owner, spender common.Address, amount *big.Int) {
	if s.allowances[owner] == nil {
		s.allowances[owner] = make(map[common.Address]*big.Int)
	}
	s.allowances[owner][spender] = new(big.Int).Set(amount)
}

// execution is a single transaction or call against the chain state.
// Callers hold the chain lock for its whole lifetime.
type execution struct {
	chain    *Chain
	snapshot map[common.Address]*storage
	logs     []*types.Log
}

// call dispatches input to the contract at to. Calls to accounts without
// code succeed with empty return data.
func (e *execution) call(sender, to common.Address, input []byte) ([]byte, error) {
	target, ok := e.chain.contracts[to]
	if !ok {
		return nil, nil
	}
	return target.code.run(e, frame{self: to, sender: sender, storage: target.storage}, input)
}

// delegate runs the code at implementation against the caller's frame
func (e *execution) delegate(f frame, implementation common.Address, input []byte) ([]byte, error) {
	target, ok := e.chain.contracts[implementation]
	if !ok {
		return nil, nil
	}
	return target.code.run(e, f, input)
}

func (e *execution) isContract(address common.Address) bool {
	_, ok := e.chain.contracts[address]
	return ok
}

// emit appends a log for event, splitting args into topics and data
func (e *execution) emit(address common.Address, contractABI *abi.ABI, name string, args ...any) error {
	event, ok := contractABI.Events[name]
	if !ok {
		return fmt.Errorf("unknown event %s", name)
	}
	topics := []common.Hash{event.ID}
	var data []any
	for i, input := range event.Inputs {
		if !input.Indexed {
			data = append(data, args[i])
			continue
		}
		switch v := args[i].(type) {
		case common.Address:
			topics = append(topics, common.BytesToHash(v.Bytes()))
		case *big.Int:
			topics = append(topics, common.BigToHash(v))
		default:
			return fmt.Errorf("unsupported indexed argument %T", v)
		}
	}
	packed, err := event.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return err
	}
	e.logs = append(e.logs, &types.Log{Address: address, Topics: topics, Data: packed})
	return nil
}

// rollback restores every storage captured by begin and drops the logs
func (e *execution) rollback() {
	for address, saved := range e.snapshot {
		if deployed, ok := e.chain.contracts[address]; ok {
			*deployed.storage = *saved
		}
	}
	e.logs = nil
}

// decode resolves the selector against contractABI. Unknown selectors and
// malformed calldata revert without a reason.
func decode(contractABI *abi.ABI, input []byte) (*abi.Method, []any, error) {
	if len(input) < 4 {
		return nil, nil, domain.Revert("")
	}
	method, err := contractABI.MethodById(input[:4])
	if err != nil {
		return nil, nil, domain.Revert("")
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, nil, domain.Revert("")
	}
	return method, args, nil
}

func codeFor(contractName string) (contractCode, error) {
	switch contractName {
	case bindings.BEP20Token:
		return &tokenCode{abi: bindings.MustABI(bindings.BEP20Token)}, nil
	case bindings.BEP20TokenV2:
		return &tokenCode{abi: bindings.MustABI(bindings.BEP20TokenV2), v2: true}, nil
	case bindings.BEP20UpgradeableProxy:
		return &proxyCode{abi: bindings.MustABI(bindings.BEP20UpgradeableProxy)}, nil
	case bindings.BEP20TokenProxyAdmin:
		return &proxyAdminCode{
			abi:      bindings.MustABI(bindings.BEP20TokenProxyAdmin),
			proxyABI: bindings.MustABI(bindings.BEP20UpgradeableProxy),
		}, nil
	default:
		return nil, fmt.Errorf("devchain has no native implementation of %s", contractName)
	}
}

// constructorArgs round-trips args through the constructor encoding so the
// native constructor sees the same Go types a decoded call would.
func constructorArgs(artifact *models.Artifact, args []any) ([]any, error) {
	inputs := artifact.ABI.Constructor.Inputs
	if len(inputs) == 0 {
		if len(args) > 0 {
			return nil, fmt.Errorf("%s takes no constructor arguments, got %d", artifact.ContractName, len(args))
		}
		return nil, nil
	}
	packed, err := inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
	}
	return inputs.Unpack(packed)
}
