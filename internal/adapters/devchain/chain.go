// Package devchain is an in-process development network. It mines one block
// per transaction and executes native implementations of the token suite
// contracts, so the hardhat network needs no external node or compiled
// bytecode.
package devchain

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	intrinsicGas uint64 = 21000
	dataGas      uint64 = 16
	createGas    uint64 = 32000
)

// Chain is an in-process ledger implementing usecase.Chain
type Chain struct {
	mu          sync.Mutex
	chainID     uint64
	blockNumber uint64
	nonces      map[common.Address]uint64
	contracts   map[common.Address]*contract
	receipts    map[common.Hash]*models.Receipt
	log         *slog.Logger
}

var _ usecase.Chain = (*Chain)(nil)

// New creates an empty development chain at block zero
func New(log *slog.Logger) *Chain {
	return &Chain{
		chainID:   domain.DevChainID,
		nonces:    make(map[common.Address]uint64),
		contracts: make(map[common.Address]*contract),
		receipts:  make(map[common.Hash]*models.Receipt),
		log:       log,
	}
}

func (c *Chain) ChainID(ctx context.Context) (uint64, error) {
	return c.chainID, nil
}

// BlockNumber returns the current head
func (c *Chain) BlockNumber() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blockNumber
}

// Nonce returns the next nonce of account
func (c *Chain) Nonce(account common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[account]
}

// ContractName returns the contract deployed at address, if any
func (c *Chain) ContractName(address common.Address) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	deployed, ok := c.contracts[address]
	if !ok {
		return "", false
	}
	return deployed.name, true
}

// Deploy creates the contract at the address derived from the sender's nonce.
// The constructor runs in the same transaction; a revert leaves no trace.
func (c *Chain) Deploy(ctx context.Context, from *models.Account, artifact *models.Artifact, args ...any) (*models.PendingTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !from.CanSign() {
		return nil, fmt.Errorf("account %s cannot sign", accountLabel(from))
	}

	code, err := codeFor(artifact.ContractName)
	if err != nil {
		return nil, err
	}
	ctorArgs, err := constructorArgs(artifact, args)
	if err != nil {
		return nil, err
	}
	input, err := artifact.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack constructor arguments: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	nonce := c.nonces[from.Address]
	address := crypto.CreateAddress(from.Address, nonce)
	created := &contract{name: artifact.ContractName, code: code, storage: newStorage()}

	exec := c.begin()
	c.contracts[address] = created
	if err := code.construct(exec, frame{self: address, sender: from.Address, storage: created.storage}, ctorArgs); err != nil {
		delete(c.contracts, address)
		exec.rollback()
		return nil, err
	}

	hash := c.commit(exec, from.Address, nil, input)
	receipt := c.receipts[hash]
	receipt.ContractAddress = address
	receipt.GasUsed += createGas

	c.log.Debug("devchain deploy", "contract", artifact.ContractName, "address", address.Hex(), "block", receipt.BlockNumber)
	return &models.PendingTx{Hash: hash, From: from.Address, ContractAddress: address}, nil
}

// Transact executes a state-changing call signed by from
func (c *Chain) Transact(ctx context.Context, from *models.Account, to common.Address, data []byte) (*models.PendingTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !from.CanSign() {
		return nil, fmt.Errorf("account %s cannot sign", accountLabel(from))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	exec := c.begin()
	if _, err := exec.call(from.Address, to, data); err != nil {
		exec.rollback()
		return nil, err
	}
	hash := c.commit(exec, from.Address, &to, data)

	c.log.Debug("devchain transact", "to", to.Hex(), "tx", hash.Hex())
	return &models.PendingTx{Hash: hash, From: from.Address, To: &to}, nil
}

// Call executes a read against the current state. Writes are discarded.
func (c *Chain) Call(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	exec := c.begin()
	defer exec.rollback()
	return exec.call(from, to, data)
}

// WaitForConfirmations returns the receipt once it is confirmations blocks
// deep, mining empty blocks to get there.
func (c *Chain) WaitForConfirmations(ctx context.Context, tx *models.PendingTx, confirmations uint64) (*models.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	receipt, ok := c.receipts[tx.Hash]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", tx.Hash.Hex(), domain.ErrNotFound)
	}
	if confirmations == 0 {
		confirmations = 1
	}
	if target := receipt.BlockNumber + confirmations - 1; c.blockNumber < target {
		c.blockNumber = target
	}

	out := *receipt
	out.Logs = append([]*types.Log(nil), receipt.Logs...)
	out.Confirmations = c.blockNumber - receipt.BlockNumber + 1
	return &out, nil
}

// begin snapshots every contract storage. Callers hold c.mu.
func (c *Chain) begin() *execution {
	snapshot := make(map[common.Address]*storage, len(c.contracts))
	for address, deployed := range c.contracts {
		snapshot[address] = deployed.storage.clone()
	}
	return &execution{chain: c, snapshot: snapshot}
}

// commit mines the transaction into a new block. Callers hold c.mu.
func (c *Chain) commit(exec *execution, from common.Address, to *common.Address, data []byte) common.Hash {
	nonce := c.nonces[from]
	c.nonces[from] = nonce + 1
	c.blockNumber++

	hash := txHash(c.chainID, from, nonce, to, data)
	for i, log := range exec.logs {
		log.BlockNumber = c.blockNumber
		log.TxHash = hash
		log.Index = uint(i)
	}
	c.receipts[hash] = &models.Receipt{
		TxHash:      hash,
		BlockNumber: c.blockNumber,
		Status:      types.ReceiptStatusSuccessful,
		GasUsed:     intrinsicGas + uint64(len(data))*dataGas,
		Logs:        exec.logs,
	}
	return hash
}

func txHash(chainID uint64, from common.Address, nonce uint64, to *common.Address, data []byte) common.Hash {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], chainID)
	binary.BigEndian.PutUint64(buf[8:], nonce)
	var target []byte
	if to != nil {
		target = to.Bytes()
	}
	return crypto.Keccak256Hash(buf[:], from.Bytes(), target, data)
}

func accountLabel(a *models.Account) string {
	if a == nil {
		return "<nil>"
	}
	if a.Name != "" {
		return a.Name
	}
	return a.Address.Hex()
}
