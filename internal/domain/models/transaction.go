package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PendingTx is a submitted transaction that has not yet reached the
// requested confirmation depth.
type PendingTx struct {
	Hash common.Hash
	From common.Address
	// To is nil for contract creations
	To *common.Address
	// ContractAddress is set for contract creations
	ContractAddress common.Address
}

// IsCreation reports whether the transaction creates a contract
func (p *PendingTx) IsCreation() bool {
	return p.To == nil
}

// Receipt is the outcome of a mined transaction
type Receipt struct {
	TxHash          common.Hash
	BlockNumber     uint64
	Status          uint64
	GasUsed         uint64
	ContractAddress common.Address
	Logs            []*types.Log
	Confirmations   uint64
}

// Succeeded reports whether the transaction executed without reverting
func (r *Receipt) Succeeded() bool {
	return r.Status == types.ReceiptStatusSuccessful
}
