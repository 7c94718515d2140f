package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// DefaultPollInterval is how often receipts and the chain head are polled
const DefaultPollInterval = 2 * time.Second

// Client implements usecase.Chain against a JSON-RPC node. The connection is
// opened on first use, so commands that never touch the chain work offline.
type Client struct {
	network      *domain.Network
	pollInterval time.Duration
	log          *slog.Logger

	mu      sync.Mutex
	client  *ethclient.Client
	chainID *big.Int
}

var _ usecase.Chain = (*Client)(nil)

// NewClient creates a client for network
func NewClient(network *domain.Network, log *slog.Logger) *Client {
	return &Client{
		network:      network,
		pollInterval: DefaultPollInterval,
		log:          log,
	}
}

// connect dials the node and checks that it serves the configured chain
func (c *Client) connect(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	if c.network.RPCURL == "" {
		return nil, fmt.Errorf("network %s has no rpc_url configured", c.network.Name)
	}
	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
		client.Close()
		return nil, fmt.Errorf("%w: %s expects chain ID %d, RPC reports %d",
			domain.ErrNetworkMismatch, c.network.Name, c.network.ChainID, chainID.Uint64())
	}

	c.log.Debug("connected to RPC", "network", c.network.Name, "chainId", chainID.Uint64())
	c.client = client
	c.chainID = chainID
	return client, nil
}

// Close releases the RPC connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	if _, err := c.connect(ctx); err != nil {
		return 0, err
	}
	return c.chainID.Uint64(), nil
}

func (c *Client) transactor(ctx context.Context, from *models.Account) (*bind.TransactOpts, error) {
	if !from.CanSign() {
		return nil, fmt.Errorf("account %s cannot sign", from.Name)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(from.Key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// Deploy sends the creation transaction for artifact. Gas estimation runs
// the constructor, so a reverting constructor is reported before sending.
func (c *Client) Deploy(ctx context.Context, from *models.Account, artifact *models.Artifact, args ...any) (*models.PendingTx, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	if !artifact.HasBytecode() {
		return nil, fmt.Errorf("artifact %s has no bytecode; compile the contracts before deploying to %s",
			artifact.ContractName, c.network.Name)
	}
	opts, err := c.transactor(ctx, from)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, client, args...)
	if err != nil {
		return nil, decodeRevert(err)
	}
	c.log.Debug("deployment sent", "contract", artifact.ContractName, "address", address.Hex(), "tx", tx.Hash().Hex())
	return &models.PendingTx{Hash: tx.Hash(), From: from.Address, ContractAddress: address}, nil
}

// Transact simulates the call first so reverts surface with their reason,
// then signs and sends it.
func (c *Client) Transact(ctx context.Context, from *models.Account, to common.Address, data []byte) (*models.PendingTx, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := c.transactor(ctx, from)
	if err != nil {
		return nil, err
	}

	if _, err := client.CallContract(ctx, ethereum.CallMsg{From: from.Address, To: &to, Data: data}, nil); err != nil {
		return nil, decodeRevert(err)
	}

	contract := bind.NewBoundContract(to, abi.ABI{}, client, client, client)
	tx, err := contract.RawTransact(opts, data)
	if err != nil {
		return nil, decodeRevert(err)
	}
	c.log.Debug("transaction sent", "to", to.Hex(), "tx", tx.Hash().Hex())
	return &models.PendingTx{Hash: tx.Hash(), From: from.Address, To: &to}, nil
}

func (c *Client) Call(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.CallContract(ctx, ethereum.CallMsg{From: from, To: &to, Data: data}, nil)
	if err != nil {
		return nil, decodeRevert(err)
	}
	return out, nil
}

// WaitForConfirmations waits for the transaction to be mined, then polls the
// head until the receipt is confirmations blocks deep.
func (c *Client) WaitForConfirmations(ctx context.Context, tx *models.PendingTx, confirmations uint64) (*models.Receipt, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	if confirmations == 0 {
		confirmations = 1
	}

	sent, _, err := client.TransactionByHash(ctx, tx.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", tx.Hash.Hex(), err)
	}
	receipt, err := bind.WaitMined(ctx, client, sent)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash.Hex(), err)
	}
	mined := receipt.BlockNumber.Uint64()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		head, err := client.BlockNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get block number: %w", err)
		}
		if head+1 >= mined+confirmations {
			return toReceipt(receipt, head), nil
		}
		c.log.Debug("waiting for confirmations", "tx", tx.Hash.Hex(), "have", head+1-mined, "want", confirmations)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func toReceipt(r *types.Receipt, head uint64) *models.Receipt {
	mined := r.BlockNumber.Uint64()
	return &models.Receipt{
		TxHash:          r.TxHash,
		BlockNumber:     mined,
		Status:          r.Status,
		GasUsed:         r.GasUsed,
		ContractAddress: r.ContractAddress,
		Logs:            r.Logs,
		Confirmations:   head - mined + 1,
	}
}

// decodeRevert turns a node's execution error into a domain revert. Nodes
// either attach the ABI-encoded Error(string) as error data or only put the
// reason in the message.
func decodeRevert(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if encoded, ok := dataErr.ErrorData().(string); ok {
			if data, decodeErr := hexutil.Decode(encoded); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return domain.Revert(reason)
				}
				return domain.Revert("")
			}
		}
	}

	msg := err.Error()
	for _, marker := range revertMarkers {
		idx := strings.Index(msg, marker)
		if idx < 0 {
			continue
		}
		reason := strings.TrimSpace(strings.TrimPrefix(msg[idx+len(marker):], ":"))
		return domain.Revert(strings.Trim(reason, "'\""))
	}
	return err
}

var revertMarkers = []string{
	"reverted with reason string",
	"execution reverted",
}
