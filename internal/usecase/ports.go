package usecase

import (
	"context"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// Chain submits transactions to and reads state from a ledger
type Chain interface {
	ChainID(ctx context.Context) (uint64, error)
	// Deploy creates a contract from the artifact, ABI-encoding args for its constructor
	Deploy(ctx context.Context, from *models.Account, artifact *models.Artifact, args ...any) (*models.PendingTx, error)
	// Transact sends ABI-encoded calldata to a contract
	Transact(ctx context.Context, from *models.Account, to common.Address, data []byte) (*models.PendingTx, error)
	// Call executes calldata against the latest state without creating a transaction
	Call(ctx context.Context, from common.Address, to common.Address, data []byte) ([]byte, error)
	// WaitForConfirmations blocks until the transaction is buried under the given depth
	WaitForConfirmations(ctx context.Context, tx *models.PendingTx, confirmations uint64) (*models.Receipt, error)
}

// DeploymentRepository handles persistence of the deployment records of the
// selected network
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, name string) (*models.Deployment, error)
	ListDeployments(ctx context.Context) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	DeleteDeployment(ctx context.Context, name string) error
}

// ArtifactRepository provides compiled contract artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error)
}

// AccountResolver resolves named account roles to signers
type AccountResolver interface {
	Account(ctx context.Context, role string) (*models.Account, error)
	NamedAccounts(ctx context.Context) (models.NamedAccounts, error)
}

// ContractVerifier handles source verification on block explorers
type ContractVerifier interface {
	Verify(ctx context.Context, deployment *models.Deployment, network *domain.Network) (*models.VerificationInfo, error)
}

// AsyncVerifier accepts verification requests without waiting for them
type AsyncVerifier interface {
	Submit(deployment *models.Deployment, network *domain.Network)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// DeploymentSelector handles interactive selection of deployments
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error)
}

// Confirmer asks the operator to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// AutoConfirm approves every prompt
type AutoConfirm struct{}

func (AutoConfirm) Confirm(context.Context, string) (bool, error) { return true, nil }
