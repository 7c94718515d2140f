package deployments

import (
	"context"
	"fmt"
	"sync"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
)

// MemoryRepository keeps records for the lifetime of the process. It backs
// the ephemeral in-process network, whose state vanishes on exit anyway.
type MemoryRepository struct {
	network     string
	mu          sync.RWMutex
	deployments map[string]*models.Deployment
}

func NewMemoryRepository(network string) *MemoryRepository {
	return &MemoryRepository{
		network:     network,
		deployments: make(map[string]*models.Deployment),
	}
}

func (m *MemoryRepository) GetDeployment(ctx context.Context, name string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dep, exists := m.deployments[name]
	if !exists {
		return nil, domain.DeploymentNotFoundError{Network: m.network, Name: name}
	}
	return cloneDeployment(dep), nil
}

func (m *MemoryRepository) ListDeployments(ctx context.Context) ([]*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return sortedClones(m.deployments), nil
}

func (m *MemoryRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.Name == "" {
		return fmt.Errorf("deployment has no name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deployments[deployment.Name] = cloneDeployment(deployment)
	return nil
}

func (m *MemoryRepository) DeleteDeployment(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.deployments[name]; !exists {
		return domain.DeploymentNotFoundError{Network: m.network, Name: name}
	}
	delete(m.deployments, name)
	return nil
}

var _ usecase.DeploymentRepository = (*MemoryRepository)(nil)
