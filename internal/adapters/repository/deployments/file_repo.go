package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
)

const (
	// ChainIDFile records the chain id the network directory belongs to
	ChainIDFile = ".chainId"
	recordExt   = ".json"
)

// FileRepository stores the deployments of one network as json files,
// one per record, under <root>/<network>/
type FileRepository struct {
	dir         string
	network     string
	chainID     uint64
	mu          sync.RWMutex
	deployments map[string]*models.Deployment
}

// NewFileRepository loads the records of network from rootDir
func NewFileRepository(rootDir, network string, chainID uint64) (*FileRepository, error) {
	m := &FileRepository{
		dir:         filepath.Join(rootDir, network),
		network:     network,
		chainID:     chainID,
		deployments: make(map[string]*models.Deployment),
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load deployments: %w", err)
	}
	return m, nil
}

// load reads every record file of the network directory
func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data, err := os.ReadFile(filepath.Join(m.dir, ChainIDFile)); err == nil {
		recorded, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ChainIDFile, err)
		}
		if m.chainID != 0 && recorded != m.chainID {
			return fmt.Errorf("%w: %s holds deployments for chain %d, network is chain %d",
				domain.ErrNetworkMismatch, m.dir, recorded, m.chainID)
		}
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != recordExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			return err
		}
		var dep models.Deployment
		if err := json.Unmarshal(data, &dep); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		if dep.Name == "" {
			dep.Name = strings.TrimSuffix(entry.Name(), recordExt)
		}
		m.deployments[dep.Name] = &dep
	}
	return nil
}

// saveFile writes data atomically through a temp file
func (m *FileRepository) saveFile(filename string, data []byte) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dir, err)
	}

	path := filepath.Join(m.dir, filename)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// GetDeployment retrieves a deployment by name
func (m *FileRepository) GetDeployment(ctx context.Context, name string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dep, exists := m.deployments[name]
	if !exists {
		return nil, domain.DeploymentNotFoundError{Network: m.network, Name: name}
	}
	return cloneDeployment(dep), nil
}

// ListDeployments returns every record sorted by name
func (m *FileRepository) ListDeployments(ctx context.Context) ([]*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return sortedClones(m.deployments), nil
}

// SaveDeployment writes the record and the network chain id
func (m *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.Name == "" {
		return fmt.Errorf("deployment has no name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return err
	}
	if err := m.saveFile(deployment.Name+recordExt, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", deployment.Name, err)
	}

	chainID := deployment.ChainID
	if chainID == 0 {
		chainID = m.chainID
	}
	if chainID != 0 {
		if err := m.saveFile(ChainIDFile, []byte(strconv.FormatUint(chainID, 10))); err != nil {
			return fmt.Errorf("failed to save %s: %w", ChainIDFile, err)
		}
	}

	m.deployments[deployment.Name] = cloneDeployment(deployment)
	return nil
}

// DeleteDeployment removes the record
func (m *FileRepository) DeleteDeployment(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.deployments[name]; !exists {
		return domain.DeploymentNotFoundError{Network: m.network, Name: name}
	}
	if err := os.Remove(filepath.Join(m.dir, name+recordExt)); err != nil && !os.IsNotExist(err) {
		return err
	}
	delete(m.deployments, name)
	return nil
}

// Dir returns the directory holding the records
func (m *FileRepository) Dir() string {
	return m.dir
}

func sortedClones(deployments map[string]*models.Deployment) []*models.Deployment {
	result := make([]*models.Deployment, 0, len(deployments))
	for _, dep := range deployments {
		result = append(result, cloneDeployment(dep))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// cloneDeployment deep copies a record so callers cannot mutate stored state
func cloneDeployment(dep *models.Deployment) *models.Deployment {
	clone := *dep
	clone.Args = append([]string(nil), dep.Args...)
	clone.Tags = append([]string(nil), dep.Tags...)
	if dep.ProxyInfo != nil {
		info := *dep.ProxyInfo
		info.History = append([]models.ProxyUpgrade(nil), dep.ProxyInfo.History...)
		clone.ProxyInfo = &info
	}
	if dep.Verification.VerifiedAt != nil {
		t := *dep.Verification.VerifiedAt
		clone.Verification.VerifiedAt = &t
	}
	return &clone
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentRepository = (*FileRepository)(nil)
