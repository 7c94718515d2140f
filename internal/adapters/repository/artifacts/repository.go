package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/bindings"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Repository loads compiled artifacts from the artifacts directory. Both a
// flat layout (<dir>/<Name>.json) and the Hardhat layout
// (<dir>/contracts/<File>.sol/<Name>.json) are searched. Contracts of the
// token suite fall back to their embedded ABI when no file exists.
type Repository struct {
	dir   string
	log   *slog.Logger
	mu    sync.Mutex
	cache map[string]*models.Artifact
}

// NewRepository creates a new artifact repository rooted at dir
func NewRepository(dir string, log *slog.Logger) *Repository {
	return &Repository{
		dir:   dir,
		log:   log,
		cache: make(map[string]*models.Artifact),
	}
}

// GetArtifact returns the artifact of the named contract
func (r *Repository) GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if artifact, ok := r.cache[contractName]; ok {
		return artifact, nil
	}

	path, err := r.find(contractName)
	if err != nil {
		return nil, err
	}

	var artifact *models.Artifact
	if path != "" {
		artifact, err = LoadFile(path)
		if err != nil {
			return nil, err
		}
		if artifact.ContractName == "" {
			artifact.ContractName = contractName
		}
	} else {
		if !bindings.Has(contractName) {
			return nil, fmt.Errorf("%w: artifact %s", domain.ErrNotFound, contractName)
		}
		r.log.Debug("using embedded ABI", "contract", contractName)
		parsed, err := bindings.ABI(contractName)
		if err != nil {
			return nil, err
		}
		artifact = &models.Artifact{ContractName: contractName, ABI: *parsed}
	}

	r.cache[contractName] = artifact
	return artifact, nil
}

// find returns the artifact file path, empty when there is none
func (r *Repository) find(contractName string) (string, error) {
	flat := filepath.Join(r.dir, contractName+".json")
	if _, err := os.Stat(flat); err == nil {
		return flat, nil
	}

	var found string
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if !d.IsDir() && d.Name() == contractName+".json" {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search artifacts: %w", err)
	}
	return found, nil
}

// LoadFile parses an artifact file
func LoadFile(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file models.ArtifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	parsed, err := abi.JSON(strings.NewReader(string(file.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI in %s: %w", path, err)
	}
	bytecode, err := file.Bytecode.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode in %s: %w", path, err)
	}

	return &models.Artifact{
		ContractName: file.ContractName,
		ABI:          parsed,
		Bytecode:     bytecode,
	}, nil
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
