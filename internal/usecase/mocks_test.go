package usecase

import (
	"context"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetDeployment(ctx context.Context, name string) (*models.Deployment, error) {
	args := m.Called(ctx, name)
	d, _ := args.Get(0).(*models.Deployment)
	return d, args.Error(1)
}

func (m *mockRepo) ListDeployments(ctx context.Context) ([]*models.Deployment, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]*models.Deployment)
	return d, args.Error(1)
}

func (m *mockRepo) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	return m.Called(ctx, deployment).Error(0)
}

func (m *mockRepo) DeleteDeployment(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, deployment *models.Deployment, network *domain.Network) (*models.VerificationInfo, error) {
	args := m.Called(ctx, deployment, network)
	info, _ := args.Get(0).(*models.VerificationInfo)
	return info, args.Error(1)
}

type mockSelector struct {
	mock.Mock
}

func (m *mockSelector) SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
	args := m.Called(ctx, deployments, prompt)
	d, _ := args.Get(0).(*models.Deployment)
	return d, args.Error(1)
}
