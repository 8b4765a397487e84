package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/securedoc-app/securedoc/internal/config"
	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/modules/model"
)

// MockProjectRepo is a mock implementation of repo.ProjectRepo.
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) List(ctx context.Context, ownerSub string) ([]*model.Project, error) {
	args := m.Called(ctx, ownerSub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectRepo) FindByID(ctx context.Context, ownerSub, projectID string) (*model.Project, error) {
	args := m.Called(ctx, ownerSub, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Rename(ctx context.Context, p *model.Project, newName, updatedAt string) error {
	args := m.Called(ctx, p, newName, updatedAt)
	return args.Error(0)
}

func (m *MockProjectRepo) DeleteRow(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Count(ctx context.Context, ownerSub string) (int64, error) {
	args := m.Called(ctx, ownerSub)
	return args.Get(0).(int64), args.Error(1)
}

// MockFileRepo is a mock implementation of repo.FileRepo.
type MockFileRepo struct {
	mock.Mock
}

func (m *MockFileRepo) Create(ctx context.Context, f *model.File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFileRepo) Get(ctx context.Context, ownerSub, projectID, fileID string) (*model.File, error) {
	args := m.Called(ctx, ownerSub, projectID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepo) ListForProject(ctx context.Context, ownerSub, projectID string) ([]*model.File, error) {
	args := m.Called(ctx, ownerSub, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.File), args.Error(1)
}

func (m *MockFileRepo) DeleteRowIfExists(ctx context.Context, ownerSub, projectID, fileID string) error {
	args := m.Called(ctx, ownerSub, projectID, fileID)
	return args.Error(0)
}

func (m *MockFileRepo) DeleteRow(ctx context.Context, f *model.File) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFileRepo) ListForOwner(ctx context.Context, ownerSub string, max int) ([]*model.File, error) {
	args := m.Called(ctx, ownerSub, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.File), args.Error(1)
}

// MockBlobGateway is a mock implementation of blob.Gateway.
type MockBlobGateway struct {
	mock.Mock
}

func (m *MockBlobGateway) PresignPut(ctx context.Context, bucket, key, contentType string, expire time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, contentType, expire)
	return args.String(0), args.Error(1)
}

func (m *MockBlobGateway) PresignGet(ctx context.Context, bucket, key, responseFilename string, expire time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, responseFilename, expire)
	return args.String(0), args.Error(1)
}

func (m *MockBlobGateway) HeadExists(ctx context.Context, bucket, key string) (bool, error) {
	args := m.Called(ctx, bucket, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobGateway) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

// MockFileService is a mock implementation of FileService, used by the
// project service tests for cascade wiring.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) CreateUploadSlot(ctx context.Context, user *identity.User, projectID string, in UploadSlotInput) (*UploadSlot, error) {
	args := m.Called(ctx, user, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadSlot), args.Error(1)
}

func (m *MockFileService) ConfirmUpload(ctx context.Context, ownerSub, projectID, fileID string, in ConfirmUploadInput) (*model.File, error) {
	args := m.Called(ctx, ownerSub, projectID, fileID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, ownerSub, projectID string, validate bool) (*ListFilesOutput, error) {
	args := m.Called(ctx, ownerSub, projectID, validate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ListFilesOutput), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, ownerSub, projectID, fileID string) error {
	args := m.Called(ctx, ownerSub, projectID, fileID)
	return args.Error(0)
}

func (m *MockFileService) DeleteAllForProject(ctx context.Context, ownerSub, projectID string) (CascadeCounts, error) {
	args := m.Called(ctx, ownerSub, projectID)
	return args.Get(0).(CascadeCounts), args.Error(1)
}

func (m *MockFileService) DownloadURLs(ctx context.Context, ownerSub, projectID, fileID string) (*DownloadURLs, error) {
	args := m.Called(ctx, ownerSub, projectID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DownloadURLs), args.Error(1)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.S3.RawBucket = "raw-bucket"
	cfg.S3.PutExpireSec = 300
	cfg.S3.GetExpireSec = 60
	return cfg
}
