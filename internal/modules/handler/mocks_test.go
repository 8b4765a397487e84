package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/modules/model"
	"github.com/securedoc-app/securedoc/internal/modules/service"
)

// MockProjectService is a mock implementation of service.ProjectService.
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, ownerSub, name string) (*model.Project, error) {
	args := m.Called(ctx, ownerSub, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, ownerSub string) ([]*model.Project, error) {
	args := m.Called(ctx, ownerSub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Project), args.Error(1)
}

func (m *MockProjectService) Get(ctx context.Context, ownerSub, projectID string) (*model.Project, error) {
	args := m.Called(ctx, ownerSub, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Rename(ctx context.Context, ownerSub, projectID, newName string) (*model.Project, error) {
	args := m.Called(ctx, ownerSub, projectID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, ownerSub, projectID string) (*service.DeleteProjectOutput, error) {
	args := m.Called(ctx, ownerSub, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeleteProjectOutput), args.Error(1)
}

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) CreateUploadSlot(ctx context.Context, user *identity.User, projectID string, in service.UploadSlotInput) (*service.UploadSlot, error) {
	args := m.Called(ctx, user, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadSlot), args.Error(1)
}

func (m *MockFileService) ConfirmUpload(ctx context.Context, ownerSub, projectID, fileID string, in service.ConfirmUploadInput) (*model.File, error) {
	args := m.Called(ctx, ownerSub, projectID, fileID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, ownerSub, projectID string, validate bool) (*service.ListFilesOutput, error) {
	args := m.Called(ctx, ownerSub, projectID, validate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListFilesOutput), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, ownerSub, projectID, fileID string) error {
	args := m.Called(ctx, ownerSub, projectID, fileID)
	return args.Error(0)
}

func (m *MockFileService) DeleteAllForProject(ctx context.Context, ownerSub, projectID string) (service.CascadeCounts, error) {
	args := m.Called(ctx, ownerSub, projectID)
	return args.Get(0).(service.CascadeCounts), args.Error(1)
}

func (m *MockFileService) DownloadURLs(ctx context.Context, ownerSub, projectID, fileID string) (*service.DownloadURLs, error) {
	args := m.Called(ctx, ownerSub, projectID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadURLs), args.Error(1)
}

// withUser injects an authenticated user the way the auth middleware would.
func withUser(user *identity.User, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
		}
		h(c)
	}
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
