package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/modules/model"
	"github.com/securedoc-app/securedoc/internal/modules/service"
)

func testUser() *identity.User {
	return &identity.User{Sub: "u1", Email: "ada@example.com", Name: "Ada"}
}

func TestProjectHandler_CreateProject(t *testing.T) {
	tests := []struct {
		name           string
		body           CreateProjectReq
		user           *identity.User
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "successful creation",
			body: CreateProjectReq{Name: "Tax Docs"},
			user: testUser(),
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, "u1", "Tax Docs").
					Return(&model.Project{ProjectID: "p1", Name: "Tax Docs"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid name",
			body: CreateProjectReq{Name: "   "},
			user: testUser(),
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, "u1", "   ").
					Return(nil, &service.ValidationError{Reason: "name is required"})
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing user",
			body:           CreateProjectReq{Name: "Tax Docs"},
			user:           nil,
			setup:          func(svc *MockProjectService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "service layer error",
			body: CreateProjectReq{Name: "Tax Docs"},
			user: testUser(),
			setup: func(svc *MockProjectService) {
				svc.On("Create", mock.Anything, "u1", "Tax Docs").
					Return(nil, errors.New("storage error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			h := NewProjectHandler(mockService)
			r := setupRouter()
			r.POST("/projects", withUser(tt.user, h.CreateProject))

			payload, _ := sonic.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/projects", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_GetProject(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name: "found",
			setup: func(svc *MockProjectService) {
				svc.On("Get", mock.Anything, "u1", "p1").
					Return(&model.Project{ProjectID: "p1", Name: "Tax Docs"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing",
			setup: func(svc *MockProjectService) {
				svc.On("Get", mock.Anything, "u1", "p1").Return(nil, service.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			h := NewProjectHandler(mockService)
			r := setupRouter()
			r.GET("/projects/:id", withUser(testUser(), h.GetProject))

			req := httptest.NewRequest("GET", "/projects/p1", nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_RenameProject(t *testing.T) {
	mockService := &MockProjectService{}
	mockService.On("Rename", mock.Anything, "u1", "p1", "Receipts").
		Return(&model.Project{ProjectID: "p1", Name: "Receipts"}, nil)

	h := NewProjectHandler(mockService)
	r := setupRouter()
	r.PATCH("/projects/:id", withUser(testUser(), h.RenameProject))

	payload, _ := sonic.Marshal(RenameProjectReq{Name: "Receipts"})
	req := httptest.NewRequest("PATCH", "/projects/p1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Receipts")
	mockService.AssertExpectations(t)
}

func TestProjectHandler_DeleteProject(t *testing.T) {
	mockService := &MockProjectService{}
	mockService.On("Delete", mock.Anything, "u1", "p1").
		Return(&service.DeleteProjectOutput{ProjectID: "p1", DeletedFileRows: 2, DeletedObjects: 2}, nil)

	h := NewProjectHandler(mockService)
	r := setupRouter()
	r.DELETE("/projects/:id", withUser(testUser(), h.DeleteProject))

	req := httptest.NewRequest("DELETE", "/projects/p1", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted_file_rows")
	mockService.AssertExpectations(t)
}
