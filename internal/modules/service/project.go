package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/securedoc-app/securedoc/internal/modules/model"
	"github.com/securedoc-app/securedoc/internal/modules/repo"
	"github.com/securedoc-app/securedoc/internal/modules/store"
)

const maxProjectNameLen = 80

type ProjectService interface {
	Create(ctx context.Context, ownerSub, name string) (*model.Project, error)
	List(ctx context.Context, ownerSub string) ([]*model.Project, error)
	Get(ctx context.Context, ownerSub, projectID string) (*model.Project, error)
	Rename(ctx context.Context, ownerSub, projectID, newName string) (*model.Project, error)

	// Delete removes the project and cascades to its files and their
	// backing objects. The project row goes last so a crashed cascade can
	// be re-run.
	Delete(ctx context.Context, ownerSub, projectID string) (*DeleteProjectOutput, error)
}

type DeleteProjectOutput struct {
	ProjectID       string `json:"project_id"`
	DeletedFileRows int    `json:"deleted_file_rows"`
	DeletedObjects  int    `json:"deleted_objects"`
}

type projectService struct {
	projects repo.ProjectRepo
	files    FileService
}

func NewProjectService(projects repo.ProjectRepo, files FileService) ProjectService {
	return &projectService{projects: projects, files: files}
}

func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func validProjectName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", validationErr("name is required")
	}
	if utf8.RuneCountInString(name) > maxProjectNameLen {
		return "", validationErr("name too long")
	}
	return name, nil
}

func (s *projectService) Create(ctx context.Context, ownerSub, rawName string) (*model.Project, error) {
	name, err := validProjectName(rawName)
	if err != nil {
		return nil, err
	}

	now := nowISO()
	p := &model.Project{
		ProjectID: uuid.NewString(),
		OwnerSub:  ownerSub,
		Name:      name,
		Status:    model.ProjectStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.projects.Create(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, ownerSub string) ([]*model.Project, error) {
	return s.projects.List(ctx, ownerSub)
}

func (s *projectService) Get(ctx context.Context, ownerSub, projectID string) (*model.Project, error) {
	p, err := s.projects.FindByID(ctx, ownerSub, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

func (s *projectService) Rename(ctx context.Context, ownerSub, projectID, rawName string) (*model.Project, error) {
	name, err := validProjectName(rawName)
	if err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, ownerSub, projectID)
	if err != nil {
		return nil, err
	}

	updatedAt := nowISO()
	if err := s.projects.Rename(ctx, p, name, updatedAt); err != nil {
		// A delete racing between the lookup and the conditional update is
		// an expected outcome, not a fault.
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rename project: %w", err)
	}

	p.Name = name
	p.UpdatedAt = updatedAt
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, ownerSub, projectID string) (*DeleteProjectOutput, error) {
	p, err := s.Get(ctx, ownerSub, projectID)
	if err != nil {
		return nil, err
	}

	counts, err := s.files.DeleteAllForProject(ctx, ownerSub, projectID)
	if err != nil {
		return nil, fmt.Errorf("cascade files: %w", err)
	}

	if err := s.projects.DeleteRow(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete project row: %w", err)
	}

	return &DeleteProjectOutput{
		ProjectID:       projectID,
		DeletedFileRows: counts.DeletedFileRows,
		DeletedObjects:  counts.DeletedObjects,
	}, nil
}
