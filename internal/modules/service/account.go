package service

import (
	"context"
	"fmt"

	"github.com/securedoc-app/securedoc/internal/modules/repo"
)

// statsFileScanCap bounds the file scan behind the stats endpoint.
const statsFileScanCap = 250

// AccountStats summarizes an owner's footprint. FilesConverted counts every
// confirmed upload and SpaceSavedBytes stays zero until a conversion pipeline
// exists; both keep their names so the UI contract does not change.
type AccountStats struct {
	TotalProjects   int64 `json:"total_projects"`
	FilesConverted  int   `json:"files_converted"`
	UploadedBytes   int64 `json:"uploaded_bytes"`
	SpaceSavedBytes int64 `json:"space_saved_bytes"`
}

type AccountService interface {
	Stats(ctx context.Context, ownerSub string) (*AccountStats, error)
}

type accountService struct {
	projects repo.ProjectRepo
	files    repo.FileRepo
}

func NewAccountService(projects repo.ProjectRepo, files repo.FileRepo) AccountService {
	return &accountService{projects: projects, files: files}
}

func (s *accountService) Stats(ctx context.Context, ownerSub string) (*AccountStats, error) {
	totalProjects, err := s.projects.Count(ctx, ownerSub)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}

	files, err := s.files.ListForOwner(ctx, ownerSub, statsFileScanCap)
	if err != nil {
		return nil, fmt.Errorf("scan files: %w", err)
	}

	var bytes int64
	for _, f := range files {
		if f.SizeBytes != nil {
			bytes += *f.SizeBytes
		}
	}

	return &AccountStats{
		TotalProjects:  totalProjects,
		FilesConverted: len(files),
		UploadedBytes:  bytes,
	}, nil
}
