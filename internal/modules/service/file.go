package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/securedoc-app/securedoc/internal/config"
	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/infra/blob"
	"github.com/securedoc-app/securedoc/internal/modules/model"
	"github.com/securedoc-app/securedoc/internal/modules/repo"
	"github.com/securedoc-app/securedoc/internal/modules/store"
	"github.com/securedoc-app/securedoc/internal/pkg/sanitize"
)

const (
	maxDeclaredSizeBytes = 250 << 20

	// headCheckConcurrency caps the reconciliation fan-out against the
	// object store.
	headCheckConcurrency = 6
)

type UploadSlotInput struct {
	Filename    string
	ContentType string
	SizeBytes   *float64
}

// UploadSlot is a presigned invitation to upload. No metadata exists yet; an
// unused slot expires without a trace.
type UploadSlot struct {
	UploadID         string            `json:"upload_id"`
	FileID           string            `json:"file_id"`
	Bucket           string            `json:"bucket"`
	Key              string            `json:"key"`
	PutURL           string            `json:"put_url"`
	Headers          map[string]string `json:"headers"`
	ExpiresInSeconds int               `json:"expires_in_seconds"`
}

type ConfirmUploadInput struct {
	Filename    string
	ContentType string
	SizeBytes   *float64
	Bucket      string
	Key         string
}

type ListFilesOutput struct {
	Files []*model.File `json:"files"`

	// Reconciled counts metadata records removed because their backing
	// object was confirmed absent. Only set in validate mode.
	Reconciled int `json:"reconciled,omitempty"`
}

type CascadeCounts struct {
	DeletedFileRows int
	DeletedObjects  int
}

type DownloadURLs struct {
	InlineURL   string `json:"inline_url"`
	DownloadURL string `json:"download_url"`
}

type FileService interface {
	// CreateUploadSlot issues a presigned PUT URL plus a deterministic
	// object key. Metadata is deliberately not written until confirm.
	CreateUploadSlot(ctx context.Context, user *identity.User, projectID string, in UploadSlotInput) (*UploadSlot, error)

	// ConfirmUpload writes the file record. Re-confirming an already
	// confirmed upload returns the stored record, never an error.
	ConfirmUpload(ctx context.Context, ownerSub, projectID, fileID string, in ConfirmUploadInput) (*model.File, error)

	// List returns the project's files newest first. With validate set, it
	// probes each backing object and removes records whose object is
	// confirmed absent.
	List(ctx context.Context, ownerSub, projectID string, validate bool) (*ListFilesOutput, error)

	Delete(ctx context.Context, ownerSub, projectID, fileID string) error
	DeleteAllForProject(ctx context.Context, ownerSub, projectID string) (CascadeCounts, error)
	DownloadURLs(ctx context.Context, ownerSub, projectID, fileID string) (*DownloadURLs, error)
}

type fileService struct {
	files     repo.FileRepo
	projects  repo.ProjectRepo
	blobs     blob.Gateway
	log       *zap.Logger
	rawBucket string
	putExpire time.Duration
	getExpire time.Duration
}

func NewFileService(files repo.FileRepo, projects repo.ProjectRepo, blobs blob.Gateway, log *zap.Logger, cfg *config.Config) FileService {
	return &fileService{
		files:     files,
		projects:  projects,
		blobs:     blobs,
		log:       log,
		rawBucket: cfg.S3.RawBucket,
		putExpire: time.Duration(cfg.S3.PutExpireSec) * time.Second,
		getExpire: time.Duration(cfg.S3.GetExpireSec) * time.Second,
	}
}

// rawObjectKey derives the object key from the slot's identifiers. The same
// fileId always maps to the same key, which makes repeated slot issuance and
// confirm idempotent at the storage layer.
func rawObjectKey(ownerSub, userSlug, projectSlug, projectID, fileID, filename string) string {
	return fmt.Sprintf("private/%s/%s/projects/%s--%s/raw/%s/%s",
		ownerSub, userSlug, projectSlug, projectID, fileID, filename)
}

func userSlug(user *identity.User) string {
	if name := strings.TrimSpace(user.Name); name != "" {
		return sanitize.Slug(name)
	}
	if email := strings.TrimSpace(user.Email); email != "" {
		local, _, _ := strings.Cut(email, "@")
		if local != "" {
			return sanitize.Slug(local)
		}
	}
	return "user"
}

func projectSlug(p *model.Project) string {
	if p.Name != "" {
		return sanitize.Slug(p.Name)
	}
	// Stable deterministic fallback when the name is missing.
	short := p.ProjectID
	if len(short) > 8 {
		short = short[:8]
	}
	return "project-" + short
}

func (s *fileService) CreateUploadSlot(ctx context.Context, user *identity.User, projectID string, in UploadSlotInput) (*UploadSlot, error) {
	rawName := strings.TrimSpace(in.Filename)
	if rawName == "" {
		return nil, validationErr("filename is required")
	}
	if in.SizeBytes != nil {
		sz := *in.SizeBytes
		if math.IsNaN(sz) || math.IsInf(sz, 0) || sz <= 0 || sz > maxDeclaredSizeBytes {
			return nil, validationErr("invalid sizeBytes")
		}
	}

	filename := sanitize.FileName(rawName)
	contentType := sanitize.ContentType(in.ContentType)

	project, err := s.projects.FindByID(ctx, user.Sub, projectID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if !project.Active() {
		return nil, ErrGone
	}

	fileID := uuid.NewString()
	key := rawObjectKey(user.Sub, userSlug(user), projectSlug(project), projectID, fileID, filename)

	putURL, err := s.blobs.PresignPut(ctx, s.rawBucket, key, contentType, s.putExpire)
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &UploadSlot{
		UploadID:         fileID,
		FileID:           fileID,
		Bucket:           s.rawBucket,
		Key:              key,
		PutURL:           putURL,
		Headers:          map[string]string{"Content-Type": contentType},
		ExpiresInSeconds: int(s.putExpire / time.Second),
	}, nil
}

func (s *fileService) ConfirmUpload(ctx context.Context, ownerSub, projectID, fileID string, in ConfirmUploadInput) (*model.File, error) {
	rawName := strings.TrimSpace(in.Filename)
	bucket := strings.TrimSpace(in.Bucket)
	key := strings.TrimSpace(in.Key)
	if rawName == "" || bucket == "" || key == "" {
		return nil, validationErr("filename, bucket, key are required")
	}

	filename := sanitize.FileName(rawName)

	contentType := strings.TrimSpace(in.ContentType)
	if contentType != "" && contentType != sanitize.DefaultContentType {
		contentType = sanitize.ContentType(contentType)
	} else {
		contentType = sanitize.GuessContentType(filename)
	}

	var sizeBytes *int64
	if in.SizeBytes != nil {
		if sz := *in.SizeBytes; !math.IsNaN(sz) && !math.IsInf(sz, 0) && sz >= 0 {
			v := int64(math.Floor(sz))
			sizeBytes = &v
		}
	}

	now := nowISO()
	f := &model.File{
		FileID:      fileID,
		ProjectID:   projectID,
		OwnerSub:    ownerSub,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		Bucket:      bucket,
		ObjectKey:   key,
		Status:      model.FileStatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.files.Create(ctx, f)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		return nil, fmt.Errorf("confirm upload: %w", err)
	}

	// A retried confirm after a client timeout lands here. Return the
	// stored record instead of a conflict.
	existing, getErr := s.files.Get(ctx, ownerSub, projectID, fileID)
	if getErr != nil {
		return nil, fmt.Errorf("load confirmed file: %w", getErr)
	}
	return existing, nil
}

func (s *fileService) List(ctx context.Context, ownerSub, projectID string, validate bool) (*ListFilesOutput, error) {
	files, err := s.files.ListForProject(ctx, ownerSub, projectID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if !validate || len(files) == 0 {
		return &ListFilesOutput{Files: files}, nil
	}

	missing := make([]bool, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(headCheckConcurrency)
	for i, f := range files {
		g.Go(func() error {
			exists, err := s.blobs.HeadExists(gctx, f.Bucket, f.ObjectKey)
			if err != nil {
				// Inconclusive probe: assume the object exists rather than
				// destroy metadata on throttling or permission noise.
				s.log.Warn("head check inconclusive, keeping record",
					zap.String("fileId", f.FileID), zap.Error(err))
				return nil
			}
			missing[i] = !exists
			return nil
		})
	}
	_ = g.Wait()

	kept := make([]*model.File, 0, len(files))
	reconciled := 0
	for i, f := range files {
		if !missing[i] {
			kept = append(kept, f)
			continue
		}
		if err := s.files.DeleteRow(ctx, f); err != nil {
			s.log.Warn("orphan cleanup failed, keeping record",
				zap.String("fileId", f.FileID), zap.Error(err))
			kept = append(kept, f)
			continue
		}
		reconciled++
	}

	return &ListFilesOutput{Files: kept, Reconciled: reconciled}, nil
}

func (s *fileService) Delete(ctx context.Context, ownerSub, projectID, fileID string) error {
	f, err := s.files.Get(ctx, ownerSub, projectID, fileID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	// Object first: the record owns the object, and a record without an
	// object is recoverable while the reverse leaks storage.
	if f.Bucket != "" && f.ObjectKey != "" {
		if err := s.blobs.Delete(ctx, f.Bucket, f.ObjectKey); err != nil {
			s.log.Warn("object delete failed, continuing",
				zap.String("fileId", fileID), zap.Error(err))
		}
	}

	if err := s.files.DeleteRowIfExists(ctx, ownerSub, projectID, fileID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete file row: %w", err)
	}
	return nil
}

func (s *fileService) DeleteAllForProject(ctx context.Context, ownerSub, projectID string) (CascadeCounts, error) {
	files, err := s.files.ListForProject(ctx, ownerSub, projectID)
	if err != nil {
		return CascadeCounts{}, fmt.Errorf("list files for cascade: %w", err)
	}

	var counts CascadeCounts
	for _, f := range files {
		if f.Bucket != "" && f.ObjectKey != "" {
			if err := s.blobs.Delete(ctx, f.Bucket, f.ObjectKey); err != nil {
				s.log.Warn("cascade object delete failed, continuing",
					zap.String("fileId", f.FileID), zap.Error(err))
			} else {
				counts.DeletedObjects++
			}
		}

		if err := s.files.DeleteRow(ctx, f); err != nil {
			s.log.Warn("cascade row delete failed, continuing",
				zap.String("fileId", f.FileID), zap.Error(err))
			continue
		}
		counts.DeletedFileRows++
	}
	return counts, nil
}

func (s *fileService) DownloadURLs(ctx context.Context, ownerSub, projectID, fileID string) (*DownloadURLs, error) {
	f, err := s.files.Get(ctx, ownerSub, projectID, fileID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load file: %w", err)
	}

	inline, err := s.blobs.PresignGet(ctx, f.Bucket, f.ObjectKey, "", s.getExpire)
	if err != nil {
		return nil, fmt.Errorf("presign inline url: %w", err)
	}

	filename := f.Filename
	if filename == "" {
		filename = "download"
	}
	download, err := s.blobs.PresignGet(ctx, f.Bucket, f.ObjectKey, filename, s.getExpire)
	if err != nil {
		return nil, fmt.Errorf("presign download url: %w", err)
	}

	return &DownloadURLs{InlineURL: inline, DownloadURL: download}, nil
}
