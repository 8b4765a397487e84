package repo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/securedoc-app/securedoc/internal/modules/keys"
	"github.com/securedoc-app/securedoc/internal/modules/model"
	"github.com/securedoc-app/securedoc/internal/modules/store"
)

// FileRepo is the FILE-record access layer. File keys are deterministic
// (projectId + fileId), so point reads and deletes need no scan.
type FileRepo interface {
	Create(ctx context.Context, f *model.File) error
	Get(ctx context.Context, ownerSub, projectID, fileID string) (*model.File, error)

	// ListForProject returns all of a project's file records, newest first,
	// following continuation tokens up to the scan ceiling.
	ListForProject(ctx context.Context, ownerSub, projectID string) ([]*model.File, error)

	// DeleteRowIfExists removes one record, ErrNotFound when already gone.
	DeleteRowIfExists(ctx context.Context, ownerSub, projectID, fileID string) error

	// DeleteRow removes a record unconditionally; cascades treat an
	// already-missing row as deleted.
	DeleteRow(ctx context.Context, f *model.File) error

	// ListForOwner returns up to max of the owner's file records across all
	// projects. Used by account stats only.
	ListForOwner(ctx context.Context, ownerSub string, max int) ([]*model.File, error)
}

type fileRepo struct {
	s store.Store
}

func NewFileRepo(s store.Store) FileRepo {
	return &fileRepo{s: s}
}

func (r *fileRepo) Create(ctx context.Context, f *model.File) error {
	f.PK = keys.OwnerPK(f.OwnerSub)
	f.SK = keys.FileSK(f.ProjectID, f.FileID)
	f.Entity = model.EntityFile

	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal file: %w", err)
	}
	return r.s.PutIfAbsent(ctx, item)
}

func (r *fileRepo) Get(ctx context.Context, ownerSub, projectID, fileID string) (*model.File, error) {
	item, err := r.s.Get(ctx, keys.OwnerPK(ownerSub), keys.FileSK(projectID, fileID), true)
	if err != nil {
		return nil, err
	}
	return unmarshalFile(item)
}

func (r *fileRepo) ListForProject(ctx context.Context, ownerSub, projectID string) ([]*model.File, error) {
	var files []*model.File
	var startKey store.Item

	for page := 0; page < store.MaxScanPages; page++ {
		res, err := r.s.QueryByPrefix(ctx, store.Query{
			PartitionKey:   keys.OwnerPK(ownerSub),
			SortKeyPrefix:  keys.FileSKPrefix(projectID),
			ConsistentRead: true,
			StartKey:       startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range res.Items {
			f, err := unmarshalFile(item)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}

		if len(res.LastKey) == 0 {
			break
		}
		startKey = res.LastKey
	}

	// The deterministic sort key carries no timestamp; order by creation
	// time here instead.
	sort.Slice(files, func(i, j int) bool {
		if files[i].CreatedAt != files[j].CreatedAt {
			return files[i].CreatedAt > files[j].CreatedAt
		}
		return files[i].FileID > files[j].FileID
	})
	return files, nil
}

func (r *fileRepo) DeleteRowIfExists(ctx context.Context, ownerSub, projectID, fileID string) error {
	return r.s.DeleteIfExists(ctx, keys.OwnerPK(ownerSub), keys.FileSK(projectID, fileID))
}

func (r *fileRepo) DeleteRow(ctx context.Context, f *model.File) error {
	return r.s.Delete(ctx, f.PK, f.SK)
}

func (r *fileRepo) ListForOwner(ctx context.Context, ownerSub string, max int) ([]*model.File, error) {
	var files []*model.File
	var startKey store.Item

	for page := 0; page < store.MaxScanPages && len(files) < max; page++ {
		res, err := r.s.QueryByPrefix(ctx, store.Query{
			PartitionKey:  keys.OwnerPK(ownerSub),
			SortKeyPrefix: keys.AllFilesSKPrefix(),
			StartKey:      startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range res.Items {
			f, err := unmarshalFile(item)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
			if len(files) >= max {
				break
			}
		}

		if len(res.LastKey) == 0 {
			break
		}
		startKey = res.LastKey
	}
	return files, nil
}

func unmarshalFile(item store.Item) (*model.File, error) {
	var f model.File
	if err := attributevalue.UnmarshalMap(item, &f); err != nil {
		return nil, fmt.Errorf("unmarshal file: %w", err)
	}
	if f.Status == "" {
		f.Status = model.FileStatusQueued
	}
	if f.UpdatedAt == "" {
		f.UpdatedAt = f.CreatedAt
	}
	return &f, nil
}
