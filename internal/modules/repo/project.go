package repo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/securedoc-app/securedoc/internal/modules/keys"
	"github.com/securedoc-app/securedoc/internal/modules/model"
	"github.com/securedoc-app/securedoc/internal/modules/store"
)

// ProjectRepo is the PROJECT-record access layer. Conditional-write outcomes
// surface as store.ErrAlreadyExists / store.ErrNotFound for the service to
// map to domain results.
type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	List(ctx context.Context, ownerSub string) ([]*model.Project, error)

	// FindByID locates a project by its opaque id. The table has no index
	// on projectId, so this is a consistent paginated prefix scan with an
	// equality filter, followed page by page until a match or exhaustion.
	FindByID(ctx context.Context, ownerSub, projectID string) (*model.Project, error)

	Rename(ctx context.Context, p *model.Project, newName, updatedAt string) error
	DeleteRow(ctx context.Context, p *model.Project) error

	// Count totals the owner's projects (server-side COUNT).
	Count(ctx context.Context, ownerSub string) (int64, error)
}

type projectRepo struct {
	s store.Store
}

func NewProjectRepo(s store.Store) ProjectRepo {
	return &projectRepo{s: s}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	p.PK = keys.OwnerPK(p.OwnerSub)
	p.SK = keys.ProjectSK(p.CreatedAt, p.ProjectID)
	p.Entity = model.EntityProject

	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	return r.s.PutIfAbsent(ctx, item)
}

func (r *projectRepo) List(ctx context.Context, ownerSub string) ([]*model.Project, error) {
	page, err := r.s.QueryByPrefix(ctx, store.Query{
		PartitionKey:  keys.OwnerPK(ownerSub),
		SortKeyPrefix: keys.ProjectSKPrefix(),
		Descending:    true,
	})
	if err != nil {
		return nil, err
	}

	projects := make([]*model.Project, 0, len(page.Items))
	for _, item := range page.Items {
		p, err := unmarshalProject(item)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *projectRepo) FindByID(ctx context.Context, ownerSub, projectID string) (*model.Project, error) {
	var startKey store.Item

	for page := 0; page < store.MaxScanPages; page++ {
		res, err := r.s.QueryByPrefix(ctx, store.Query{
			PartitionKey:   keys.OwnerPK(ownerSub),
			SortKeyPrefix:  keys.ProjectSKPrefix(),
			ConsistentRead: true,
			Descending:     true,
			StartKey:       startKey,
			FilterAttr:     "projectId",
			FilterValue:    projectID,
		})
		if err != nil {
			return nil, err
		}

		for _, item := range res.Items {
			p, err := unmarshalProject(item)
			if err != nil {
				return nil, err
			}
			if p.ProjectID == projectID {
				return p, nil
			}
		}

		// An empty filtered page does not mean absent; the match may sit on
		// a later page. Keep following the continuation token.
		if len(res.LastKey) == 0 {
			return nil, store.ErrNotFound
		}
		startKey = res.LastKey
	}
	return nil, store.ErrNotFound
}

func (r *projectRepo) Rename(ctx context.Context, p *model.Project, newName, updatedAt string) error {
	return r.s.UpdateIfExists(ctx, p.PK, p.SK, map[string]types.AttributeValue{
		"name":      &types.AttributeValueMemberS{Value: newName},
		"updatedAt": &types.AttributeValueMemberS{Value: updatedAt},
	})
}

func (r *projectRepo) DeleteRow(ctx context.Context, p *model.Project) error {
	return r.s.DeleteIfExists(ctx, p.PK, p.SK)
}

func (r *projectRepo) Count(ctx context.Context, ownerSub string) (int64, error) {
	return r.s.CountByPrefix(ctx, keys.OwnerPK(ownerSub), keys.ProjectSKPrefix())
}

func unmarshalProject(item store.Item) (*model.Project, error) {
	var p model.Project
	if err := attributevalue.UnmarshalMap(item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusActive
	}
	if p.UpdatedAt == "" {
		p.UpdatedAt = p.CreatedAt
	}
	return &p, nil
}
