// Package store wraps the metadata table's DynamoDB primitives with the
// conditional-write and prefix-scan access patterns the repositories need.
// The table has no secondary indexes, so every lookup that is not "all items
// under an owner with a given sort-key prefix" goes through QueryByPrefix
// with a continuation token.
package store

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	// ErrAlreadyExists reports a failed create precondition. Never retried
	// here; the caller decides whether it maps to Conflict or idempotent
	// success.
	ErrAlreadyExists = errors.New("item already exists")

	// ErrNotFound reports a failed existence precondition or a missing item.
	ErrNotFound = errors.New("item not found")
)

const (
	// DefaultPageSize matches the table's historical query limit.
	DefaultPageSize = 50

	// MaxScanPages caps continuation-token loops so a filtered scan over
	// pathological data stays cost-bounded. Callers treat an exhausted
	// ceiling the same as "not found".
	MaxScanPages = 50
)

// Item is a raw record in the metadata table.
type Item = map[string]types.AttributeValue

// Query describes one page request of a sort-key prefix scan.
type Query struct {
	PartitionKey  string
	SortKeyPrefix string

	// Limit is the per-page item cap; DefaultPageSize when zero.
	Limit int32

	// ConsistentRead forces a strongly consistent read. Required on lookups
	// that must observe a create issued moments earlier.
	ConsistentRead bool

	// Descending reverses the sort-key order (newest first for
	// timestamp-prefixed keys).
	Descending bool

	// StartKey resumes a previous page; nil starts from the beginning.
	StartKey Item

	// FilterAttr/FilterValue apply an optional server-side equality filter.
	// DynamoDB applies the filter after the page limit, so a filtered page
	// may be empty while later pages still hold matches; callers must keep
	// following LastKey.
	FilterAttr  string
	FilterValue string
}

// Page is one page of query results. A nil LastKey means the scan is
// exhausted.
type Page struct {
	Items   []Item
	LastKey Item
}

// Store is the metadata-table access surface used by the repositories.
type Store interface {
	// PutIfAbsent writes item only if its (PK, SK) does not exist yet.
	// Returns ErrAlreadyExists when the key is taken.
	PutIfAbsent(ctx context.Context, item Item) error

	// UpdateIfExists applies attribute assignments to an existing record.
	// Returns ErrNotFound when the record vanished, e.g. a delete raced the
	// caller's lookup.
	UpdateIfExists(ctx context.Context, pk, sk string, patch map[string]types.AttributeValue) error

	// DeleteIfExists removes a record, failing with ErrNotFound when it is
	// already gone.
	DeleteIfExists(ctx context.Context, pk, sk string) error

	// Delete removes a record unconditionally. Used by cascades where
	// "already gone" is success.
	Delete(ctx context.Context, pk, sk string) error

	// Get fetches one record by exact key. Returns ErrNotFound when absent.
	Get(ctx context.Context, pk, sk string, consistent bool) (Item, error)

	// QueryByPrefix returns one page of the prefix scan described by q.
	QueryByPrefix(ctx context.Context, q Query) (*Page, error)

	// CountByPrefix counts all records under a sort-key prefix, following
	// continuation tokens server-side (Select COUNT).
	CountByPrefix(ctx context.Context, pk, prefix string) (int64, error)
}
