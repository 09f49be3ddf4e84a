package content

import (
	"context"

	"portfolio-cms/pkg/models"
)

// Store is a backing store for one content type. Get returns nil, nil
// when no record has the slug.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, slug string) (*T, error)
	Insert(ctx context.Context, record T) (*T, error)
	Update(ctx context.Context, slug string, record T) (*T, error)
	Delete(ctx context.Context, slug string) error
}

// Orderer is implemented by stores that keep a manual display order.
type Orderer interface {
	SetOrder(ctx context.Context, slug string, order int) error
}

// BatchOrderer applies a whole reorder batch atomically. On failure it
// returns a *ReorderError and leaves every item unchanged.
type BatchOrderer interface {
	SetOrders(ctx context.Context, items []models.ReorderItem) error
}

// WriteOptions apply to create, update and delete.
type WriteOptions struct {
	// FallbackToFilesystem permits writing to the file store when no
	// remote store is configured.
	FallbackToFilesystem bool
}
