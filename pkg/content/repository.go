package content

import (
	"context"

	"go.uber.org/zap"

	"portfolio-cms/pkg/models"
)

// Repository is the public contract for one content type. Whether the
// remote store is configured is fixed at construction: a nil remote means
// unconfigured.
type Repository[T any, P any] struct {
	kind      models.Kind
	remote    Store[T]
	files     Store[T]
	normalize func(P, *T) T
	ensure    func(T) error
	slugOf    func(T) string
	// builtin serves reads when neither store is available.
	builtin func() []T
	logger  *zap.Logger
}

// RemoteConfigured reports whether writes and reorders can reach the
// remote store.
func (r *Repository[T, P]) RemoteConfigured() bool {
	return r.remote != nil
}

func (r *Repository[T, P]) Kind() models.Kind {
	return r.kind
}

func (r *Repository[T, P]) readStore() Store[T] {
	if r.remote != nil {
		return r.remote
	}
	return r.files
}

// writeStore picks the store a mutating call goes to, or fails with a
// ConfigurationError.
func (r *Repository[T, P]) writeStore(opts WriteOptions) (Store[T], string, error) {
	if r.remote != nil {
		return r.remote, "remote", nil
	}
	if opts.FallbackToFilesystem && r.files != nil {
		return r.files, "filesystem", nil
	}
	reason := "set DATABASE_URL to enable database storage"
	if r.files != nil {
		reason += " or allow the filesystem fallback"
	}
	return nil, "", &ConfigurationError{Kind: r.kind, Reason: reason}
}

func (r *Repository[T, P]) FetchAll(ctx context.Context) ([]T, error) {
	s := r.readStore()
	if s == nil {
		if r.builtin != nil {
			return r.builtin(), nil
		}
		return []T{}, nil
	}
	return s.List(ctx)
}

func (r *Repository[T, P]) FetchBySlug(ctx context.Context, slug string) (*T, error) {
	s := r.readStore()
	if s == nil {
		if r.builtin != nil {
			for _, item := range r.builtin() {
				if r.slugOf(item) == slug {
					found := item
					return &found, nil
				}
			}
		}
		return nil, nil
	}
	return s.Get(ctx, slug)
}

func (r *Repository[T, P]) Create(ctx context.Context, patch P, opts WriteOptions) (*T, error) {
	s, backend, err := r.writeStore(opts)
	if err != nil {
		return nil, err
	}

	record := r.normalize(patch, nil)
	if err := r.ensure(record); err != nil {
		return nil, err
	}

	created, err := s.Insert(ctx, record)
	if err != nil {
		return nil, err
	}
	r.logger.Info("content created",
		zap.String("kind", string(r.kind)),
		zap.String("slug", r.slugOf(*created)),
		zap.String("backend", backend))
	return created, nil
}

func (r *Repository[T, P]) Update(ctx context.Context, slug string, patch P, opts WriteOptions) (*T, error) {
	s, backend, err := r.writeStore(opts)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &NotFoundError{Kind: r.kind, Slug: slug}
	}

	record := r.normalize(patch, existing)
	if err := r.ensure(record); err != nil {
		return nil, err
	}

	updated, err := s.Update(ctx, slug, record)
	if err != nil {
		return nil, err
	}
	r.logger.Info("content updated",
		zap.String("kind", string(r.kind)),
		zap.String("slug", slug),
		zap.String("backend", backend))
	return updated, nil
}

func (r *Repository[T, P]) Delete(ctx context.Context, slug string, opts WriteOptions) error {
	s, backend, err := r.writeStore(opts)
	if err != nil {
		return err
	}
	if err := s.Delete(ctx, slug); err != nil {
		return err
	}
	r.logger.Info("content deleted",
		zap.String("kind", string(r.kind)),
		zap.String("slug", slug),
		zap.String("backend", backend))
	return nil
}

// Reorder assigns display orders. It needs the remote store regardless of
// any fallback option. Stores that can run the batch in one transaction do
// so; otherwise items are applied in order and the first failure stops
// the rest.
func (r *Repository[T, P]) Reorder(ctx context.Context, items []models.ReorderItem) error {
	if r.remote == nil {
		return &ConfigurationError{Kind: r.kind, Reason: "reordering requires database storage"}
	}

	if batch, ok := r.remote.(BatchOrderer); ok {
		if err := batch.SetOrders(ctx, items); err != nil {
			return err
		}
	} else {
		orderer, ok := r.remote.(Orderer)
		if !ok {
			return &ConfigurationError{Kind: r.kind, Reason: "store does not support ordering"}
		}
		for i, item := range items {
			if err := orderer.SetOrder(ctx, item.Slug, item.Order); err != nil {
				return &ReorderError{Index: i, Slug: item.Slug, Err: err}
			}
		}
	}

	r.logger.Info("content reordered",
		zap.String("kind", string(r.kind)),
		zap.Int("items", len(items)))
	return nil
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
