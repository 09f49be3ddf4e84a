package content

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-cms/pkg/models"
)

// memProjects is an in-memory project store that records display orders.
type memProjects struct {
	records map[string]models.Project
	// failOrder makes SetOrder fail for that slug.
	failOrder string
	orders    []string
}

func newMemProjects(records ...models.Project) *memProjects {
	m := &memProjects{records: map[string]models.Project{}}
	for _, r := range records {
		m.records[r.Slug] = r
	}
	return m
}

func (m *memProjects) List(ctx context.Context) ([]models.Project, error) {
	out := make([]models.Project, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := out[i].DisplayOrder, out[j].DisplayOrder
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		return out[i].PublishedAt > out[j].PublishedAt
	})
	return out, nil
}

func (m *memProjects) Get(ctx context.Context, slug string) (*models.Project, error) {
	r, ok := m.records[slug]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memProjects) Insert(ctx context.Context, record models.Project) (*models.Project, error) {
	if _, ok := m.records[record.Slug]; ok {
		return nil, &DuplicateSlugError{Kind: models.KindProject, Slug: record.Slug}
	}
	m.records[record.Slug] = record
	return &record, nil
}

func (m *memProjects) Update(ctx context.Context, slug string, record models.Project) (*models.Project, error) {
	if _, ok := m.records[slug]; !ok {
		return nil, &NotFoundError{Kind: models.KindProject, Slug: slug}
	}
	delete(m.records, slug)
	m.records[record.Slug] = record
	return &record, nil
}

func (m *memProjects) Delete(ctx context.Context, slug string) error {
	if _, ok := m.records[slug]; !ok {
		return &NotFoundError{Kind: models.KindProject, Slug: slug}
	}
	delete(m.records, slug)
	return nil
}

func (m *memProjects) SetOrder(ctx context.Context, slug string, order int) error {
	if slug == m.failOrder {
		return errors.New("connection reset")
	}
	r, ok := m.records[slug]
	if !ok {
		return &NotFoundError{Kind: models.KindProject, Slug: slug}
	}
	r.DisplayOrder = &order
	m.records[slug] = r
	m.orders = append(m.orders, slug)
	return nil
}

// plainStore hides SetOrder.
type plainStore struct {
	Store[models.Project]
}

// batchStore records whether SetOrders was used.
type batchStore struct {
	*memProjects
	batches int
}

func (b *batchStore) SetOrders(ctx context.Context, items []models.ReorderItem) error {
	b.batches++
	for i, item := range items {
		if _, ok := b.records[item.Slug]; !ok {
			return &ReorderError{Index: i, Slug: item.Slug, Err: &NotFoundError{Kind: models.KindProject, Slug: item.Slug}}
		}
	}
	for _, item := range items {
		if err := b.SetOrder(ctx, item.Slug, item.Order); err != nil {
			return err
		}
	}
	return nil
}

func TestCreateWithoutStoresIsConfigurationError(t *testing.T) {
	repo := NewProjects(nil, nil, nil)
	_, err := repo.Create(context.Background(), models.ProjectPatch{Slug: ptr("a"), Title: ptr("A")}, WriteOptions{FallbackToFilesystem: true})
	require.Error(t, err)
	assert.True(t, IsConfiguration(err))

	list, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateRequiresFallbackWithoutRemote(t *testing.T) {
	files := newMemProjects()
	repo := NewProjects(nil, files, nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.ProjectPatch{Slug: ptr("a"), Title: ptr("A")}, WriteOptions{})
	assert.True(t, IsConfiguration(err))
	assert.Empty(t, files.records)

	created, err := repo.Create(ctx, models.ProjectPatch{Slug: ptr("a"), Title: ptr("A")}, WriteOptions{FallbackToFilesystem: true})
	require.NoError(t, err)
	assert.Equal(t, "a", created.Slug)

	got, err := repo.FetchBySlug(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
}

func TestRemoteWinsOverFiles(t *testing.T) {
	remote := newMemProjects()
	files := newMemProjects(models.Project{Slug: "from-files", Title: "F"})
	repo := NewProjects(remote, files, nil)
	ctx := context.Background()

	list, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "reads use the remote store when configured")

	_, err = repo.Create(ctx, models.ProjectPatch{Slug: ptr("b"), Title: ptr("B")}, WriteOptions{FallbackToFilesystem: true})
	require.NoError(t, err)
	assert.Contains(t, remote.records, "b")
	assert.NotContains(t, files.records, "b")
}

func TestCreateValidationAndDuplicate(t *testing.T) {
	remote := newMemProjects(models.Project{Slug: "taken", Title: "T"})
	repo := NewProjects(remote, nil, nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.ProjectPatch{Slug: ptr("x")}, WriteOptions{})
	assert.True(t, IsValidation(err))

	_, err = repo.Create(ctx, models.ProjectPatch{Slug: ptr("taken"), Title: ptr("Other")}, WriteOptions{})
	assert.True(t, IsDuplicateSlug(err))
	assert.Equal(t, "T", remote.records["taken"].Title, "a failed create leaves state unchanged")
}

func TestUpdateMergesPatch(t *testing.T) {
	remote := newMemProjects(models.Project{
		Slug: "crm", Title: "CRM", Summary: "S", PublishedAt: "2024-01-01",
		Team: DefaultTeam, Images: []string{},
	})
	repo := NewProjects(remote, nil, nil)
	ctx := context.Background()

	updated, err := repo.Update(ctx, "crm", models.ProjectPatch{Title: ptr("CRM v2")}, WriteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "CRM v2", updated.Title)
	assert.Equal(t, "S", updated.Summary)
	assert.Equal(t, "2024-01-01", updated.PublishedAt)

	_, err = repo.Update(ctx, "missing", models.ProjectPatch{Title: ptr("X")}, WriteOptions{})
	assert.True(t, IsNotFound(err))
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	remote := newMemProjects(models.Project{Slug: "keep", Title: "K"})
	repo := NewProjects(remote, nil, nil)

	err := repo.Delete(context.Background(), "missing", WriteOptions{})
	assert.True(t, IsNotFound(err))
	assert.Len(t, remote.records, 1)
}

func TestReorderRequiresRemote(t *testing.T) {
	repo := NewProjects(nil, newMemProjects(), nil)
	err := repo.Reorder(context.Background(), []models.ReorderItem{{Slug: "a", Order: 1}})
	assert.True(t, IsConfiguration(err))
}

func TestReorderSequentialAbortsOnFirstFailure(t *testing.T) {
	remote := newMemProjects(
		models.Project{Slug: "a", Title: "A", PublishedAt: "2024-01-01"},
		models.Project{Slug: "b", Title: "B", PublishedAt: "2024-02-01"},
		models.Project{Slug: "c", Title: "C", PublishedAt: "2024-03-01"},
	)
	repo := NewProjects(remote, nil, nil)
	ctx := context.Background()

	require.NoError(t, repo.Reorder(ctx, []models.ReorderItem{{Slug: "a", Order: 1}, {Slug: "b", Order: 2}}))
	list, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].Slug, list[1].Slug, list[2].Slug})

	remote.orders = nil
	remote.failOrder = "b"
	err = repo.Reorder(ctx, []models.ReorderItem{{Slug: "c", Order: 1}, {Slug: "b", Order: 2}, {Slug: "a", Order: 3}})
	var rErr *ReorderError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, 1, rErr.Index)
	assert.Equal(t, "b", rErr.Slug)
	assert.Equal(t, []string{"c"}, remote.orders, "items after the failure are not applied")

	remote.failOrder = ""
	err = repo.Reorder(ctx, []models.ReorderItem{{Slug: "ghost", Order: 1}})
	require.ErrorAs(t, err, &rErr)
	assert.True(t, IsNotFound(err))
}

func TestReorderPrefersBatch(t *testing.T) {
	remote := &batchStore{memProjects: newMemProjects(models.Project{Slug: "a", Title: "A"})}
	repo := NewProjects(remote, nil, nil)

	require.NoError(t, repo.Reorder(context.Background(), []models.ReorderItem{{Slug: "a", Order: 4}}))
	assert.Equal(t, 1, remote.batches)
	require.NotNil(t, remote.records["a"].DisplayOrder)
	assert.Equal(t, 4, *remote.records["a"].DisplayOrder)
}

func TestReorderUnsupportedStore(t *testing.T) {
	repo := NewProjects(plainStore{newMemProjects()}, nil, nil)
	err := repo.Reorder(context.Background(), []models.ReorderItem{{Slug: "a", Order: 1}})
	assert.True(t, IsConfiguration(err))
}
