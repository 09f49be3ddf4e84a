package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "content.db"), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(ctx, db, DriverSQLite))
	return db
}

func slugsOf[T any](records []T, slugOf func(T) string) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, slugOf(r))
	}
	return out
}

func projectSlug(p models.Project) string { return p.Slug }

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(context.Background(), db, DriverSQLite))
}

func TestProjectTableRoundTrip(t *testing.T) {
	s := NewProjectTable(openTestDB(t))
	ctx := context.Background()

	in := models.Project{
		Slug:        "booking",
		Title:       "Booking platform",
		Summary:     "Fewer no-shows",
		Content:     "Body",
		Images:      []string{"/images/a.png", "/images/b.png"},
		PublishedAt: "2024-04-01",
		Link:        "https://example.com",
		Team:        []models.TeamMember{{Name: "Ada", Role: "Dev"}},
		Image:       "/images/a.png",
	}
	created, err := s.Insert(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.CreatedAt)
	assert.NotEmpty(t, created.UpdatedAt)
	assert.Nil(t, created.DisplayOrder)

	got, err := s.Get(ctx, "booking")
	require.NoError(t, err)
	require.NotNil(t, got)
	got.CreatedAt, got.UpdatedAt = "", ""
	assert.Equal(t, in, *got)

	missing, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectTableDefaultsTeamAndCover(t *testing.T) {
	s := NewProjectTable(openTestDB(t))
	ctx := context.Background()

	_, err := s.Insert(ctx, models.Project{Slug: "bare", Title: "Bare", PublishedAt: "2024-01-01", Images: []string{"/images/only.png"}})
	require.NoError(t, err)

	got, err := s.Get(ctx, "bare")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, content.DefaultTeam, got.Team)
	assert.Equal(t, "/images/only.png", got.Image)
}

func TestInsertDuplicateSlug(t *testing.T) {
	s := NewBlogTable(openTestDB(t))
	ctx := context.Background()

	_, err := s.Insert(ctx, models.BlogPost{Slug: "post", Title: "First", PublishedAt: "2024-01-01"})
	require.NoError(t, err)

	_, err = s.Insert(ctx, models.BlogPost{Slug: "post", Title: "Second", PublishedAt: "2024-01-01"})
	require.Error(t, err)
	assert.True(t, content.IsDuplicateSlug(err))

	got, err := s.Get(ctx, "post")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
}

func TestUpdateAndDelete(t *testing.T) {
	s := NewBlogTable(openTestDB(t))
	ctx := context.Background()

	for _, slug := range []string{"a", "b"} {
		_, err := s.Insert(ctx, models.BlogPost{Slug: slug, Title: slug, PublishedAt: "2024-01-01"})
		require.NoError(t, err)
	}

	updated, err := s.Update(ctx, "a", models.BlogPost{Slug: "a2", Title: "Renamed", Subtitle: "sub", PublishedAt: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "a2", updated.Slug)
	assert.Equal(t, "sub", updated.Subtitle)

	_, err = s.Update(ctx, "a2", models.BlogPost{Slug: "b", Title: "Clash", PublishedAt: "2024-01-01"})
	assert.True(t, content.IsDuplicateSlug(err))

	_, err = s.Update(ctx, "ghost", models.BlogPost{Slug: "ghost", Title: "G", PublishedAt: "2024-01-01"})
	assert.True(t, content.IsNotFound(err))

	require.NoError(t, s.Delete(ctx, "a2"))
	assert.True(t, content.IsNotFound(s.Delete(ctx, "a2")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListOrdering(t *testing.T) {
	s := NewProjectTable(openTestDB(t))
	ctx := context.Background()

	for _, p := range []models.Project{
		{Slug: "two", Title: "Two", PublishedAt: "2024-01-01"},
		{Slug: "none", Title: "None", PublishedAt: "2025-01-01"},
		{Slug: "one", Title: "One", PublishedAt: "2023-01-01"},
	} {
		_, err := s.Insert(ctx, p)
		require.NoError(t, err)
	}
	require.NoError(t, s.SetOrder(ctx, "two", 2))
	require.NoError(t, s.SetOrder(ctx, "one", 1))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "none"}, slugsOf(list, projectSlug))
	require.NotNil(t, list[0].DisplayOrder)
	assert.Equal(t, 1, *list[0].DisplayOrder)
	assert.Nil(t, list[2].DisplayOrder)

	assert.True(t, content.IsNotFound(s.SetOrder(ctx, "ghost", 3)))
}

func TestSetOrdersIsAtomic(t *testing.T) {
	s := NewProjectTable(openTestDB(t))
	ctx := context.Background()

	for _, slug := range []string{"a", "b"} {
		_, err := s.Insert(ctx, models.Project{Slug: slug, Title: slug, PublishedAt: "2024-01-01"})
		require.NoError(t, err)
	}

	err := s.SetOrders(ctx, []models.ReorderItem{{Slug: "a", Order: 1}, {Slug: "ghost", Order: 2}, {Slug: "b", Order: 3}})
	var rErr *content.ReorderError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, 1, rErr.Index)
	assert.Equal(t, "ghost", rErr.Slug)
	assert.True(t, content.IsNotFound(err))

	a, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, a.DisplayOrder, "a failed batch changes nothing")

	require.NoError(t, s.SetOrders(ctx, []models.ReorderItem{{Slug: "b", Order: 1}, {Slug: "a", Order: 2}}))
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, slugsOf(list, projectSlug))
}

func TestListWithoutDisplayOrderColumn(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "legacy.db"), Options{})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `CREATE TABLE blogs (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		subtitle TEXT,
		summary TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		image TEXT,
		published_at TEXT NOT NULL,
		tag TEXT,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)

	s := NewBlogTable(db)
	for _, b := range []models.BlogPost{
		{Slug: "older", Title: "Older", PublishedAt: "2023-05-01"},
		{Slug: "newer", Title: "Newer", PublishedAt: "2024-05-01"},
	} {
		_, err := s.Insert(ctx, b)
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"newer", "older"}, slugsOf(list, func(b models.BlogPost) string { return b.Slug }))
	assert.Nil(t, list[0].DisplayOrder)

	exists, err := columnExists(ctx, db, "blogs", "display_order")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, Migrate(ctx, db, DriverSQLite))
	exists, err = columnExists(ctx, db, "blogs", "display_order")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReviewTableListsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	s := NewReviewTable(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO reviews (id, slug, name, content, rating, created_at)
		VALUES ('1', 'early', 'Early', 'x', 9, '2024-01-01 00:00:00'),
		       ('2', 'late', 'Late', 'y', 0, '2025-01-01 00:00:00')`)
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "late", list[0].Slug)
	assert.Equal(t, 5, list[0].Rating, "an unrated row reads as 5")
	assert.Equal(t, 5, list[1].Rating, "out of range ratings are clamped")
}

func TestUpsertKeepsDisplayOrder(t *testing.T) {
	s := NewReviewTable(openTestDB(t))
	ctx := context.Background()

	_, err := s.Upsert(ctx, models.Review{Slug: "ada", Name: "Ada", Content: "Good", Rating: 4})
	require.NoError(t, err)
	require.NoError(t, s.SetOrder(ctx, "ada", 7))

	got, err := s.Upsert(ctx, models.Review{Slug: "ada", Name: "Ada L.", Content: "Great", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
	assert.Equal(t, 5, got.Rating)
	require.NotNil(t, got.DisplayOrder)
	assert.Equal(t, 7, *got.DisplayOrder)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
