package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
	"portfolio-cms/pkg/store"
)

type recordingUpserter[T any] struct {
	saved  []T
	failOn func(T) bool
}

func (u *recordingUpserter[T]) Upsert(ctx context.Context, record T) (*T, error) {
	if u.failOn != nil && u.failOn(record) {
		return nil, errors.New("write failed")
	}
	u.saved = append(u.saved, record)
	return &record, nil
}

func writeDoc(t *testing.T, dir, name, doc string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644))
}

func TestImportProjects(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "erp.mdx", "---\ntitle: ERP\npublishedAt: \"2024-01-01\"\nimages:\n  - /images/erp.png\n---\nBody\n")
	writeDoc(t, dir, "untitled.mdx", "---\npublishedAt: \"2024-02-01\"\n---\n")
	writeDoc(t, dir, "broken.mdx", "---\ntitle: [unclosed\n---\n")
	writeDoc(t, dir, "Bad Name.mdx", "---\ntitle: X\n---\n")

	dst := &recordingUpserter[models.Project]{}
	report, err := NewImporter(nil).ImportProjects(context.Background(), store.NewProjectFiles(dir), dst)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"erp", "untitled"}, report.Imported)
	assert.ElementsMatch(t, []string{"broken", "Bad Name"}, report.Failed)

	bySlug := map[string]models.Project{}
	for _, p := range dst.saved {
		bySlug[p.Slug] = p
	}
	assert.Equal(t, "untitled", bySlug["untitled"].Title, "a missing title falls back to the slug")
	assert.Equal(t, content.DefaultTeam, bySlug["erp"].Team)
	assert.Equal(t, "/images/erp.png", bySlug["erp"].Image)
}

func TestImportBlogsContinuesAfterWriteFailure(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.mdx", "---\ntitle: A\npublishedAt: \"2024-01-01\"\n---\nA\n")
	writeDoc(t, dir, "b.mdx", "---\ntitle: B\npublishedAt: \"2024-01-02\"\n---\nB\n")

	dst := &recordingUpserter[models.BlogPost]{failOn: func(b models.BlogPost) bool { return b.Slug == "a" }}
	report, err := NewImporter(nil).ImportBlogs(context.Background(), store.NewBlogFiles(dir), dst)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, report.Imported)
	assert.Equal(t, []string{"a"}, report.Failed)
}

func TestImportMissingDirectory(t *testing.T) {
	dst := &recordingUpserter[models.BlogPost]{}
	report, err := NewImporter(nil).ImportBlogs(context.Background(), store.NewBlogFiles(filepath.Join(t.TempDir(), "none")), dst)
	require.NoError(t, err)
	assert.Empty(t, report.Imported)
	assert.Empty(t, report.Failed)
}

func TestImportReviewsSeedsBuiltins(t *testing.T) {
	dst := &recordingUpserter[models.Review]{}
	report := NewImporter(nil).ImportReviews(context.Background(), dst)
	assert.Len(t, report.Imported, len(content.BuiltinTestimonials()))
	assert.Empty(t, report.Failed)

	var merged ImportReport
	merged.Merge(report)
	merged.Merge(ImportReport{Failed: []string{"x"}})
	assert.Len(t, merged.Imported, len(report.Imported))
	assert.Equal(t, []string{"x"}, merged.Failed)
}
