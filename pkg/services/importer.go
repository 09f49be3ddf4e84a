package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
)

// ImportReport lists the slugs that were written and those that failed.
type ImportReport struct {
	Imported []string `json:"imported"`
	Failed   []string `json:"failed"`
}

func (r *ImportReport) Merge(other ImportReport) {
	r.Imported = append(r.Imported, other.Imported...)
	r.Failed = append(r.Failed, other.Failed...)
}

type documentSource[T any] interface {
	Slugs(ctx context.Context) ([]string, error)
	Get(ctx context.Context, slug string) (*T, error)
}

type upserter[T any] interface {
	Upsert(ctx context.Context, record T) (*T, error)
}

// Importer copies content documents and the built-in testimonials into
// the database, overwriting rows with the same slug. A document that
// cannot be read or validated is logged and skipped.
type Importer struct {
	logger *zap.Logger
}

func NewImporter(logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{logger: logger}
}

func (im *Importer) ImportProjects(ctx context.Context, src documentSource[models.Project], dst upserter[models.Project]) (ImportReport, error) {
	return importDocuments(ctx, im.logger, models.KindProject, src, dst, func(slug string, p models.Project) (models.Project, error) {
		if p.Title == "" {
			p.Title = slug
		}
		p.Slug = slug
		record := content.NormalizeProject(models.ProjectPatch{}, &p)
		return record, content.EnsureProject(record)
	}, func(p models.Project) string { return p.Slug })
}

func (im *Importer) ImportBlogs(ctx context.Context, src documentSource[models.BlogPost], dst upserter[models.BlogPost]) (ImportReport, error) {
	return importDocuments(ctx, im.logger, models.KindBlog, src, dst, func(slug string, b models.BlogPost) (models.BlogPost, error) {
		if b.Title == "" {
			b.Title = slug
		}
		b.Slug = slug
		record := content.NormalizeBlogPost(models.BlogPostPatch{}, &b)
		return record, content.EnsureBlogPost(record)
	}, func(b models.BlogPost) string { return b.Slug })
}

// ImportReviews seeds the reviews table with the built-in testimonials.
func (im *Importer) ImportReviews(ctx context.Context, dst upserter[models.Review]) ImportReport {
	report := ImportReport{Imported: []string{}, Failed: []string{}}
	for _, review := range content.BuiltinTestimonials() {
		if err := ctx.Err(); err != nil {
			report.Failed = append(report.Failed, review.Slug)
			continue
		}
		if _, err := dst.Upsert(ctx, review); err != nil {
			im.logger.Error("import failed",
				zap.String("kind", string(models.KindReview)),
				zap.String("slug", review.Slug),
				zap.Error(err))
			report.Failed = append(report.Failed, review.Slug)
			continue
		}
		im.logger.Info("imported",
			zap.String("kind", string(models.KindReview)),
			zap.String("slug", review.Slug))
		report.Imported = append(report.Imported, review.Slug)
	}
	return report
}

func importDocuments[T any](
	ctx context.Context,
	logger *zap.Logger,
	kind models.Kind,
	src documentSource[T],
	dst upserter[T],
	prepare func(slug string, record T) (T, error),
	slugOf func(T) string,
) (ImportReport, error) {
	report := ImportReport{Imported: []string{}, Failed: []string{}}

	slugs, err := src.Slugs(ctx)
	if err != nil {
		return report, fmt.Errorf("list %s documents: %w", kind, err)
	}
	if len(slugs) == 0 {
		logger.Info("no documents to import", zap.String("kind", string(kind)))
		return report, nil
	}

	fail := func(slug string, err error) {
		logger.Error("import failed",
			zap.String("kind", string(kind)),
			zap.String("slug", slug),
			zap.Error(err))
		report.Failed = append(report.Failed, slug)
	}

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		doc, err := src.Get(ctx, slug)
		if err != nil {
			fail(slug, err)
			continue
		}
		if doc == nil {
			fail(slug, &content.NotFoundError{Kind: kind, Slug: slug})
			continue
		}

		record, err := prepare(slug, *doc)
		if err != nil {
			fail(slug, err)
			continue
		}
		if _, err := dst.Upsert(ctx, record); err != nil {
			fail(slug, err)
			continue
		}
		logger.Info("imported",
			zap.String("kind", string(kind)),
			zap.String("slug", slugOf(record)))
		report.Imported = append(report.Imported, slugOf(record))
	}
	return report, nil
}
