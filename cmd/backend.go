package cmd

import (
	"context"
	"database/sql"

	"portfolio-cms/pkg/config"
	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
	"portfolio-cms/pkg/store"
)

// backend holds the stores opened for one command.
type backend struct {
	db           *sql.DB
	projectFiles *store.FileStore[models.Project]
	blogFiles    *store.FileStore[models.BlogPost]
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{
		projectFiles: store.NewProjectFiles(cfg.ProjectsDir()).WithLogger(logger),
		blogFiles:    store.NewBlogFiles(cfg.BlogDir()).WithLogger(logger),
	}
	if !cfg.RemoteConfigured() {
		return b, nil
	}
	db, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, store.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		return nil, err
	}
	b.db = db
	return b, nil
}

func (b *backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// The remote stores stay untyped nil without a database, so the
// repositories see them as unconfigured.

func (b *backend) projects() *content.Projects {
	var remote content.Store[models.Project]
	if b.db != nil {
		remote = store.NewProjectTable(b.db)
	}
	return content.NewProjects(remote, b.projectFiles, logger)
}

func (b *backend) blogs() *content.Blogs {
	var remote content.Store[models.BlogPost]
	if b.db != nil {
		remote = store.NewBlogTable(b.db)
	}
	return content.NewBlogs(remote, b.blogFiles, logger)
}

func (b *backend) reviews() *content.Reviews {
	var remote content.Store[models.Review]
	if b.db != nil {
		remote = store.NewReviewTable(b.db)
	}
	return content.NewReviews(remote, logger)
}
