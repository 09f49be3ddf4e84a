package content

import (
	"go.uber.org/zap"

	"portfolio-cms/pkg/models"
)

type Projects struct {
	*Repository[models.Project, models.ProjectPatch]
}

// NewProjects builds the project repository. Pass a nil remote when no
// database is configured and a nil files when there is no content
// directory.
func NewProjects(remote, files Store[models.Project], logger *zap.Logger) *Projects {
	return &Projects{&Repository[models.Project, models.ProjectPatch]{
		kind:      models.KindProject,
		remote:    remote,
		files:     files,
		normalize: NormalizeProject,
		ensure:    EnsureProject,
		slugOf:    func(p models.Project) string { return p.Slug },
		logger:    orNop(logger),
	}}
}

type Blogs struct {
	*Repository[models.BlogPost, models.BlogPostPatch]
}

func NewBlogs(remote, files Store[models.BlogPost], logger *zap.Logger) *Blogs {
	return &Blogs{&Repository[models.BlogPost, models.BlogPostPatch]{
		kind:      models.KindBlog,
		remote:    remote,
		files:     files,
		normalize: NormalizeBlogPost,
		ensure:    EnsureBlogPost,
		slugOf:    func(b models.BlogPost) string { return b.Slug },
		logger:    orNop(logger),
	}}
}
