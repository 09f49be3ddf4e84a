package store

import (
	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
)

type projectMeta struct {
	Title       string              `yaml:"title" toml:"title"`
	PublishedAt string              `yaml:"publishedAt" toml:"publishedAt"`
	Summary     string              `yaml:"summary" toml:"summary"`
	Images      []string            `yaml:"images" toml:"images"`
	Team        []models.TeamMember `yaml:"team" toml:"team"`
	Link        string              `yaml:"link,omitempty" toml:"link,omitempty"`
	Image       string              `yaml:"image,omitempty" toml:"image,omitempty"`
}

type blogMeta struct {
	Title       string `yaml:"title" toml:"title"`
	Subtitle    string `yaml:"subtitle,omitempty" toml:"subtitle,omitempty"`
	Summary     string `yaml:"summary" toml:"summary"`
	Image       string `yaml:"image,omitempty" toml:"image,omitempty"`
	PublishedAt string `yaml:"publishedAt" toml:"publishedAt"`
	Tag         string `yaml:"tag,omitempty" toml:"tag,omitempty"`
}

// NewProjectFiles stores projects as <dir>/<slug>.mdx.
func NewProjectFiles(dir string) *FileStore[models.Project] {
	return &FileStore[models.Project]{
		kind: models.KindProject,
		dir:  dir,
		codec: documentCodec[models.Project]{
			slugOf:      func(p models.Project) string { return p.Slug },
			publishedOf: func(p models.Project) string { return p.PublishedAt },
			encode: func(p models.Project) (any, string) {
				return projectMeta{
					Title:       p.Title,
					PublishedAt: p.PublishedAt,
					Summary:     p.Summary,
					Images:      p.Images,
					Team:        p.Team,
					Link:        p.Link,
					Image:       p.Image,
				}, p.Content
			},
			decode: func(slug string, raw []byte, format string, body string) (models.Project, error) {
				var meta projectMeta
				if err := DecodeFrontMatter(raw, format, &meta); err != nil {
					return models.Project{}, err
				}
				team := meta.Team
				if len(team) == 0 {
					team = append([]models.TeamMember(nil), content.DefaultTeam...)
				}
				images := meta.Images
				if images == nil {
					images = []string{}
				}
				image := meta.Image
				if image == "" && len(images) > 0 {
					image = images[0]
				}
				return models.Project{
					Slug:        slug,
					Title:       meta.Title,
					Summary:     meta.Summary,
					Content:     body,
					Images:      images,
					PublishedAt: meta.PublishedAt,
					Link:        meta.Link,
					Team:        team,
					Image:       image,
				}, nil
			},
		},
	}
}

// NewBlogFiles stores blog posts as <dir>/<slug>.mdx.
func NewBlogFiles(dir string) *FileStore[models.BlogPost] {
	return &FileStore[models.BlogPost]{
		kind: models.KindBlog,
		dir:  dir,
		codec: documentCodec[models.BlogPost]{
			slugOf:      func(b models.BlogPost) string { return b.Slug },
			publishedOf: func(b models.BlogPost) string { return b.PublishedAt },
			encode: func(b models.BlogPost) (any, string) {
				return blogMeta{
					Title:       b.Title,
					Subtitle:    b.Subtitle,
					Summary:     b.Summary,
					Image:       b.Image,
					PublishedAt: b.PublishedAt,
					Tag:         b.Tag,
				}, b.Content
			},
			decode: func(slug string, raw []byte, format string, body string) (models.BlogPost, error) {
				var meta blogMeta
				if err := DecodeFrontMatter(raw, format, &meta); err != nil {
					return models.BlogPost{}, err
				}
				return models.BlogPost{
					Slug:        slug,
					Title:       meta.Title,
					Subtitle:    meta.Subtitle,
					Summary:     meta.Summary,
					Content:     body,
					Image:       meta.Image,
					PublishedAt: meta.PublishedAt,
					Tag:         meta.Tag,
				}, nil
			},
		},
	}
}
