package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
)

// NewProjectTable returns the remote store for projects.
func NewProjectTable(db *sql.DB) *SQLStore[models.Project] {
	return &SQLStore[models.Project]{
		db:   db,
		kind: models.KindProject,
		mapping: tableMapping[models.Project]{
			columns:   []string{"slug", "title", "summary", "content", "images", "published_at", "link", "team", "image"},
			dateOrder: "published_at DESC",
			slugOf:    func(p models.Project) string { return p.Slug },
			values: func(p models.Project) ([]any, error) {
				images := p.Images
				if images == nil {
					images = []string{}
				}
				imagesJSON, err := json.Marshal(images)
				if err != nil {
					return nil, fmt.Errorf("encode images: %w", err)
				}
				teamJSON, err := json.Marshal(p.Team)
				if err != nil {
					return nil, fmt.Errorf("encode team: %w", err)
				}
				return []any{
					p.Slug, p.Title, p.Summary, p.Content, string(imagesJSON),
					p.PublishedAt, nullString(p.Link), string(teamJSON), nullString(p.Image),
				}, nil
			},
			scan: scanProject,
		},
	}
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p                    models.Project
		images, team         sql.NullString
		link, image          sql.NullString
		order                sql.NullInt64
		createdAt, updatedAt sql.NullString
	)
	err := row.Scan(&p.Slug, &p.Title, &p.Summary, &p.Content, &images,
		&p.PublishedAt, &link, &team, &image, &order, &createdAt, &updatedAt)
	if err != nil {
		return models.Project{}, err
	}

	p.Images = []string{}
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &p.Images); err != nil {
			return models.Project{}, fmt.Errorf("decode images of %q: %w", p.Slug, err)
		}
	}
	if team.Valid && team.String != "" {
		if err := json.Unmarshal([]byte(team.String), &p.Team); err != nil {
			return models.Project{}, fmt.Errorf("decode team of %q: %w", p.Slug, err)
		}
	}
	if len(p.Team) == 0 {
		p.Team = append([]models.TeamMember(nil), content.DefaultTeam...)
	}
	p.Link = link.String
	p.Image = image.String
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	p.DisplayOrder = intPtr(order)
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}

// NewBlogTable returns the remote store for blog posts.
func NewBlogTable(db *sql.DB) *SQLStore[models.BlogPost] {
	return &SQLStore[models.BlogPost]{
		db:   db,
		kind: models.KindBlog,
		mapping: tableMapping[models.BlogPost]{
			columns:   []string{"slug", "title", "subtitle", "summary", "content", "image", "published_at", "tag"},
			dateOrder: "published_at DESC",
			slugOf:    func(b models.BlogPost) string { return b.Slug },
			values: func(b models.BlogPost) ([]any, error) {
				return []any{
					b.Slug, b.Title, nullString(b.Subtitle), b.Summary, b.Content,
					nullString(b.Image), b.PublishedAt, nullString(b.Tag),
				}, nil
			},
			scan: scanBlogPost,
		},
	}
}

func scanBlogPost(row rowScanner) (models.BlogPost, error) {
	var (
		b                    models.BlogPost
		subtitle, image, tag sql.NullString
		order                sql.NullInt64
		createdAt, updatedAt sql.NullString
	)
	err := row.Scan(&b.Slug, &b.Title, &subtitle, &b.Summary, &b.Content,
		&image, &b.PublishedAt, &tag, &order, &createdAt, &updatedAt)
	if err != nil {
		return models.BlogPost{}, err
	}
	b.Subtitle = subtitle.String
	b.Image = image.String
	b.Tag = tag.String
	b.DisplayOrder = intPtr(order)
	b.CreatedAt = createdAt.String
	b.UpdatedAt = updatedAt.String
	return b, nil
}

// NewReviewTable returns the remote store for reviews. Reviews have no
// publication date and list newest first by creation time.
func NewReviewTable(db *sql.DB) *SQLStore[models.Review] {
	return &SQLStore[models.Review]{
		db:   db,
		kind: models.KindReview,
		mapping: tableMapping[models.Review]{
			columns: []string{"slug", "name", "role", "company", "content", "rating", "avatar"},
			slugOf:  func(r models.Review) string { return r.Slug },
			values: func(r models.Review) ([]any, error) {
				return []any{
					r.Slug, r.Name, nullString(r.Role), nullString(r.Company),
					r.Content, content.ClampRating(float64(r.Rating)), nullString(r.Avatar),
				}, nil
			},
			scan: scanReview,
		},
	}
}

func scanReview(row rowScanner) (models.Review, error) {
	var (
		r                     models.Review
		role, company, avatar sql.NullString
		rating                sql.NullInt64
		order                 sql.NullInt64
		createdAt, updatedAt  sql.NullString
	)
	err := row.Scan(&r.Slug, &r.Name, &role, &company, &r.Content,
		&rating, &avatar, &order, &createdAt, &updatedAt)
	if err != nil {
		return models.Review{}, err
	}
	r.Role = role.String
	r.Company = company.String
	r.Rating = content.ClampRating(float64(rating.Int64))
	r.Avatar = avatar.String
	r.DisplayOrder = intPtr(order)
	r.CreatedAt = createdAt.String
	r.UpdatedAt = updatedAt.String
	return r, nil
}
