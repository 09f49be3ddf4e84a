package models

// Project is a portfolio entry shown under /work.
type Project struct {
	Slug         string       `json:"slug"`
	Title        string       `json:"title"`
	Summary      string       `json:"summary"`
	Content      string       `json:"content"`
	Images       []string     `json:"images"`
	PublishedAt  string       `json:"publishedAt"`
	Link         string       `json:"link,omitempty"`
	Team         []TeamMember `json:"team"`
	Image        string       `json:"image,omitempty"`
	CreatedAt    string       `json:"createdAt,omitempty"`
	UpdatedAt    string       `json:"updatedAt,omitempty"`
	DisplayOrder *int         `json:"displayOrder,omitempty"`
}

// ProjectPatch carries the fields of a create or update request.
// A nil field was not provided.
type ProjectPatch struct {
	Slug        *string       `json:"slug"`
	Title       *string       `json:"title"`
	Summary     *string       `json:"summary"`
	Content     *string       `json:"content"`
	Images      *[]string     `json:"images"`
	PublishedAt *string       `json:"publishedAt"`
	Link        *string       `json:"link"`
	Team        *[]TeamMember `json:"team"`
	Image       *string       `json:"image"`
}

// BlogPost is an article shown under /blog.
type BlogPost struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Summary      string `json:"summary"`
	Content      string `json:"content"`
	Image        string `json:"image,omitempty"`
	PublishedAt  string `json:"publishedAt"`
	Tag          string `json:"tag,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
	DisplayOrder *int   `json:"displayOrder,omitempty"`
}

type BlogPostPatch struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Summary     *string `json:"summary"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	PublishedAt *string `json:"publishedAt"`
	Tag         *string `json:"tag"`
}

// Review is a client testimonial.
type Review struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	Company      string `json:"company,omitempty"`
	Content      string `json:"content"`
	Rating       int    `json:"rating"`
	Avatar       string `json:"avatar,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
	DisplayOrder *int   `json:"displayOrder,omitempty"`
}

// ReviewPatch takes the rating as a float so that fractional or
// out-of-range input can be clamped instead of rejected.
type ReviewPatch struct {
	Slug    *string  `json:"slug"`
	Name    *string  `json:"name"`
	Role    *string  `json:"role"`
	Company *string  `json:"company"`
	Content *string  `json:"content"`
	Rating  *float64 `json:"rating"`
	Avatar  *string  `json:"avatar"`
}

// ReviewSummary is derived from the full review set and never stored.
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	OverallRating float64  `json:"overallRating"`
	TotalReviews  int      `json:"totalReviews"`
}
