package models

// TeamMember is a person credited on a project.
type TeamMember struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty" toml:"role,omitempty"`
	Avatar      string `json:"avatar,omitempty" yaml:"avatar,omitempty" toml:"avatar,omitempty"`
	ProfileLink string `json:"profileLink,omitempty" yaml:"profileLink,omitempty" toml:"profileLink,omitempty"`
}

// ReorderItem assigns a manual display order to one record.
type ReorderItem struct {
	Slug  string `json:"slug" binding:"required"`
	Order int    `json:"order"`
}

// Kind names a content type. It doubles as the remote table name.
type Kind string

const (
	KindProject Kind = "projects"
	KindBlog    Kind = "blogs"
	KindReview  Kind = "reviews"
)
