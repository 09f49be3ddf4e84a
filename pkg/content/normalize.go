package content

import (
	"math"
	"strings"
	"time"

	"portfolio-cms/pkg/models"
)

// DefaultTeam is credited on projects that name no team of their own.
var DefaultTeam = []models.TeamMember{
	{
		Name:        "Boko Isaac",
		Role:        "Systems Architect & Automation Engineer",
		Avatar:      "/images/boko-avatar-new.png",
		ProfileLink: "https://www.linkedin.com/in/boko-isaac/",
	},
}

// today is swapped in tests.
var today = func() string {
	return time.Now().UTC().Format("2006-01-02")
}

func defaultTeam() []models.TeamMember {
	return append([]models.TeamMember(nil), DefaultTeam...)
}

// pick returns the patch value when provided, otherwise the fallback.
func pick(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

// pickNonEmpty is like pick but an empty incoming value also falls back.
func pickNonEmpty(v *string, fallback string) string {
	if v != nil {
		if s := strings.TrimSpace(*v); s != "" {
			return s
		}
	}
	return fallback
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if s := strings.TrimSpace(img); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeProject merges patch onto existing, or onto the defaults when
// existing is nil.
func NormalizeProject(patch models.ProjectPatch, existing *models.Project) models.Project {
	base := models.Project{PublishedAt: today(), Team: defaultTeam()}
	if existing != nil {
		base = *existing
	}

	images := base.Images
	if patch.Images != nil {
		images = *patch.Images
	}
	images = cleanImages(images)

	team := base.Team
	if patch.Team != nil && len(*patch.Team) > 0 {
		team = *patch.Team
	}
	if len(team) == 0 {
		team = defaultTeam()
	}

	image := base.Image
	if patch.Image != nil {
		image = strings.TrimSpace(*patch.Image)
	}
	if image == "" && len(images) > 0 {
		image = images[0]
	}

	publishedAt := pick(patch.PublishedAt, base.PublishedAt)
	if publishedAt == "" {
		publishedAt = today()
	}

	link := base.Link
	if patch.Link != nil {
		link = strings.TrimSpace(*patch.Link)
	}

	return models.Project{
		Slug:         strings.ToLower(strings.TrimSpace(pick(patch.Slug, base.Slug))),
		Title:        strings.TrimSpace(pick(patch.Title, base.Title)),
		Summary:      strings.TrimSpace(pick(patch.Summary, base.Summary)),
		Content:      pick(patch.Content, base.Content),
		Images:       images,
		PublishedAt:  publishedAt,
		Link:         link,
		Team:         team,
		Image:        image,
		CreatedAt:    base.CreatedAt,
		UpdatedAt:    base.UpdatedAt,
		DisplayOrder: base.DisplayOrder,
	}
}

func NormalizeBlogPost(patch models.BlogPostPatch, existing *models.BlogPost) models.BlogPost {
	base := models.BlogPost{PublishedAt: today()}
	if existing != nil {
		base = *existing
	}

	publishedAt := pick(patch.PublishedAt, base.PublishedAt)
	if publishedAt == "" {
		publishedAt = today()
	}

	return models.BlogPost{
		Slug:         strings.ToLower(strings.TrimSpace(pick(patch.Slug, base.Slug))),
		Title:        strings.TrimSpace(pick(patch.Title, base.Title)),
		Subtitle:     strings.TrimSpace(pick(patch.Subtitle, base.Subtitle)),
		Summary:      strings.TrimSpace(pick(patch.Summary, base.Summary)),
		Content:      pick(patch.Content, base.Content),
		Image:        strings.TrimSpace(pick(patch.Image, base.Image)),
		PublishedAt:  publishedAt,
		Tag:          strings.TrimSpace(pick(patch.Tag, base.Tag)),
		CreatedAt:    base.CreatedAt,
		UpdatedAt:    base.UpdatedAt,
		DisplayOrder: base.DisplayOrder,
	}
}

func NormalizeReview(patch models.ReviewPatch, existing *models.Review) models.Review {
	base := models.Review{Rating: 5}
	if existing != nil {
		base = *existing
	}

	name := pickNonEmpty(patch.Name, base.Name)

	slug := pickNonEmpty(patch.Slug, base.Slug)
	if slug == "" {
		slug = Slugify(name)
	}

	rating := float64(base.Rating)
	if patch.Rating != nil {
		rating = *patch.Rating
	}

	return models.Review{
		Slug:         strings.ToLower(strings.TrimSpace(slug)),
		Name:         name,
		Role:         pickNonEmpty(patch.Role, base.Role),
		Company:      pickNonEmpty(patch.Company, base.Company),
		Content:      pick(patch.Content, base.Content),
		Rating:       ClampRating(rating),
		Avatar:       pickNonEmpty(patch.Avatar, base.Avatar),
		CreatedAt:    base.CreatedAt,
		UpdatedAt:    base.UpdatedAt,
		DisplayOrder: base.DisplayOrder,
	}
}

// ClampRating maps any input onto 1..5. Zero and NaN mean "not rated"
// and become 5.
func ClampRating(rating float64) int {
	if rating == 0 || math.IsNaN(rating) {
		return 5
	}
	r := math.Round(rating)
	return int(math.Min(5, math.Max(1, r)))
}

func ensureSlug(slug string) error {
	if slug == "" {
		return &ValidationError{Field: "slug"}
	}
	if !IsValidSlug(slug) {
		return &ValidationError{Field: "slug", Reason: "must contain only lowercase letters, digits and single hyphens"}
	}
	return nil
}

func EnsureProject(p models.Project) error {
	if err := ensureSlug(p.Slug); err != nil {
		return err
	}
	if p.Title == "" {
		return &ValidationError{Field: "title"}
	}
	return nil
}

func EnsureBlogPost(b models.BlogPost) error {
	if err := ensureSlug(b.Slug); err != nil {
		return err
	}
	if b.Title == "" {
		return &ValidationError{Field: "title"}
	}
	return nil
}

func EnsureReview(r models.Review) error {
	if err := ensureSlug(r.Slug); err != nil {
		return err
	}
	if r.Name == "" {
		return &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(r.Content) == "" {
		return &ValidationError{Field: "content"}
	}
	return nil
}
