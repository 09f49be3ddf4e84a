package content

import (
	"regexp"
	"strings"
)

var (
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify turns a display name into a URL-safe identifier.
func Slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = nonSlugRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether slug is made only of lowercase
// alphanumerics separated by single hyphens.
func IsValidSlug(slug string) bool {
	return validSlug.MatchString(slug)
}
