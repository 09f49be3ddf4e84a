package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/services"
)

// Handler serves the public and admin content API.
type Handler struct {
	projects *content.Projects
	blogs    *content.Blogs
	reviews  *content.Reviews
	media    *services.Media
	// fallbackDefault applies when a write request does not say whether
	// it may fall back to the filesystem.
	fallbackDefault bool
	logger          *zap.Logger
}

func New(projects *content.Projects, blogs *content.Blogs, reviews *content.Reviews, media *services.Media, fallbackDefault bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		projects:        projects,
		blogs:           blogs,
		reviews:         reviews,
		media:           media,
		fallbackDefault: fallbackDefault,
		logger:          logger,
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": h.projects.RemoteConfigured(),
	})
}

// writeOptions reads ?fallbackToFilesystem=, defaulting to the configured
// value when absent.
func (h *Handler) writeOptions(c *gin.Context) (content.WriteOptions, error) {
	raw, ok := c.GetQuery("fallbackToFilesystem")
	if !ok || raw == "" {
		return content.WriteOptions{FallbackToFilesystem: h.fallbackDefault}, nil
	}
	fallback, err := strconv.ParseBool(raw)
	if err != nil {
		return content.WriteOptions{}, &content.ValidationError{Field: "fallbackToFilesystem", Reason: "must be true or false"}
	}
	return content.WriteOptions{FallbackToFilesystem: fallback}, nil
}

func statusOf(err error) int {
	switch {
	case content.IsConfiguration(err):
		return http.StatusServiceUnavailable
	case content.IsValidation(err):
		return http.StatusBadRequest
	case content.IsDuplicateSlug(err):
		return http.StatusConflict
	case content.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": msg}. Errors without a domain type
// are logged and reported generically.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	var reorderErr *content.ReorderError
	if errors.As(err, &reorderErr) {
		body["index"] = reorderErr.Index
		body["slug"] = reorderErr.Slug
	}
	c.JSON(status, body)
}

// bindError reports a malformed request body.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}
