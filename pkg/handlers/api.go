package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
	"portfolio-cms/pkg/services"
)

type projectDetail struct {
	models.Project
	HTML string `json:"html"`
}

type blogDetail struct {
	models.BlogPost
	HTML string `json:"html"`
}

func (h *Handler) ListProjects(c *gin.Context) {
	list(c, h, h.projects.Repository)
}

func (h *Handler) GetProject(c *gin.Context) {
	project, ok := get(c, h, h.projects.Repository)
	if !ok {
		return
	}
	html, err := services.RenderMarkdown(project.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectDetail{Project: *project, HTML: html})
}

func (h *Handler) ListBlogs(c *gin.Context) {
	list(c, h, h.blogs.Repository)
}

func (h *Handler) GetBlog(c *gin.Context) {
	post, ok := get(c, h, h.blogs.Repository)
	if !ok {
		return
	}
	html, err := services.RenderMarkdown(post.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogDetail{BlogPost: *post, HTML: html})
}

func (h *Handler) ReviewSummary(c *gin.Context) {
	summary, err := h.reviews.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func list[T, P any](c *gin.Context, h *Handler, repo *content.Repository[T, P]) {
	records, err := repo.FetchAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func get[T, P any](c *gin.Context, h *Handler, repo *content.Repository[T, P]) (*T, bool) {
	slug := c.Param("slug")
	record, err := repo.FetchBySlug(c.Request.Context(), slug)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	if record == nil {
		h.respondError(c, &content.NotFoundError{Kind: repo.Kind(), Slug: slug})
		return nil, false
	}
	return record, true
}
