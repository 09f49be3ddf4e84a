package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-cms/pkg/content"
	"portfolio-cms/pkg/models"
)

type reorderRequest struct {
	Type  models.Kind          `json:"type" binding:"required,oneof=projects blogs reviews"`
	Items []models.ReorderItem `json:"items" binding:"required,dive"`
}

func (h *Handler) AdminGetProject(c *gin.Context) { show(c, h, h.projects.Repository) }
func (h *Handler) CreateProject(c *gin.Context)   { create(c, h, h.projects.Repository) }
func (h *Handler) UpdateProject(c *gin.Context)   { update(c, h, h.projects.Repository) }
func (h *Handler) DeleteProject(c *gin.Context)   { remove(c, h, h.projects.Repository) }

func (h *Handler) AdminGetBlog(c *gin.Context) { show(c, h, h.blogs.Repository) }
func (h *Handler) CreateBlog(c *gin.Context)   { create(c, h, h.blogs.Repository) }
func (h *Handler) UpdateBlog(c *gin.Context)   { update(c, h, h.blogs.Repository) }
func (h *Handler) DeleteBlog(c *gin.Context)   { remove(c, h, h.blogs.Repository) }

func (h *Handler) AdminGetReview(c *gin.Context) { show(c, h, h.reviews.Repository) }
func (h *Handler) CreateReview(c *gin.Context)   { create(c, h, h.reviews.Repository) }
func (h *Handler) UpdateReview(c *gin.Context)   { update(c, h, h.reviews.Repository) }
func (h *Handler) DeleteReview(c *gin.Context)   { remove(c, h, h.reviews.Repository) }

// Reorder assigns display orders to one content type.
func (h *Handler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Type {
	case models.KindProject:
		err = h.projects.Reorder(ctx, req.Items)
	case models.KindBlog:
		err = h.blogs.Reorder(ctx, req.Items)
	case models.KindReview:
		err = h.reviews.Reorder(ctx, req.Items)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func show[T, P any](c *gin.Context, h *Handler, repo *content.Repository[T, P]) {
	record, ok := get(c, h, repo)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, record)
}

func create[T, P any](c *gin.Context, h *Handler, repo *content.Repository[T, P]) {
	opts, err := h.writeOptions(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	record, err := repo.Create(c.Request.Context(), patch, opts)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func update[T, P any](c *gin.Context, h *Handler, repo *content.Repository[T, P]) {
	opts, err := h.writeOptions(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	record, err := repo.Update(c.Request.Context(), c.Param("slug"), patch, opts)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func remove[T, P any](c *gin.Context, h *Handler, repo *content.Repository[T, P]) {
	opts, err := h.writeOptions(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := repo.Delete(c.Request.Context(), c.Param("slug"), opts); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
