package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMedia(c *gin.Context) {
	files, err := h.media.List()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": files})
}

func (h *Handler) UploadMedia(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	src, err := header.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer src.Close()

	file, err := h.media.Save(header.Filename, header.Size, src)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"path":     file.Path,
		"filename": file.Name,
	})
}

func (h *Handler) DeleteMedia(c *gin.Context) {
	if err := h.media.Delete(c.Param("name")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
