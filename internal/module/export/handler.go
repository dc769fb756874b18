package export

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles export HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new export handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers export routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	exports := r.Group("/exports")
	{
		exports.GET("/project/:project_id/md", h.ProjectMarkdown)
	}
}

// ProjectMarkdown streams a project as a markdown document.
func (h *Handler) ProjectMarkdown(c *gin.Context) {
	projectID, err := parseID(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	content, err := h.service.ProjectMarkdown(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("project_%d.md", projectID)))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
