package project

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for projects.
type Handler struct {
	service *Service
}

// NewHandler creates a new project handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers project routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	{
		projects.POST("", h.Create)
		projects.GET("", h.List)
		projects.GET("/:id", h.Get)
		projects.PATCH("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
	}
}

// Create handles project creation.
//
//	@Summary		Create project
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProjectRequest	true	"Create project request"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	map[string]string
//	@Router			/projects [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p.ToResponse())
}

// List handles listing projects with task counts.
//
//	@Summary		List projects
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{array}	ProjectWithStats
//	@Router			/projects [get]
func (h *Handler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// Get handles getting a single project.
//
//	@Summary		Get project
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		int	true	"Project ID"
//	@Success		200	{object}	ProjectResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/projects/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, p.ToResponse())
}

// Update handles a partial project update.
//
//	@Summary		Update project
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Project ID"
//	@Param			request	body		UpdateProjectRequest	true	"Update project request"
//	@Success		200		{object}	ProjectResponse
//	@Failure		404		{object}	map[string]string
//	@Router			/projects/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, p.ToResponse())
}

// Delete handles project deletion including all of its tasks.
//
//	@Summary		Delete project
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		int	true	"Project ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/projects/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// parseID parses a numeric path parameter, writing a 400 response on failure.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// handleError handles service errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
