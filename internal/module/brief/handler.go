package brief

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for briefs.
type Handler struct {
	service *Service
}

// NewHandler creates a new brief handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers brief routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	briefs := r.Group("/briefs")
	{
		briefs.POST("", h.Create)
		briefs.GET("", h.List)
		briefs.GET("/task/:task_id", h.GetByTask)
		briefs.PATCH("/:id", h.Update)
		briefs.DELETE("/:id", h.Delete)
	}
}

// Create handles brief creation.
//
//	@Summary		Create brief
//	@Description	Attaches a five-sentence brief to a task. Each task carries at most one.
//	@Tags			Briefs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBriefRequest	true	"Create brief request"
//	@Success		201		{object}	BriefResponse
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/briefs [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b.ToResponse())
}

// List handles listing all briefs.
func (h *Handler) List(c *gin.Context) {
	briefs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]BriefResponse, 0, len(briefs))
	for _, b := range briefs {
		result = append(result, b.ToResponse())
	}
	c.JSON(http.StatusOK, result)
}

// GetByTask handles fetching the brief attached to a task.
//
//	@Summary		Get brief by task
//	@Tags			Briefs
//	@Produce		json
//	@Param			task_id	path		int	true	"Task ID"
//	@Success		200		{object}	BriefResponse
//	@Failure		404		{object}	map[string]string
//	@Router			/briefs/task/{task_id} [get]
func (h *Handler) GetByTask(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}

	b, err := h.service.GetByTask(c.Request.Context(), taskID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, b.ToResponse())
}

// Update handles a partial brief update.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, b.ToResponse())
}

// Delete handles brief deletion.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brief deleted"})
}

// parseID parses a numeric path parameter, writing a 400 response on failure.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// handleError handles service errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBriefNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "brief_not_found"})
	case errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
	case errors.Is(err, ErrBriefExists):
		c.JSON(http.StatusConflict, gin.H{"error": "brief_already_exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
