package dod

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for DoD records.
type Handler struct {
	service *Service
}

// NewHandler creates a new DoD handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers DoD routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dods := r.Group("/dod")
	{
		dods.POST("", h.Create)
		dods.GET("", h.List)
		dods.GET("/task/:task_id", h.GetByTask)
		dods.PATCH("/:id", h.Update)
		dods.DELETE("/:id", h.Delete)
	}
}

// Create handles DoD creation.
//
//	@Summary		Create DoD
//	@Description	Attaches a definition-of-done to a task and marks the task dod_checked.
//	@Tags			DoD
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateDoDRequest	true	"Create DoD request"
//	@Success		201		{object}	DoDResponse
//	@Failure		404		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Router			/dod [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateDoDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, d.ToResponse())
}

// List handles listing all DoDs.
func (h *Handler) List(c *gin.Context) {
	dods, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]DoDResponse, 0, len(dods))
	for _, d := range dods {
		result = append(result, d.ToResponse())
	}
	c.JSON(http.StatusOK, result)
}

// GetByTask handles fetching the DoD attached to a task.
func (h *Handler) GetByTask(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}

	d, err := h.service.GetByTask(c.Request.Context(), taskID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, d.ToResponse())
}

// Update handles a full-replacement DoD update.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateDoDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, d.ToResponse())
}

// Delete handles DoD deletion, resetting the task's dod_checked flag.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "DoD deleted"})
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
	case errors.Is(err, ErrDoDNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "dod_not_found"})
	case errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
	case errors.Is(err, ErrDoDExists):
		c.JSON(http.StatusConflict, gin.H{"error": "dod_already_exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
