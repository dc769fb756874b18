package sample

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles sample HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new sample handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers sample routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	samples := r.Group("/samples")
	{
		samples.POST("", h.Create)
		samples.GET("", h.List)
		samples.GET("/task/:task_id", h.ListByTask)
		samples.PATCH("/:id", h.Update)
		samples.DELETE("/:id", h.Delete)
	}
}

// Create records a sample for a task.
func (h *Handler) Create(c *gin.Context) {
	var req CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sm, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sm.ToResponse())
}

// List lists all samples.
func (h *Handler) List(c *gin.Context) {
	samples, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(samples))
}

// ListByTask lists samples for one task.
func (h *Handler) ListByTask(c *gin.Context) {
	taskID, err := parseID(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	samples, err := h.service.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(samples))
}

// Update replaces a sample's content.
func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sample id"})
		return
	}

	var req CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sm, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sm.ToResponse())
}

// Delete removes a sample.
func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sample id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sample deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func toResponses(samples []*Sample) []SampleResponse {
	out := make([]SampleResponse, 0, len(samples))
	for _, s := range samples {
		out = append(out, s.ToResponse())
	}
	return out
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSampleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sample_not_found"})
	case errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
