package decisionlog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles decision log HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new decision log handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers decision log routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	decisions := r.Group("/decisions")
	{
		decisions.POST("", h.Create)
		decisions.GET("", h.List)
		decisions.GET("/task/:task_id", h.ListByTask)
		decisions.PATCH("/:id/dplus7", h.UpdateDPlus7)
		decisions.DELETE("/:id", h.Delete)
	}
}

// Create records a decision for a task.
func (h *Handler) Create(c *gin.Context) {
	var req CreateDecisionRequest
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

// List lists all decision logs.
func (h *Handler) List(c *gin.Context) {
	logs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(logs))
}

// ListByTask lists decision logs for one task.
func (h *Handler) ListByTask(c *gin.Context) {
	taskID, err := parseID(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	logs, err := h.service.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(logs))
}

// UpdateDPlus7 sets the D+7 look-back note on a decision.
func (h *Handler) UpdateDPlus7(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid decision id"})
		return
	}

	var req DPlus7UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.UpdateDPlus7(c.Request.Context(), id, req.DPlus7Review)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, d.ToResponse())
}

// Delete removes a decision log.
func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid decision id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "decision deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func toResponses(logs []*DecisionLog) []DecisionResponse {
	out := make([]DecisionResponse, 0, len(logs))
	for _, d := range logs {
		out = append(out, d.ToResponse())
	}
	return out
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDecisionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "decision_not_found"})
	case errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
