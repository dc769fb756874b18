package notification

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles notification HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers notification routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/pending", h.ListPending)
		notifications.POST("/generate", h.Generate)
		notifications.GET("/settings", h.GetSettings)
		notifications.PATCH("/settings", h.UpdateSettings)
		notifications.GET("/stats", h.Stats)
		notifications.PATCH("/:id/mark-read", h.MarkRead)
		notifications.PATCH("/:id/dismiss", h.Dismiss)
	}
}

// List returns notifications, newest first.
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notifications, err := h.service.List(c.Request.Context(), Status(q.Status), q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(notifications))
}

// ListPending returns undelivered notifications ready for delivery.
func (h *Handler) ListPending(c *gin.Context) {
	notifications, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(notifications))
}

// Generate runs all enabled notification generators.
func (h *Handler) Generate(c *gin.Context) {
	generated, err := h.service.GenerateAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d new notifications generated", len(generated)),
		"count":   len(generated),
	})
}

// MarkRead marks a notification as read.
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// Dismiss marks a notification as dismissed.
func (h *Handler) Dismiss(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.service.Dismiss(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification dismissed"})
}

// GetSettings returns the notification settings.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetOrCreateSettings(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings.ToResponse())
}

// UpdateSettings applies partial settings changes.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "notification settings updated",
		"settings": settings.ToResponse(),
	})
}

// Stats counts notifications per status.
func (h *Handler) Stats(c *gin.Context) {
	counts, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func toResponses(notifications []*Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, n.ToResponse())
	}
	return out
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "notification_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
