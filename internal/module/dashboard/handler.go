package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles dashboard HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new dashboard handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers dashboard routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/kpi", h.KPIs)
	}
}

// KPIs returns the computed dashboard metrics.
func (h *Handler) KPIs(c *gin.Context) {
	kpis, err := h.service.KPIs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, kpis)
}
