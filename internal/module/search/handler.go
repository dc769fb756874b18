package search

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles search HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new search handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers search routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	search := r.Group("/search")
	{
		search.GET("", h.Unified)
		search.GET("/similar-projects/:project_id", h.SimilarProjects)
		search.GET("/decision-patterns", h.DecisionPatterns)
		search.GET("/suggestions/:project_id", h.Suggestions)
		search.GET("/stats", h.Stats)
	}
}

// Unified searches all content types for a query.
func (h *Handler) Unified(c *gin.Context) {
	var q UnifiedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Unified(c.Request.Context(), q.Q, q.Types, q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SimilarProjects finds projects similar to the given one.
func (h *Handler) SimilarProjects(c *gin.Context) {
	projectID, err := parseID(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 20 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 20"})
			return
		}
	}

	similar, err := h.service.FindSimilarProjects(c.Request.Context(), projectID, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id":       projectID,
		"similar_projects": similar,
	})
}

// DecisionPatterns finds past decisions for a problem description.
func (h *Handler) DecisionPatterns(c *gin.Context) {
	var q PatternQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patterns, err := h.service.DecisionPatterns(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":             q.Q,
		"decision_patterns": patterns,
	})
}

// Suggestions returns project-scoped recommendations.
func (h *Handler) Suggestions(c *gin.Context) {
	projectID, err := parseID(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	resp, err := h.service.ProjectSuggestions(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats reports searchable content counts.
func (h *Handler) Stats(c *gin.Context) {
	summary, err := h.service.ContentStats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content_summary": summary,
		"supported_content_types": []gin.H{
			{"type": "projects", "description": "projects (name, description)"},
			{"type": "tasks", "description": "tasks (title)"},
			{"type": "briefs", "description": "five-sentence briefs (purpose, success criteria, constraints, priority, validation)"},
			{"type": "dod", "description": "definitions of done (deliverable formats, quality bar, verification)"},
			{"type": "decisions", "description": "decision logs (problem, options, reasoning, risks)"},
			{"type": "reviews", "description": "reviews (positives, negatives, changes next)"},
		},
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
