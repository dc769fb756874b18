package template

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler handles template HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new template handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers template routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	templates := r.Group("/templates")
	{
		templates.POST("/init-system-templates", h.InitSystemTemplates)
		templates.GET("", h.List)
		templates.GET("/recommend", h.Recommend)
		templates.GET("/categories/stats", h.Categories)
		templates.GET("/best-practices", h.BestPractices)
		templates.GET("/stats/overview", h.Stats)
		templates.GET("/:id", h.Get)
		templates.POST("/:id/use", h.RecordUsage)
		templates.POST("/generate-from-project/:project_id", h.GenerateFromProject)
	}
}

// InitSystemTemplates seeds the built-in templates.
func (h *Handler) InitSystemTemplates(c *gin.Context) {
	if err := h.service.SeedSystemTemplates(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "system templates initialized"})
}

// List returns templates matching the query filters.
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if q.Category != "" && !Category(q.Category).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	filter := ListFilter{
		Category:      Category(q.Category),
		TemplateType:  Type(q.TemplateType),
		IncludeSystem: q.IncludeSystem == nil || *q.IncludeSystem,
		IncludeAI:     q.IncludeAI == nil || *q.IncludeAI,
		Limit:         q.Limit,
	}

	templates, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		result = append(result, t.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"templates": result,
		"total":     len(result),
	})
}

// Recommend scores templates against comma-separated keywords.
func (h *Handler) Recommend(c *gin.Context) {
	var q RecommendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var keywords []string
	for _, kw := range strings.Split(q.Keywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one keyword is required"})
		return
	}

	recs, err := h.service.Recommend(c.Request.Context(), keywords, q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"keywords":        keywords,
		"recommendations": recs,
	})
}

// Get returns one template.
func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t.ToResponse())
}

// GenerateFromProject extracts templates from a completed project.
func (h *Handler) GenerateFromProject(c *gin.Context) {
	projectID, err := parseID(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	generated, err := h.service.GenerateFromProject(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "templates generated from project",
		"generated_templates": generated,
	})
}

// RecordUsage logs a template application.
func (h *Handler) RecordUsage(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RecordUsage(c.Request.Context(), id, &req); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "template usage recorded"})
}

// Categories describes every template category.
func (h *Handler) Categories(c *gin.Context) {
	categories := []gin.H{
		{"value": CategoryWebDevelopment, "label": "Web development", "description": "Websites and web application projects"},
		{"value": CategoryMobileApp, "label": "Mobile app", "description": "iOS and Android application development"},
		{"value": CategoryDataAnalysis, "label": "Data analysis", "description": "Data analysis, machine learning, business intelligence"},
		{"value": CategoryResearch, "label": "Research", "description": "Academic research, market research, user research"},
		{"value": CategoryMarketing, "label": "Marketing", "description": "Marketing campaigns, branding, promotion"},
		{"value": CategoryDesign, "label": "Design", "description": "UI/UX, graphic and brand design"},
		{"value": CategoryInfrastructure, "label": "Infrastructure", "description": "Servers, cloud and network infrastructure"},
		{"value": CategoryAutomation, "label": "Automation", "description": "Workflow automation, scripting, bots"},
		{"value": CategoryContentCreation, "label": "Content creation", "description": "Blogs, video and educational content"},
		{"value": CategoryBusinessStrategy, "label": "Business strategy", "description": "Business planning, strategy, process improvement"},
		{"value": CategoryGeneral, "label": "General", "description": "General projects and everything else"},
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// BestPractices returns curated guidance, optionally per category.
func (h *Handler) BestPractices(c *gin.Context) {
	category := Category(c.Query("category"))
	if category != "" && !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
	}

	practices, err := h.service.BestPractices(c.Request.Context(), category, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]BestPracticeResponse, 0, len(practices))
	for _, p := range practices {
		result = append(result, p.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"best_practices": result,
		"total":          len(result),
	})
}

// Stats reports template counts and usage.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	var covered int
	for _, count := range stats.CategoryDistribution {
		if count > 0 {
			covered++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"template_stats": stats,
		"summary": gin.H{
			"total_templates":    stats.TotalTemplates,
			"system_provided":    stats.SystemTemplates,
			"generated":          stats.GeneratedTemplates,
			"user_created":       stats.UserTemplates,
			"categories_covered": covered,
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
	case errors.Is(err, ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "template_not_found"})
	case errors.Is(err, ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project_not_found"})
	case errors.Is(err, ErrNotEligible):
		c.JSON(http.StatusBadRequest, gin.H{"error": "template_generation_conditions_not_met"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
