package template

import "time"

// ListQuery binds the template listing filters.
type ListQuery struct {
	Category      string `form:"category" binding:"omitempty"`
	TemplateType  string `form:"template_type" binding:"omitempty,oneof=BRIEF DOD PROJECT"`
	IncludeSystem *bool  `form:"include_system"`
	IncludeAI     *bool  `form:"include_generated"`
	Limit         int    `form:"limit,default=50" binding:"omitempty,gte=1,lte=200"`
}

// RecommendQuery binds the recommendation parameters. Keywords is a
// comma-separated list.
type RecommendQuery struct {
	Keywords string `form:"keywords" binding:"required,min=2"`
	Limit    int    `form:"limit,default=5" binding:"omitempty,gte=1,lte=20"`
}

// UsageRequest is the request body for recording a template use.
type UsageRequest struct {
	UsedFor   string `json:"used_for"`
	ProjectID *uint  `json:"project_id"`
	TaskID    *uint  `json:"task_id"`
}

// TemplateResponse is the API representation of a template.
type TemplateResponse struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Category         Category       `json:"category"`
	TemplateType     Type           `json:"template_type"`
	Content          map[string]any `json:"content"`
	IsSystemTemplate bool           `json:"is_system_template"`
	IsGenerated      bool           `json:"is_generated"`
	UsageCount       int            `json:"usage_count"`
	SuccessRate      *float64       `json:"success_rate"`
	Tags             []string       `json:"tags"`
	SourceProjectID  *uint          `json:"source_project_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ToResponse converts a Template to its API representation.
func (t *Template) ToResponse() TemplateResponse {
	tags := []string(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return TemplateResponse{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		Category:         t.Category,
		TemplateType:     t.TemplateType,
		Content:          t.Content,
		IsSystemTemplate: t.IsSystemTemplate,
		IsGenerated:      t.IsGenerated,
		UsageCount:       t.UsageCount,
		SuccessRate:      t.SuccessRate,
		Tags:             tags,
		SourceProjectID:  t.SourceProjectID,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// Recommendation pairs a template with its score and the reasons it
// matched.
type Recommendation struct {
	Template       TemplateResponse `json:"template"`
	RelevanceScore float64          `json:"relevance_score"`
	MatchReasons   []string         `json:"match_reasons"`
}

// GeneratedTemplate summarizes one template produced from a project.
type GeneratedTemplate struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Type        Type     `json:"type"`
	SuccessRate *float64 `json:"success_rate"`
}

// BestPracticeResponse is the API representation of a best practice.
type BestPracticeResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        Category  `json:"category"`
	Principles      []string  `json:"principles"`
	DoList          []string  `json:"do_list"`
	DontList        []string  `json:"dont_list"`
	Examples        []string  `json:"examples"`
	Source          string    `json:"source"`
	ConfidenceScore float64   `json:"confidence_score"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts a BestPractice to its API representation.
func (p *BestPractice) ToResponse() BestPracticeResponse {
	return BestPracticeResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Category:        p.Category,
		Principles:      p.Principles,
		DoList:          p.DoList,
		DontList:        p.DontList,
		Examples:        p.Examples,
		Source:          p.Source,
		ConfidenceScore: p.ConfidenceScore,
		Tags:            p.Tags,
		CreatedAt:       p.CreatedAt,
	}
}

// UsageSummary is one row of the most-used template listing.
type UsageSummary struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	UsageCount  int      `json:"usage_count"`
	SuccessRate *float64 `json:"success_rate"`
}

// Stats aggregates template counts and usage.
type Stats struct {
	TotalTemplates       int64            `json:"total_templates"`
	SystemTemplates      int64            `json:"system_templates"`
	GeneratedTemplates   int64            `json:"generated_templates"`
	UserTemplates        int64            `json:"user_templates"`
	CategoryDistribution map[string]int64 `json:"category_distribution"`
	MostUsedTemplates    []UsageSummary   `json:"most_used_templates"`
}
