package search

import "time"

// Content type names accepted by the unified search.
const (
	TypeProjects  = "projects"
	TypeTasks     = "tasks"
	TypeBriefs    = "briefs"
	TypeDoD       = "dod"
	TypeDecisions = "decisions"
	TypeReviews   = "reviews"
)

// AllContentTypes is the default search scope.
var AllContentTypes = []string{TypeProjects, TypeTasks, TypeBriefs, TypeDoD, TypeDecisions, TypeReviews}

// UnifiedQuery binds the unified search query parameters.
type UnifiedQuery struct {
	Q     string   `form:"q" binding:"required,min=2"`
	Types []string `form:"types" binding:"omitempty,dive,oneof=projects tasks briefs dod decisions reviews"`
	Limit int      `form:"limit,default=50" binding:"omitempty,gte=1,lte=200"`
}

// PatternQuery binds the decision-pattern query parameters.
type PatternQuery struct {
	Q     string `form:"q" binding:"required,min=3"`
	Limit int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=50"`
}

// Result is one unified search hit.
type Result struct {
	ID             uint      `json:"id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ProjectID      uint      `json:"project_id,omitempty"`
	TaskID         uint      `json:"task_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	RelevanceScore float64   `json:"relevance_score"`
}

// UnifiedResponse groups search hits by content type.
type UnifiedResponse struct {
	Results      map[string][]Result `json:"results"`
	Query        string              `json:"query"`
	TotalResults int                 `json:"total_results"`
}

// SimilarProject is a keyword-overlap match against another project.
type SimilarProject struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	SimilarityScore float64   `json:"similarity_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// DecisionPattern is a past decision matching a problem description.
type DecisionPattern struct {
	ID             uint      `json:"id"`
	Problem        string    `json:"problem"`
	Options        string    `json:"options"`
	Decision       string    `json:"decision"`
	Risks          string    `json:"risks"`
	DPlus7Review   *string   `json:"d_plus_7_review"`
	HasReview      bool      `json:"has_review"`
	TaskID         uint      `json:"task_id"`
	CreatedAt      time.Time `json:"created_at"`
	RelevanceScore float64   `json:"relevance_score"`
}

// ContentSummary counts searchable records per content type.
type ContentSummary struct {
	Projects  int64 `json:"projects"`
	Tasks     int64 `json:"tasks"`
	Briefs    int64 `json:"briefs"`
	DoD       int64 `json:"dod"`
	Decisions int64 `json:"decisions"`
	Reviews   int64 `json:"reviews"`
	Total     int64 `json:"total"`
}

// ProjectSummary is the slim project shape embedded in suggestions.
type ProjectSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Suggestions bundles project-scoped recommendations.
type Suggestions struct {
	SimilarProjects  []SimilarProject  `json:"similar_projects"`
	RelatedDecisions []DecisionPattern `json:"related_decisions"`
	Recommendations  []string          `json:"recommendations"`
}

// SuggestionsResponse is the suggestions endpoint payload.
type SuggestionsResponse struct {
	Project     ProjectSummary `json:"project"`
	Suggestions Suggestions    `json:"suggestions"`
}
