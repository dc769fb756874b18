package dashboard

// StateCounts is the distribution of tasks across workflow states.
type StateCounts struct {
	Backlog    int `json:"backlog"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
	Paused     int `json:"paused"`
	Canceled   int `json:"canceled"`
}

// KPIResponse carries the dashboard metrics.
type KPIResponse struct {
	// Core KPIs.
	ReworkRate            float64 `json:"rework_rate"`
	ContextSwitchesPerDay float64 `json:"context_switches_per_day"`
	DoDAdherence          float64 `json:"dod_adherence"`
	SampleValidationRate  float64 `json:"sample_validation_rate"`
	BriefCompletionRate   float64 `json:"brief_completion_rate"`

	// Additional metrics.
	DoDDefinitionRate    float64 `json:"dod_definition_rate"`
	AvgProjectCompletion float64 `json:"avg_project_completion"`

	// Counts.
	TotalProjects  int `json:"total_projects"`
	TotalTasks     int `json:"total_tasks"`
	TotalReviews   int `json:"total_reviews"`
	TotalDecisions int `json:"total_decisions"`

	// Task state distribution.
	TaskStates StateCounts `json:"task_states"`

	// Recent activity, last 7 days.
	RecentTasks     int `json:"recent_tasks"`
	RecentReviews   int `json:"recent_reviews"`
	RecentDecisions int `json:"recent_decisions"`
}
