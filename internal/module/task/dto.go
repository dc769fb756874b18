package task

import "time"

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	ProjectID  uint       `json:"project_id" binding:"required"`
	Title      string     `json:"title" binding:"required,min=1,max=300"`
	Priority   int        `json:"priority" binding:"omitempty,min=1,max=5"`
	DueDate    *time.Time `json:"due_date"`
	AssigneeID *uint      `json:"assignee_id"`
}

// UpdateTaskRequest is the request body for partially updating a task.
// State is not updatable here; state changes go through the WIP gate.
type UpdateTaskRequest struct {
	Title              *string    `json:"title" binding:"omitempty,min=1,max=300"`
	Priority           *int       `json:"priority" binding:"omitempty,min=1,max=5"`
	DueDate            *time.Time `json:"due_date"`
	AssigneeID         *uint      `json:"assignee_id"`
	ContextSwitchCount *int       `json:"context_switch_count" binding:"omitempty,min=0"`
	ReworkCount        *int       `json:"rework_count" binding:"omitempty,min=0"`
}

// UpdateStateRequest is the request body for a state transition.
type UpdateStateRequest struct {
	State State `json:"state" binding:"required"`
}

// ListQuery holds task list filters.
type ListQuery struct {
	ProjectID uint   `form:"project_id"`
	State     string `form:"state"`
}

// TaskResponse is the API representation of a task.
type TaskResponse struct {
	ID                 uint       `json:"id"`
	ProjectID          uint       `json:"project_id"`
	Title              string     `json:"title"`
	State              State      `json:"state"`
	Priority           int        `json:"priority"`
	DueDate            *time.Time `json:"due_date"`
	AssigneeID         *uint      `json:"assignee_id"`
	ContextSwitchCount int        `json:"context_switch_count"`
	ReworkCount        int        `json:"rework_count"`
	DoDChecked         bool       `json:"dod_checked"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ToResponse converts a Task to its API representation.
func (t *Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:                 t.ID,
		ProjectID:          t.ProjectID,
		Title:              t.Title,
		State:              t.State,
		Priority:           t.Priority,
		DueDate:            t.DueDate,
		AssigneeID:         t.AssigneeID,
		ContextSwitchCount: t.ContextSwitchCount,
		ReworkCount:        t.ReworkCount,
		DoDChecked:         t.DoDChecked,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}
