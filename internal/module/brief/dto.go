package brief

import "time"

// CreateBriefRequest is the request body for creating a brief.
type CreateBriefRequest struct {
	TaskID          uint   `json:"task_id" binding:"required"`
	Purpose         string `json:"purpose" binding:"required,min=1"`
	SuccessCriteria string `json:"success_criteria" binding:"required,min=1"`
	Constraints     string `json:"constraints" binding:"required,min=1"`
	Priority        string `json:"priority" binding:"required,min=1"`
	Validation      string `json:"validation" binding:"required,min=1"`
}

// UpdateBriefRequest is the request body for partially updating a brief.
type UpdateBriefRequest struct {
	Purpose         *string `json:"purpose" binding:"omitempty,min=1"`
	SuccessCriteria *string `json:"success_criteria" binding:"omitempty,min=1"`
	Constraints     *string `json:"constraints" binding:"omitempty,min=1"`
	Priority        *string `json:"priority" binding:"omitempty,min=1"`
	Validation      *string `json:"validation" binding:"omitempty,min=1"`
}

// BriefResponse is the API representation of a brief.
type BriefResponse struct {
	ID              uint      `json:"id"`
	TaskID          uint      `json:"task_id"`
	Purpose         string    `json:"purpose"`
	SuccessCriteria string    `json:"success_criteria"`
	Constraints     string    `json:"constraints"`
	Priority        string    `json:"priority"`
	Validation      string    `json:"validation"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts a Brief to its API representation.
func (b *Brief) ToResponse() BriefResponse {
	return BriefResponse{
		ID:              b.ID,
		TaskID:          b.TaskID,
		Purpose:         b.Purpose,
		SuccessCriteria: b.SuccessCriteria,
		Constraints:     b.Constraints,
		Priority:        b.Priority,
		Validation:      b.Validation,
		CreatedAt:       b.CreatedAt,
	}
}
