package sample

import "time"

// CreateSampleRequest is the request body for creating a sample.
// Updates reuse the same shape and replace the sample's content.
type CreateSampleRequest struct {
	TaskID     uint     `json:"task_id" binding:"required"`
	Proportion *float64 `json:"proportion" binding:"omitempty,gte=0,lte=1"`
	Notes      *string  `json:"notes"`
	Approved   bool     `json:"approved"`
}

// SampleResponse is the API representation of a sample.
type SampleResponse struct {
	ID         uint      `json:"id"`
	TaskID     uint      `json:"task_id"`
	Proportion float64   `json:"proportion"`
	Notes      *string   `json:"notes"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToResponse converts a Sample to its API representation.
func (s *Sample) ToResponse() SampleResponse {
	return SampleResponse{
		ID:         s.ID,
		TaskID:     s.TaskID,
		Proportion: s.Proportion,
		Notes:      s.Notes,
		Approved:   s.Approved,
		CreatedAt:  s.CreatedAt,
	}
}
