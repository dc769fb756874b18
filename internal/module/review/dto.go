package review

import "time"

// CreateReviewRequest is the request body for creating a review. Updates
// reuse the same shape and replace the review content.
type CreateReviewRequest struct {
	TaskID      uint   `json:"task_id" binding:"required"`
	ReviewType  Type   `json:"review_type" binding:"required,oneof=PREMORTEM MIDMORTEM RETRO"`
	Positives   string `json:"positives" binding:"required,min=1"`
	Negatives   string `json:"negatives" binding:"required,min=1"`
	ChangesNext string `json:"changes_next" binding:"required,min=1"`
}

// ReviewResponse is the API representation of a review.
type ReviewResponse struct {
	ID          uint      `json:"id"`
	TaskID      uint      `json:"task_id"`
	ReviewType  Type      `json:"review_type"`
	Positives   string    `json:"positives"`
	Negatives   string    `json:"negatives"`
	ChangesNext string    `json:"changes_next"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts a Review to its API representation.
func (r *Review) ToResponse() ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		TaskID:      r.TaskID,
		ReviewType:  r.ReviewType,
		Positives:   r.Positives,
		Negatives:   r.Negatives,
		ChangesNext: r.ChangesNext,
		CreatedAt:   r.CreatedAt,
	}
}
