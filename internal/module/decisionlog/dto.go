package decisionlog

import "time"

// CreateDecisionRequest is the request body for creating a decision log.
type CreateDecisionRequest struct {
	TaskID           uint      `json:"task_id" binding:"required"`
	Date             time.Time `json:"date" binding:"required"`
	Problem          string    `json:"problem" binding:"required,min=1"`
	Options          string    `json:"options" binding:"required,min=1"`
	DecisionReason   string    `json:"decision_reason" binding:"required,min=1"`
	AssumptionsRisks string    `json:"assumptions_risks" binding:"required,min=1"`
}

// DPlus7UpdateRequest sets only the D+7 look-back column.
type DPlus7UpdateRequest struct {
	DPlus7Review string `json:"d_plus_7_review" binding:"required,min=1"`
}

// DecisionResponse is the API representation of a decision log.
type DecisionResponse struct {
	ID               uint      `json:"id"`
	TaskID           uint      `json:"task_id"`
	Date             time.Time `json:"date"`
	Problem          string    `json:"problem"`
	Options          string    `json:"options"`
	DecisionReason   string    `json:"decision_reason"`
	AssumptionsRisks string    `json:"assumptions_risks"`
	DPlus7Review     *string   `json:"d_plus_7_review"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToResponse converts a DecisionLog to its API representation.
func (d *DecisionLog) ToResponse() DecisionResponse {
	return DecisionResponse{
		ID:               d.ID,
		TaskID:           d.TaskID,
		Date:             d.Date,
		Problem:          d.Problem,
		Options:          d.Options,
		DecisionReason:   d.DecisionReason,
		AssumptionsRisks: d.AssumptionsRisks,
		DPlus7Review:     d.DPlus7Review,
		CreatedAt:        d.CreatedAt,
	}
}
