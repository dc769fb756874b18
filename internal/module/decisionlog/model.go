package decisionlog

import "time"

// DecisionLog records a decision taken while working a task: the problem,
// the options on the table, the reasoning, and a D+7 look-back filled in a
// week later.
type DecisionLog struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	TaskID           uint      `json:"task_id" gorm:"index;not null"`
	Date             time.Time `json:"date" gorm:"not null"`
	Problem          string    `json:"problem" gorm:"not null"`
	Options          string    `json:"options" gorm:"not null"`
	DecisionReason   string    `json:"decision_reason" gorm:"not null"`
	AssumptionsRisks string    `json:"assumptions_risks" gorm:"not null"`
	DPlus7Review     *string   `json:"d_plus_7_review" gorm:"column:d_plus_7_review"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName returns the table name for DecisionLog.
func (DecisionLog) TableName() string {
	return "decision_logs"
}
