package brief

import "time"

// Brief is the five-sentence problem statement attached 1:1 to a task:
// purpose, success criteria, constraints, priority reasoning, validation.
type Brief struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TaskID          uint      `json:"task_id" gorm:"uniqueIndex;not null"`
	Purpose         string    `json:"purpose" gorm:"not null"`
	SuccessCriteria string    `json:"success_criteria" gorm:"not null"`
	Constraints     string    `json:"constraints" gorm:"not null"`
	Priority        string    `json:"priority" gorm:"not null"`
	Validation      string    `json:"validation" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the table name for Brief.
func (Brief) TableName() string {
	return "briefs"
}
