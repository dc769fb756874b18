package sample

import "time"

// Sample is a spot-check of a task's output. The default proportion
// follows the 10% rule: review a tenth of the work before approving
// the whole.
type Sample struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"not null;index" json:"task_id"`
	Proportion float64   `gorm:"not null;default:0.1" json:"proportion"`
	Notes      *string   `json:"notes"`
	Approved   bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Sample model.
func (Sample) TableName() string {
	return "samples"
}
