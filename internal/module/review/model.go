package review

import "time"

// Type classifies when in the task lifecycle a review happens.
type Type string

// Review types.
const (
	TypePremortem Type = "PREMORTEM"
	TypeMidmortem Type = "MIDMORTEM"
	TypeRetro     Type = "RETRO"
)

// IsValid checks if the type is a known review type.
func (t Type) IsValid() bool {
	switch t {
	case TypePremortem, TypeMidmortem, TypeRetro:
		return true
	}
	return false
}

// Review is a structured retrospective note on a task.
type Review struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TaskID      uint      `json:"task_id" gorm:"index;not null"`
	ReviewType  Type      `json:"review_type" gorm:"type:varchar(20);not null"`
	Positives   string    `json:"positives" gorm:"not null"`
	Negatives   string    `json:"negatives" gorm:"not null"`
	ChangesNext string    `json:"changes_next" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the table name for Review.
func (Review) TableName() string {
	return "reviews"
}
