package dod

import (
	"time"

	"github.com/lib/pq"
)

// DoD is the definition-of-done record attached 1:1 to a task.
type DoD struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	TaskID             uint           `json:"task_id" gorm:"uniqueIndex;not null"`
	DeliverableFormats string         `json:"deliverable_formats" gorm:"not null"` // e.g. "MD,PDF,PPTX"
	MandatoryChecks    pq.StringArray `json:"mandatory_checks" gorm:"type:text[];not null"`
	QualityBar         string         `json:"quality_bar" gorm:"not null"`
	Verification       string         `json:"verification" gorm:"not null"`
	Deadline           *time.Time     `json:"deadline"`
	VersionTag         string         `json:"version_tag" gorm:"default:'v0.1'"`
	CreatedAt          time.Time      `json:"created_at"`
}

// TableName returns the table name for DoD.
func (DoD) TableName() string {
	return "dods"
}
