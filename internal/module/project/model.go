package project

import (
	"time"
)

// Project represents a unit of work grouping related tasks.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner_id" gorm:"index;not null"`
	IsPrivate   bool      `json:"is_private" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the table name for Project.
func (Project) TableName() string {
	return "projects"
}
