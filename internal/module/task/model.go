package task

import (
	"time"
)

// State represents the lifecycle state of a task.
type State string

// Task states.
const (
	StateBacklog    State = "BACKLOG"
	StateInProgress State = "IN_PROGRESS"
	StateDone       State = "DONE"
	StatePaused     State = "PAUSED"
	StateCanceled   State = "CANCELED"
)

// IsValid checks if the state is a known task state.
func (s State) IsValid() bool {
	switch s {
	case StateBacklog, StateInProgress, StateDone, StatePaused, StateCanceled:
		return true
	}
	return false
}

// IsActive reports whether the task is still being worked toward.
// DONE and CANCELED tasks are not active.
func (s State) IsActive() bool {
	return s == StateBacklog || s == StateInProgress || s == StatePaused
}

// Task represents a unit of work within a project.
type Task struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	ProjectID  uint       `json:"project_id" gorm:"index;not null"`
	Title      string     `json:"title" gorm:"not null"`
	State      State      `json:"state" gorm:"type:varchar(20);index;default:'BACKLOG'"`
	Priority   int        `json:"priority" gorm:"default:3"` // 1 high - 5 low
	DueDate    *time.Time `json:"due_date" gorm:"index"`
	AssigneeID *uint      `json:"assignee_id" gorm:"index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Metrics maintained by callers, aggregated by the dashboard.
	ContextSwitchCount int  `json:"context_switch_count" gorm:"default:0"`
	ReworkCount        int  `json:"rework_count" gorm:"default:0"`
	DoDChecked         bool `json:"dod_checked" gorm:"column:dod_checked;default:false"`
}

// TableName returns the table name for Task.
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task is past due and still unfinished.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.State.IsActive()
}
