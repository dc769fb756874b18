package notification

import "time"

// Type identifies what a notification is about.
type Type string

const (
	TypeDueDateReminder Type = "DUE_DATE_REMINDER"
	TypeOverdueTask     Type = "OVERDUE_TASK"
	TypeMissingBrief    Type = "MISSING_BRIEF"
	TypeMissingDoD      Type = "MISSING_DOD"
	TypeStaleTask       Type = "STALE_TASK"
	TypeReviewSchedule  Type = "REVIEW_SCHEDULE"
)

// Status tracks a notification through its lifecycle.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSent      Status = "SENT"
	StatusRead      Status = "READ"
	StatusDismissed Status = "DISMISSED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusRead, StatusDismissed:
		return true
	}
	return false
}

// Notification is a generated alert tied to a task or project.
type Notification struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Type    Type   `json:"type" gorm:"type:varchar(30);not null;index"`
	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message" gorm:"not null"`
	Status  Status `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`

	TaskID    *uint `json:"task_id" gorm:"index"`
	ProjectID *uint `json:"project_id" gorm:"index"`

	ScheduledFor time.Time  `json:"scheduled_for" gorm:"not null"`
	SentAt       *time.Time `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
	DismissedAt  *time.Time `json:"dismissed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for Notification.
func (Notification) TableName() string {
	return "notifications"
}

// Settings is the singleton row controlling notification generation.
type Settings struct {
	ID uint `json:"id" gorm:"primaryKey"`

	DueDateReminderDays    int  `json:"due_date_reminder_days" gorm:"default:1"`
	EnableDueDateReminders bool `json:"enable_due_date_reminders" gorm:"default:true"`

	EnableMissingBriefAlerts bool `json:"enable_missing_brief_alerts" gorm:"default:true"`
	EnableMissingDoDAlerts   bool `json:"enable_missing_dod_alerts" gorm:"column:enable_missing_dod_alerts;default:true"`

	StaleTaskDays         int  `json:"stale_task_days" gorm:"default:7"`
	EnableStaleTaskAlerts bool `json:"enable_stale_task_alerts" gorm:"default:true"`

	EnableReviewReminders       bool `json:"enable_review_reminders" gorm:"default:true"`
	ReviewReminderFrequencyDays int  `json:"review_reminder_frequency_days" gorm:"default:7"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for Settings.
func (Settings) TableName() string {
	return "notification_settings"
}

// DefaultSettings returns the settings used before any are saved.
func DefaultSettings() *Settings {
	return &Settings{
		DueDateReminderDays:         1,
		EnableDueDateReminders:      true,
		EnableMissingBriefAlerts:    true,
		EnableMissingDoDAlerts:      true,
		StaleTaskDays:               7,
		EnableStaleTaskAlerts:       true,
		EnableReviewReminders:       true,
		ReviewReminderFrequencyDays: 7,
	}
}
