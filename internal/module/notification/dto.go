package notification

import "time"

// ListQuery binds the notification listing filters.
type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING SENT READ DISMISSED"`
	Limit  int    `form:"limit,default=50" binding:"omitempty,gte=1,lte=200"`
}

// SettingsUpdateRequest carries partial settings changes; nil fields
// keep their current value.
type SettingsUpdateRequest struct {
	DueDateReminderDays    *int  `json:"due_date_reminder_days" binding:"omitempty,gte=0"`
	EnableDueDateReminders *bool `json:"enable_due_date_reminders"`

	EnableMissingBriefAlerts *bool `json:"enable_missing_brief_alerts"`
	EnableMissingDoDAlerts   *bool `json:"enable_missing_dod_alerts"`

	StaleTaskDays         *int  `json:"stale_task_days" binding:"omitempty,gte=1"`
	EnableStaleTaskAlerts *bool `json:"enable_stale_task_alerts"`

	EnableReviewReminders       *bool `json:"enable_review_reminders"`
	ReviewReminderFrequencyDays *int  `json:"review_reminder_frequency_days" binding:"omitempty,gte=1"`
}

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID           uint       `json:"id"`
	Type         Type       `json:"type"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Status       Status     `json:"status"`
	TaskID       *uint      `json:"task_id"`
	ProjectID    *uint      `json:"project_id"`
	ScheduledFor time.Time  `json:"scheduled_for"`
	SentAt       *time.Time `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
	DismissedAt  *time.Time `json:"dismissed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToResponse converts a Notification to its API representation.
func (n *Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		Type:         n.Type,
		Title:        n.Title,
		Message:      n.Message,
		Status:       n.Status,
		TaskID:       n.TaskID,
		ProjectID:    n.ProjectID,
		ScheduledFor: n.ScheduledFor,
		SentAt:       n.SentAt,
		ReadAt:       n.ReadAt,
		DismissedAt:  n.DismissedAt,
		CreatedAt:    n.CreatedAt,
	}
}

// SettingsResponse is the API representation of notification settings.
type SettingsResponse struct {
	ID                          uint `json:"id"`
	DueDateReminderDays         int  `json:"due_date_reminder_days"`
	EnableDueDateReminders      bool `json:"enable_due_date_reminders"`
	EnableMissingBriefAlerts    bool `json:"enable_missing_brief_alerts"`
	EnableMissingDoDAlerts      bool `json:"enable_missing_dod_alerts"`
	StaleTaskDays               int  `json:"stale_task_days"`
	EnableStaleTaskAlerts       bool `json:"enable_stale_task_alerts"`
	EnableReviewReminders       bool `json:"enable_review_reminders"`
	ReviewReminderFrequencyDays int  `json:"review_reminder_frequency_days"`
}

// ToResponse converts Settings to its API representation.
func (s *Settings) ToResponse() SettingsResponse {
	return SettingsResponse{
		ID:                          s.ID,
		DueDateReminderDays:         s.DueDateReminderDays,
		EnableDueDateReminders:      s.EnableDueDateReminders,
		EnableMissingBriefAlerts:    s.EnableMissingBriefAlerts,
		EnableMissingDoDAlerts:      s.EnableMissingDoDAlerts,
		StaleTaskDays:               s.StaleTaskDays,
		EnableStaleTaskAlerts:       s.EnableStaleTaskAlerts,
		EnableReviewReminders:       s.EnableReviewReminders,
		ReviewReminderFrequencyDays: s.ReviewReminderFrequencyDays,
	}
}
