package notification

import (
	"fmt"
	"time"

	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/task"
)

// calendarDaysUntil counts calendar days from now's date to target's
// date, negative when target already passed.
func calendarDaysUntil(now, target time.Time) int {
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func dueDateNotification(t *task.Task, now time.Time) *Notification {
	days := calendarDaysUntil(now, *t.DueDate)

	var title, message string
	switch {
	case days == 0:
		title = fmt.Sprintf("Due today: %s", t.Title)
		message = fmt.Sprintf("Task '%s' is due today.", t.Title)
	case days < 0:
		title = fmt.Sprintf("Overdue: %s", t.Title)
		message = fmt.Sprintf("Task '%s' is %d days overdue.", t.Title, -days)
	default:
		title = fmt.Sprintf("Due in %d days: %s", days, t.Title)
		message = fmt.Sprintf("Task '%s' is due in %d days.", t.Title, days)
	}

	return &Notification{
		Type:         TypeDueDateReminder,
		Title:        title,
		Message:      message,
		TaskID:       &t.ID,
		ProjectID:    &t.ProjectID,
		ScheduledFor: now,
	}
}

func missingBriefNotification(t *task.Task, now time.Time) *Notification {
	return &Notification{
		Type:         TypeMissingBrief,
		Title:        fmt.Sprintf("Missing 5SB: %s", t.Title),
		Message:      fmt.Sprintf("Task '%s' has no five-sentence brief yet.", t.Title),
		TaskID:       &t.ID,
		ProjectID:    &t.ProjectID,
		ScheduledFor: now,
	}
}

func missingDoDNotification(t *task.Task, now time.Time) *Notification {
	return &Notification{
		Type:         TypeMissingDoD,
		Title:        fmt.Sprintf("Missing DoD: %s", t.Title),
		Message:      fmt.Sprintf("Task '%s' has no definition of done yet.", t.Title),
		TaskID:       &t.ID,
		ProjectID:    &t.ProjectID,
		ScheduledFor: now,
	}
}

func staleTaskNotification(t *task.Task, now time.Time) *Notification {
	days := int(now.Sub(t.UpdatedAt).Hours() / 24)
	return &Notification{
		Type:         TypeStaleTask,
		Title:        fmt.Sprintf("Stalled task: %s", t.Title),
		Message:      fmt.Sprintf("Task '%s' has had no updates for %d days.", t.Title, days),
		TaskID:       &t.ID,
		ProjectID:    &t.ProjectID,
		ScheduledFor: now,
	}
}

func reviewScheduleNotification(p *project.Project, now time.Time) *Notification {
	return &Notification{
		Type:         TypeReviewSchedule,
		Title:        fmt.Sprintf("Review due: %s", p.Name),
		Message:      fmt.Sprintf("Project '%s' is due for a periodic review.", p.Name),
		ProjectID:    &p.ID,
		ScheduledFor: now,
	}
}
