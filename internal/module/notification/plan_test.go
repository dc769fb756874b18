package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/task"
)

func TestCalendarDaysUntil(t *testing.T) {
	now := time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"same day", time.Date(2024, 6, 10, 1, 0, 0, 0, time.UTC), 0},
		{"tomorrow early", time.Date(2024, 6, 11, 0, 30, 0, 0, time.UTC), 1},
		{"three days out", time.Date(2024, 6, 13, 12, 0, 0, 0, time.UTC), 3},
		{"two days ago", time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendarDaysUntil(now, tt.target))
		})
	}
}

func TestDueDateNotification(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	makeTask := func(due time.Time) *task.Task {
		return &task.Task{ID: 7, ProjectID: 3, Title: "ship report", DueDate: &due}
	}

	t.Run("due today", func(t *testing.T) {
		n := dueDateNotification(makeTask(now), now)
		assert.Equal(t, TypeDueDateReminder, n.Type)
		assert.Equal(t, "Due today: ship report", n.Title)
		require.NotNil(t, n.TaskID)
		assert.Equal(t, uint(7), *n.TaskID)
		require.NotNil(t, n.ProjectID)
		assert.Equal(t, uint(3), *n.ProjectID)
	})

	t.Run("overdue", func(t *testing.T) {
		n := dueDateNotification(makeTask(now.AddDate(0, 0, -3)), now)
		assert.Equal(t, "Overdue: ship report", n.Title)
		assert.Equal(t, "Task 'ship report' is 3 days overdue.", n.Message)
	})

	t.Run("upcoming", func(t *testing.T) {
		n := dueDateNotification(makeTask(now.AddDate(0, 0, 2)), now)
		assert.Equal(t, "Due in 2 days: ship report", n.Title)
	})
}

func TestMissingComponentNotifications(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	tsk := &task.Task{ID: 4, ProjectID: 2, Title: "draft outline"}

	b := missingBriefNotification(tsk, now)
	assert.Equal(t, TypeMissingBrief, b.Type)
	assert.Equal(t, "Missing 5SB: draft outline", b.Title)

	d := missingDoDNotification(tsk, now)
	assert.Equal(t, TypeMissingDoD, d.Type)
	assert.Equal(t, "Missing DoD: draft outline", d.Title)
}

func TestStaleTaskNotification(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	tsk := &task.Task{
		ID:        9,
		ProjectID: 1,
		Title:     "refactor importer",
		UpdatedAt: now.AddDate(0, 0, -12),
	}

	n := staleTaskNotification(tsk, now)
	assert.Equal(t, TypeStaleTask, n.Type)
	assert.Equal(t, "Task 'refactor importer' has had no updates for 12 days.", n.Message)
}

func TestReviewScheduleNotification(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	p := &project.Project{ID: 5, Name: "Q3 launch"}

	n := reviewScheduleNotification(p, now)
	assert.Equal(t, TypeReviewSchedule, n.Type)
	assert.Equal(t, "Review due: Q3 launch", n.Title)
	require.NotNil(t, n.ProjectID)
	assert.Equal(t, uint(5), *n.ProjectID)
	assert.Nil(t, n.TaskID)
	assert.Equal(t, now, n.ScheduledFor)
}
