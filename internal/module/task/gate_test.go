package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanEnter(t *testing.T) {
	tests := []struct {
		name     string
		to       State
		wipCount int
		limit    int
		want     bool
	}{
		{"enter in progress below limit", StateInProgress, 2, 3, true},
		{"enter in progress at limit", StateInProgress, 3, 3, false},
		{"enter in progress above limit", StateInProgress, 5, 3, false},
		{"enter in progress with limit one", StateInProgress, 0, 1, true},
		{"done ignores limit", StateDone, 99, 3, true},
		{"paused ignores limit", StatePaused, 99, 3, true},
		{"backlog ignores limit", StateBacklog, 99, 3, true},
		{"canceled ignores limit", StateCanceled, 99, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canEnter(tt.to, tt.wipCount, tt.limit))
		})
	}
}

func TestStateIsValid(t *testing.T) {
	for _, s := range []State{StateBacklog, StateInProgress, StateDone, StatePaused, StateCanceled} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, State("ARCHIVED").IsValid())
	assert.False(t, State("").IsValid())
}

func TestStateIsActive(t *testing.T) {
	assert.True(t, StateBacklog.IsActive())
	assert.True(t, StateInProgress.IsActive())
	assert.True(t, StatePaused.IsActive())
	assert.False(t, StateDone.IsActive())
	assert.False(t, StateCanceled.IsActive())
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due and in progress", Task{State: StateInProgress, DueDate: &yesterday}, true},
		{"past due and backlog", Task{State: StateBacklog, DueDate: &yesterday}, true},
		{"past due but done", Task{State: StateDone, DueDate: &yesterday}, false},
		{"past due but canceled", Task{State: StateCanceled, DueDate: &yesterday}, false},
		{"due in the future", Task{State: StateInProgress, DueDate: &tomorrow}, false},
		{"no due date", Task{State: StateInProgress}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}
