package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/sample"
	"github.com/opstrack/server/internal/module/task"
)

func TestComputeKPIs_EmptyTasks(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got := computeKPIs(snapshot{
		Projects: []*project.Project{{ID: 1, Name: "empty"}},
	}, now)

	assert.Equal(t, 0.0, got.ReworkRate)
	assert.Equal(t, 0.0, got.ContextSwitchesPerDay)
	assert.Equal(t, 0.0, got.DoDAdherence)
	assert.Equal(t, 0.0, got.SampleValidationRate)
	assert.Equal(t, 0.0, got.BriefCompletionRate)
	assert.Equal(t, 1, got.TotalProjects)
	assert.Equal(t, 0, got.TotalTasks)
	assert.Equal(t, StateCounts{}, got.TaskStates)
}

func TestComputeKPIs_ReworkRate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-48 * time.Hour)

	// Two relevant tasks (done, in-progress), one reworked. The backlog
	// task with rework does not count toward the rate.
	snap := snapshot{
		Tasks: []*task.Task{
			{ID: 1, ProjectID: 1, State: task.StateDone, ReworkCount: 2, CreatedAt: created},
			{ID: 2, ProjectID: 1, State: task.StateInProgress, CreatedAt: created},
			{ID: 3, ProjectID: 1, State: task.StateBacklog, ReworkCount: 5, CreatedAt: created},
		},
	}

	got := computeKPIs(snap, now)
	assert.Equal(t, 0.5, got.ReworkRate)
}

func TestComputeKPIs_ContextSwitchesPerDay(t *testing.T) {
	now := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)

	snap := snapshot{
		Tasks: []*task.Task{
			// 10 days old, 5 switches.
			{ID: 1, ProjectID: 1, State: task.StateBacklog, ContextSwitchCount: 5, CreatedAt: now.Add(-10 * 24 * time.Hour)},
			// Created today: lifetime clamps to one day.
			{ID: 2, ProjectID: 1, State: task.StateBacklog, ContextSwitchCount: 3, CreatedAt: now},
		},
	}

	// (5+3) / (10+1) days.
	got := computeKPIs(snap, now)
	assert.Equal(t, 0.727, got.ContextSwitchesPerDay)
}

func TestComputeKPIs_Rates(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	created := now.Add(-24 * time.Hour)

	snap := snapshot{
		Tasks: []*task.Task{
			{ID: 1, ProjectID: 1, State: task.StateDone, DoDChecked: true, CreatedAt: created},
			{ID: 2, ProjectID: 1, State: task.StateBacklog, CreatedAt: created},
			{ID: 3, ProjectID: 2, State: task.StateDone, CreatedAt: created},
		},
		Projects: []*project.Project{
			{ID: 1, Name: "a"},
			{ID: 2, Name: "b"},
			{ID: 3, Name: "no tasks"},
		},
		Samples: []*sample.Sample{
			{ID: 1, TaskID: 1, Approved: true},
			{ID: 2, TaskID: 1, Approved: false},
			{ID: 3, TaskID: 2, Approved: true},
		},
		Briefs: []*brief.Brief{
			{ID: 1, TaskID: 1},
			{ID: 2, TaskID: 99}, // orphan, not counted
		},
		DoDs: []*dod.DoD{
			{ID: 1, TaskID: 1},
			{ID: 2, TaskID: 3},
		},
	}

	got := computeKPIs(snap, now)

	assert.Equal(t, 0.333, got.DoDAdherence)
	assert.Equal(t, 0.667, got.SampleValidationRate)
	assert.Equal(t, 0.333, got.BriefCompletionRate)
	assert.Equal(t, 0.667, got.DoDDefinitionRate)
	// Project 1: 1/2 done, project 2: 1/1 done, project 3 excluded.
	assert.Equal(t, 0.75, got.AvgProjectCompletion)
	assert.Equal(t, StateCounts{Backlog: 1, Done: 2}, got.TaskStates)
}

func TestComputeKPIs_RecentActivity(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	snap := snapshot{
		Tasks: []*task.Task{
			{ID: 1, ProjectID: 1, State: task.StateBacklog, CreatedAt: now.Add(-2 * 24 * time.Hour)},
			{ID: 2, ProjectID: 1, State: task.StateBacklog, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		},
	}

	got := computeKPIs(snap, now)
	assert.Equal(t, 1, got.RecentTasks)
	assert.Equal(t, 2, got.TotalTasks)
}
