package task

import (
	"context"
	"database/sql"
	"testing"

	"github.com/opstrack/server/internal/utils/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubTx satisfies gorm's ConnPool and TxCommitter so a *gorm.DB handed
// out by the mock survives Commit/Rollback without a database.
type stubTx struct{}

func (*stubTx) PrepareContext(context.Context, string) (*sql.Stmt, error) { return nil, nil }
func (*stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (*stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (*stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (*stubTx) Commit() error { return nil }
func (*stubTx) Rollback() error { return nil }

func newStubTx() *gorm.DB {
	return &gorm.DB{Statement: &gorm.Statement{ConnPool: &stubTx{}}}
}

// MockRepository implements Repository for testing.
type MockRepository struct {
	tasks    map[uint]*Task
	projects map[uint]bool
	nextID   uint
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		tasks:    make(map[uint]*Task),
		projects: make(map[uint]bool),
	}
}

func (m *MockRepository) Create(_ context.Context, t *Task) error {
	m.nextID++
	t.ID = m.nextID
	m.tasks[t.ID] = t
	return nil
}

func (m *MockRepository) GetByID(_ context.Context, id uint) (*Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockRepository) List(_ context.Context, q *ListQuery) ([]*Task, error) {
	var result []*Task
	for _, t := range m.tasks {
		if q != nil {
			if q.ProjectID != 0 && t.ProjectID != q.ProjectID {
				continue
			}
			if q.State != "" && string(t.State) != q.State {
				continue
			}
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *MockRepository) Update(_ context.Context, t *Task) error {
	if _, ok := m.tasks[t.ID]; !ok {
		return ErrTaskNotFound
	}
	copied := *t
	m.tasks[t.ID] = &copied
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id uint) error {
	if _, ok := m.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *MockRepository) DeleteDependents(_ context.Context, _ uint) error { return nil }

func (m *MockRepository) ProjectExists(_ context.Context, projectID uint) (bool, error) {
	return m.projects[projectID], nil
}

func (m *MockRepository) CountInProgress(_ context.Context, excludeTaskID uint) (int, error) {
	count := 0
	for _, t := range m.tasks {
		if excludeTaskID != 0 && t.ID == excludeTaskID {
			continue
		}
		if t.State == StateInProgress {
			count++
		}
	}
	return count, nil
}

func (m *MockRepository) AcquireWIPGate(_ context.Context) error { return nil }

func (m *MockRepository) WithTx(_ *gorm.DB) Repository { return m }

func (m *MockRepository) BeginTx(_ context.Context) (*gorm.DB, error) {
	return newStubTx(), nil
}

// workflowMetrics builds an unregistered Metrics carrying only the fields
// the task service touches.
func workflowMetrics() *metrics.Metrics {
	return &metrics.Metrics{
		TaskTransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "transitions_total"},
			[]string{"from", "to"},
		),
		WIPRejectionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "wip_rejections_total"},
		),
		TasksInProgress: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "tasks_in_progress"},
		),
	}
}

func seedTask(repo *MockRepository, state State) *Task {
	t := &Task{ProjectID: 1, Title: "task", State: state, Priority: 3}
	repo.nextID++
	t.ID = repo.nextID
	repo.tasks[t.ID] = t
	return t
}

func TestUpdateStateTracksInProgressGauge(t *testing.T) {
	repo := NewMockRepository()
	seeded := seedTask(repo, StateBacklog)
	m := workflowMetrics()
	svc := NewService(repo, 3, m, zap.NewNop())
	ctx := context.Background()

	_, err := svc.UpdateState(ctx, seeded.ID, StateInProgress)
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TasksInProgress))

	_, err = svc.UpdateState(ctx, seeded.ID, StateDone)
	require.NoError(t, err)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.TasksInProgress))
}

func TestUpdateStateRejectsAtWIPLimit(t *testing.T) {
	repo := NewMockRepository()
	seedTask(repo, StateInProgress)
	waiting := seedTask(repo, StateBacklog)
	m := workflowMetrics()
	svc := NewService(repo, 1, m, zap.NewNop())

	_, err := svc.UpdateState(context.Background(), waiting.ID, StateInProgress)
	assert.ErrorIs(t, err, ErrWIPLimitReached)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WIPRejectionsTotal))
	assert.Equal(t, StateBacklog, repo.tasks[waiting.ID].State)
}

func TestUpdateStateLeavesCountersAlone(t *testing.T) {
	repo := NewMockRepository()
	seeded := seedTask(repo, StateDone)
	seeded.ContextSwitchCount = 5
	seeded.ReworkCount = 2
	svc := NewService(repo, 3, workflowMetrics(), zap.NewNop())
	ctx := context.Background()

	// rework_count and context_switch_count are client-maintained; state
	// transitions must never touch them.
	got, err := svc.UpdateState(ctx, seeded.ID, StateInProgress)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ContextSwitchCount)
	assert.Equal(t, 2, got.ReworkCount)

	got, err = svc.UpdateState(ctx, seeded.ID, StatePaused)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ContextSwitchCount)
	assert.Equal(t, 2, got.ReworkCount)
}
