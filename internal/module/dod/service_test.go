package dod

import (
	"context"
	"database/sql"
	"testing"

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
	dods       map[uint]*DoD
	byTask     map[uint]*DoD
	tasks      map[uint]bool
	dodChecked map[uint]bool
	nextID     uint
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		dods:       make(map[uint]*DoD),
		byTask:     make(map[uint]*DoD),
		tasks:      make(map[uint]bool),
		dodChecked: make(map[uint]bool),
	}
}

func (m *MockRepository) Create(_ context.Context, d *DoD) error {
	if _, ok := m.byTask[d.TaskID]; ok {
		return ErrDoDExists
	}
	m.nextID++
	d.ID = m.nextID
	m.dods[d.ID] = d
	m.byTask[d.TaskID] = d
	return nil
}

func (m *MockRepository) GetByID(_ context.Context, id uint) (*DoD, error) {
	d, ok := m.dods[id]
	if !ok {
		return nil, ErrDoDNotFound
	}
	return d, nil
}

func (m *MockRepository) GetByTaskID(_ context.Context, taskID uint) (*DoD, error) {
	d, ok := m.byTask[taskID]
	if !ok {
		return nil, ErrDoDNotFound
	}
	return d, nil
}

func (m *MockRepository) List(_ context.Context) ([]*DoD, error) {
	result := make([]*DoD, 0, len(m.dods))
	for _, d := range m.dods {
		result = append(result, d)
	}
	return result, nil
}

func (m *MockRepository) Update(_ context.Context, d *DoD) error {
	if _, ok := m.dods[d.ID]; !ok {
		return ErrDoDNotFound
	}
	m.dods[d.ID] = d
	m.byTask[d.TaskID] = d
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id uint) error {
	d, ok := m.dods[id]
	if !ok {
		return ErrDoDNotFound
	}
	delete(m.byTask, d.TaskID)
	delete(m.dods, id)
	return nil
}

func (m *MockRepository) TaskExists(_ context.Context, taskID uint) (bool, error) {
	return m.tasks[taskID], nil
}

func (m *MockRepository) SetTaskDoDChecked(_ context.Context, taskID uint, checked bool) error {
	if !m.tasks[taskID] {
		return ErrTaskNotFound
	}
	m.dodChecked[taskID] = checked
	return nil
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository { return m }

func (m *MockRepository) BeginTx(_ context.Context) (*gorm.DB, error) {
	return newStubTx(), nil
}

func createRequest(taskID uint, qualityBar string) *CreateDoDRequest {
	return &CreateDoDRequest{
		TaskID:             taskID,
		DeliverableFormats: "MD,PDF",
		MandatoryChecks:    []string{"reviewed", "linked"},
		QualityBar:         qualityBar,
		Verification:       "peer review",
	}
}

func TestCreateDeleteTogglesDoDChecked(t *testing.T) {
	repo := NewMockRepository()
	repo.tasks[1] = true
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	// Two full attach/detach cycles; the task flag must follow each one.
	for i := 0; i < 2; i++ {
		d, err := svc.Create(ctx, createRequest(1, "good enough"))
		require.NoError(t, err)
		assert.True(t, repo.dodChecked[1])

		require.NoError(t, svc.Delete(ctx, d.ID))
		assert.False(t, repo.dodChecked[1])
	}
}

func TestCreateSecondDoDConflicts(t *testing.T) {
	repo := NewMockRepository()
	repo.tasks[1] = true
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest(1, "original bar"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest(1, "replacement bar"))
	assert.ErrorIs(t, err, ErrDoDExists)

	// The conflicting create leaves the existing DoD and flag alone.
	got, err := svc.GetByTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "original bar", got.QualityBar)
	assert.True(t, repo.dodChecked[1])
}
