package brief

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository implements Repository for testing.
type MockRepository struct {
	briefs map[uint]*Brief
	byTask map[uint]*Brief
	tasks  map[uint]bool
	nextID uint
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		briefs: make(map[uint]*Brief),
		byTask: make(map[uint]*Brief),
		tasks:  make(map[uint]bool),
	}
}

func (m *MockRepository) Create(_ context.Context, b *Brief) error {
	if _, ok := m.byTask[b.TaskID]; ok {
		return ErrBriefExists
	}
	m.nextID++
	b.ID = m.nextID
	m.briefs[b.ID] = b
	m.byTask[b.TaskID] = b
	return nil
}

func (m *MockRepository) GetByID(_ context.Context, id uint) (*Brief, error) {
	b, ok := m.briefs[id]
	if !ok {
		return nil, ErrBriefNotFound
	}
	return b, nil
}

func (m *MockRepository) GetByTaskID(_ context.Context, taskID uint) (*Brief, error) {
	b, ok := m.byTask[taskID]
	if !ok {
		return nil, ErrBriefNotFound
	}
	return b, nil
}

func (m *MockRepository) List(_ context.Context) ([]*Brief, error) {
	result := make([]*Brief, 0, len(m.briefs))
	for _, b := range m.briefs {
		result = append(result, b)
	}
	return result, nil
}

func (m *MockRepository) Update(_ context.Context, b *Brief) error {
	if _, ok := m.briefs[b.ID]; !ok {
		return ErrBriefNotFound
	}
	m.briefs[b.ID] = b
	m.byTask[b.TaskID] = b
	return nil
}

func (m *MockRepository) Delete(_ context.Context, id uint) error {
	b, ok := m.briefs[id]
	if !ok {
		return ErrBriefNotFound
	}
	delete(m.byTask, b.TaskID)
	delete(m.briefs, id)
	return nil
}

func (m *MockRepository) TaskExists(_ context.Context, taskID uint) (bool, error) {
	return m.tasks[taskID], nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zap.NewNop())
}

func createRequest(taskID uint, purpose string) *CreateBriefRequest {
	return &CreateBriefRequest{
		TaskID:          taskID,
		Purpose:         purpose,
		SuccessCriteria: "criteria",
		Constraints:     "constraints",
		Priority:        "priority",
		Validation:      "validation",
	}
}

func TestCreateSecondBriefConflicts(t *testing.T) {
	repo := NewMockRepository()
	repo.tasks[1] = true
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest(1, "original purpose"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, createRequest(1, "replacement purpose"))
	assert.ErrorIs(t, err, ErrBriefExists)

	// The conflicting create must not touch the existing brief.
	got, err := svc.GetByTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "original purpose", got.Purpose)
}

func TestCreateBriefMissingTask(t *testing.T) {
	svc := newTestService(NewMockRepository())

	_, err := svc.Create(context.Background(), createRequest(42, "purpose"))
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
