package task

import (
	"context"
	"fmt"

	"github.com/opstrack/server/internal/utils/metrics"
	"go.uber.org/zap"
)

// Service handles task business logic.
type Service struct {
	repo     Repository
	wipLimit int
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new task service.
func NewService(repo Repository, wipLimit int, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		wipLimit: wipLimit,
		metrics:  m,
		logger:   logger,
	}
}

// Create creates a new task in BACKLOG state.
func (s *Service) Create(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	exists, err := s.repo.ProjectExists(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	priority := req.Priority
	if priority == 0 {
		priority = 3
	}

	t := &Task{
		ProjectID:  req.ProjectID,
		Title:      req.Title,
		State:      StateBacklog,
		Priority:   priority,
		DueDate:    req.DueDate,
		AssigneeID: req.AssigneeID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		zap.Uint("task_id", t.ID),
		zap.Uint("project_id", t.ProjectID),
	)

	return t, nil
}

// Get retrieves a task by ID.
func (s *Service) Get(ctx context.Context, id uint) (*Task, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists tasks with optional filters.
func (s *Service) List(ctx context.Context, q *ListQuery) ([]*Task, error) {
	return s.repo.List(ctx, q)
}

// Update applies a partial update to a task's fields. State is excluded;
// UpdateState owns transitions.
func (s *Service) Update(ctx context.Context, id uint, req *UpdateTaskRequest) (*Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.AssigneeID != nil {
		t.AssigneeID = req.AssigneeID
	}
	if req.ContextSwitchCount != nil {
		t.ContextSwitchCount = *req.ContextSwitchCount
	}
	if req.ReworkCount != nil {
		t.ReworkCount = *req.ReworkCount
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateState transitions a task to a new state. Entry into IN_PROGRESS
// is admitted against the global WIP limit; the count and the write run
// in one transaction behind an advisory lock so two concurrent requests
// cannot both pass the gate.
func (s *Service) UpdateState(ctx context.Context, id uint, to State) (*Task, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, to)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	if to == StateInProgress {
		if err := txRepo.AcquireWIPGate(ctx); err != nil {
			return nil, err
		}
	}

	t, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := t.State

	wipCount := 0
	if to == StateInProgress {
		wipCount, err = txRepo.CountInProgress(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if !canEnter(to, wipCount, s.wipLimit) {
		if s.metrics != nil {
			s.metrics.WIPRejectionsTotal.Inc()
		}
		return nil, fmt.Errorf("%w (limit=%d)", ErrWIPLimitReached, s.wipLimit)
	}

	t.State = to
	if err := txRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTaskTransition(string(from), string(to))
		if from == StateInProgress || to == StateInProgress {
			if n, err := s.repo.CountInProgress(ctx, 0); err == nil {
				s.metrics.TasksInProgress.Set(float64(n))
			}
		}
	}
	s.logger.Info("task state changed",
		zap.Uint("task_id", t.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	return t, nil
}

// Delete deletes a task together with its brief, DoD, reviews, decision
// logs and samples.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.DeleteDependents(ctx, id); err != nil {
		return err
	}
	if err := txRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("task deleted", zap.Uint("task_id", id))
	return nil
}
