package brief

import (
	"context"

	"go.uber.org/zap"
)

// Service handles brief business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new brief service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create attaches a brief to a task. A missing task is NotFound; a task
// that already has a brief is a Conflict.
func (s *Service) Create(ctx context.Context, req *CreateBriefRequest) (*Brief, error) {
	exists, err := s.repo.TaskExists(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	b := &Brief{
		TaskID:          req.TaskID,
		Purpose:         req.Purpose,
		SuccessCriteria: req.SuccessCriteria,
		Constraints:     req.Constraints,
		Priority:        req.Priority,
		Validation:      req.Validation,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("brief created",
		zap.Uint("brief_id", b.ID),
		zap.Uint("task_id", b.TaskID),
	)

	return b, nil
}

// GetByTask retrieves the brief attached to a task.
func (s *Service) GetByTask(ctx context.Context, taskID uint) (*Brief, error) {
	return s.repo.GetByTaskID(ctx, taskID)
}

// List lists all briefs.
func (s *Service) List(ctx context.Context) ([]*Brief, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to a brief.
func (s *Service) Update(ctx context.Context, id uint, req *UpdateBriefRequest) (*Brief, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Purpose != nil {
		b.Purpose = *req.Purpose
	}
	if req.SuccessCriteria != nil {
		b.SuccessCriteria = *req.SuccessCriteria
	}
	if req.Constraints != nil {
		b.Constraints = *req.Constraints
	}
	if req.Priority != nil {
		b.Priority = *req.Priority
	}
	if req.Validation != nil {
		b.Validation = *req.Validation
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a brief.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
