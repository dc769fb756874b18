package sample

import (
	"context"

	"go.uber.org/zap"
)

const defaultProportion = 0.1

// Service handles sample business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new sample service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create records a sample against a task.
func (s *Service) Create(ctx context.Context, req *CreateSampleRequest) (*Sample, error) {
	exists, err := s.repo.TaskExists(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	sm := &Sample{
		TaskID:     req.TaskID,
		Proportion: defaultProportion,
		Notes:      req.Notes,
		Approved:   req.Approved,
	}
	if req.Proportion != nil {
		sm.Proportion = *req.Proportion
	}

	if err := s.repo.Create(ctx, sm); err != nil {
		return nil, err
	}

	s.logger.Info("sample created",
		zap.Uint("sample_id", sm.ID),
		zap.Uint("task_id", sm.TaskID),
		zap.Float64("proportion", sm.Proportion),
	)

	return sm, nil
}

// List lists all samples.
func (s *Service) List(ctx context.Context) ([]*Sample, error) {
	return s.repo.List(ctx)
}

// ListByTask lists samples for a single task.
func (s *Service) ListByTask(ctx context.Context, taskID uint) ([]*Sample, error) {
	return s.repo.ListByTask(ctx, taskID)
}

// Update replaces a sample's content.
func (s *Service) Update(ctx context.Context, id uint, req *CreateSampleRequest) (*Sample, error) {
	sm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sm.Proportion = defaultProportion
	if req.Proportion != nil {
		sm.Proportion = *req.Proportion
	}
	sm.Notes = req.Notes
	sm.Approved = req.Approved

	if err := s.repo.Update(ctx, sm); err != nil {
		return nil, err
	}
	return sm, nil
}

// Delete removes a sample.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
