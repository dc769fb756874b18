package decisionlog

import (
	"context"

	"go.uber.org/zap"
)

// Service handles decision log business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new decision log service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create records a decision against a task.
func (s *Service) Create(ctx context.Context, req *CreateDecisionRequest) (*DecisionLog, error) {
	exists, err := s.repo.TaskExists(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	d := &DecisionLog{
		TaskID:           req.TaskID,
		Date:             req.Date,
		Problem:          req.Problem,
		Options:          req.Options,
		DecisionReason:   req.DecisionReason,
		AssumptionsRisks: req.AssumptionsRisks,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("decision logged",
		zap.Uint("decision_id", d.ID),
		zap.Uint("task_id", d.TaskID),
	)

	return d, nil
}

// List lists all decision logs.
func (s *Service) List(ctx context.Context) ([]*DecisionLog, error) {
	return s.repo.List(ctx)
}

// ListByTask lists decision logs for a single task.
func (s *Service) ListByTask(ctx context.Context, taskID uint) ([]*DecisionLog, error) {
	return s.repo.ListByTask(ctx, taskID)
}

// UpdateDPlus7 sets the D+7 look-back and nothing else.
func (s *Service) UpdateDPlus7(ctx context.Context, id uint, review string) (*DecisionLog, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.DPlus7Review = &review
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a decision log.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
