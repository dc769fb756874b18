package review

import (
	"context"

	"go.uber.org/zap"
)

// Service handles review business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new review service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create records a review against a task.
func (s *Service) Create(ctx context.Context, req *CreateReviewRequest) (*Review, error) {
	exists, err := s.repo.TaskExists(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	rev := &Review{
		TaskID:      req.TaskID,
		ReviewType:  req.ReviewType,
		Positives:   req.Positives,
		Negatives:   req.Negatives,
		ChangesNext: req.ChangesNext,
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		zap.Uint("review_id", rev.ID),
		zap.Uint("task_id", rev.TaskID),
		zap.String("type", string(rev.ReviewType)),
	)

	return rev, nil
}

// List lists all reviews.
func (s *Service) List(ctx context.Context) ([]*Review, error) {
	return s.repo.List(ctx)
}

// ListByTask lists reviews for a single task.
func (s *Service) ListByTask(ctx context.Context, taskID uint) ([]*Review, error) {
	return s.repo.ListByTask(ctx, taskID)
}

// Update replaces a review's content.
func (s *Service) Update(ctx context.Context, id uint, req *CreateReviewRequest) (*Review, error) {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rev.ReviewType = req.ReviewType
	rev.Positives = req.Positives
	rev.Negatives = req.Negatives
	rev.ChangesNext = req.ChangesNext

	if err := s.repo.Update(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// Delete removes a review.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
