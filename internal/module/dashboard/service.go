package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Service computes dashboard metrics.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new dashboard service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// KPIs loads a fresh snapshot and computes the metrics over it. Nothing
// is cached between calls.
func (s *Service) KPIs(ctx context.Context) (KPIResponse, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return KPIResponse{}, err
	}
	return computeKPIs(snap, s.now()), nil
}
