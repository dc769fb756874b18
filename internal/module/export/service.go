package export

import (
	"context"

	"go.uber.org/zap"
)

// Service renders project exports.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new export service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ProjectMarkdown renders one project, with all its task records, as a
// markdown document.
func (s *Service) ProjectMarkdown(ctx context.Context, projectID uint) (string, error) {
	e, err := s.repo.LoadProject(ctx, projectID)
	if err != nil {
		return "", err
	}

	s.logger.Info("project exported",
		zap.Uint("project_id", projectID),
		zap.Int("tasks", len(e.Tasks)),
	)

	return renderMarkdown(e), nil
}
