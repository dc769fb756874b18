package project

import (
	"context"

	"go.uber.org/zap"
)

// Service handles project business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create creates a new project. OwnerID defaults to the bootstrap user
// when the caller does not supply one.
func (s *Service) Create(ctx context.Context, req *CreateProjectRequest) (*Project, error) {
	ownerID := req.OwnerID
	if ownerID == 0 {
		ownerID = 1
	}

	p := &Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		IsPrivate:   true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		zap.Uint("project_id", p.ID),
		zap.String("name", p.Name),
	)

	return p, nil
}

// Get retrieves a project by ID.
func (s *Service) Get(ctx context.Context, id uint) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists all projects with task counts.
func (s *Service) List(ctx context.Context) ([]ProjectWithStats, error) {
	return s.repo.ListWithStats(ctx)
}

// Update applies a partial update to a project.
func (s *Service) Update(ctx context.Context, id uint, req *UpdateProjectRequest) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete deletes a project and everything scoped to it. Tasks and all
// task-level records go in the same transaction so a failure leaves the
// project intact.
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
	if err := txRepo.DeleteTaskRecords(ctx, id); err != nil {
		return err
	}
	if err := txRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("project deleted", zap.Uint("project_id", id))
	return nil
}
