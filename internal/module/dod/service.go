package dod

import (
	"context"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Service handles DoD business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new DoD service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create attaches a DoD to a task and marks the task dod_checked in the
// same transaction. A missing task is NotFound; an existing DoD is a
// Conflict.
func (s *Service) Create(ctx context.Context, req *CreateDoDRequest) (*DoD, error) {
	exists, err := s.repo.TaskExists(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	versionTag := req.VersionTag
	if versionTag == "" {
		versionTag = "v0.1"
	}

	d := &DoD{
		TaskID:             req.TaskID,
		DeliverableFormats: req.DeliverableFormats,
		MandatoryChecks:    pq.StringArray(req.MandatoryChecks),
		QualityBar:         req.QualityBar,
		Verification:       req.Verification,
		Deadline:           req.Deadline,
		VersionTag:         versionTag,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	if err := txRepo.SetTaskDoDChecked(ctx, req.TaskID, true); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("dod created",
		zap.Uint("dod_id", d.ID),
		zap.Uint("task_id", d.TaskID),
	)

	return d, nil
}

// GetByTask retrieves the DoD attached to a task.
func (s *Service) GetByTask(ctx context.Context, taskID uint) (*DoD, error) {
	return s.repo.GetByTaskID(ctx, taskID)
}

// List lists all DoDs.
func (s *Service) List(ctx context.Context) ([]*DoD, error) {
	return s.repo.List(ctx)
}

// Update replaces a DoD's content. Unlike briefs, DoD updates are full
// replacements; the version tag travels with the payload.
func (s *Service) Update(ctx context.Context, id uint, req *CreateDoDRequest) (*DoD, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.DeliverableFormats = req.DeliverableFormats
	d.MandatoryChecks = pq.StringArray(req.MandatoryChecks)
	d.QualityBar = req.QualityBar
	d.Verification = req.Verification
	d.Deadline = req.Deadline
	if req.VersionTag != "" {
		d.VersionTag = req.VersionTag
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes a DoD and resets the owning task's dod_checked flag in
// the same transaction.
func (s *Service) Delete(ctx context.Context, id uint) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.SetTaskDoDChecked(ctx, d.TaskID, false); err != nil {
		return err
	}
	if err := txRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("dod deleted",
		zap.Uint("dod_id", id),
		zap.Uint("task_id", d.TaskID),
	)
	return nil
}
