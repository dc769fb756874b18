package brief

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// Repository defines the interface for brief data access.
type Repository interface {
	Create(ctx context.Context, brief *Brief) error
	GetByID(ctx context.Context, id uint) (*Brief, error)
	GetByTaskID(ctx context.Context, taskID uint) (*Brief, error)
	List(ctx context.Context) ([]*Brief, error)
	Update(ctx context.Context, brief *Brief) error
	Delete(ctx context.Context, id uint) error
	TaskExists(ctx context.Context, taskID uint) (bool, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new brief repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create creates a brief. The unique index on task_id enforces the 1:1
// relation; a duplicate surfaces as ErrBriefExists.
func (r *repository) Create(ctx context.Context, brief *Brief) error {
	err := r.db.WithContext(ctx).Create(brief).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrBriefExists
	}
	return err
}

// GetByID retrieves a brief by ID.
func (r *repository) GetByID(ctx context.Context, id uint) (*Brief, error) {
	var b Brief
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBriefNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByTaskID retrieves the brief attached to a task.
func (r *repository) GetByTaskID(ctx context.Context, taskID uint) (*Brief, error) {
	var b Brief
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBriefNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List lists all briefs.
func (r *repository) List(ctx context.Context) ([]*Brief, error) {
	var briefs []*Brief
	if err := r.db.WithContext(ctx).Order("id").Find(&briefs).Error; err != nil {
		return nil, err
	}
	return briefs, nil
}

// Update saves a brief.
func (r *repository) Update(ctx context.Context, brief *Brief) error {
	return r.db.WithContext(ctx).Save(brief).Error
}

// Delete deletes a brief.
func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Brief{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBriefNotFound
	}
	return nil
}

// TaskExists checks that the referenced task exists.
func (r *repository) TaskExists(ctx context.Context, taskID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&task.Task{}).
		Where("id = ?", taskID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
