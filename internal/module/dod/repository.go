package dod

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// Repository defines the interface for DoD data access.
type Repository interface {
	Create(ctx context.Context, dod *DoD) error
	GetByID(ctx context.Context, id uint) (*DoD, error)
	GetByTaskID(ctx context.Context, taskID uint) (*DoD, error)
	List(ctx context.Context) ([]*DoD, error)
	Update(ctx context.Context, dod *DoD) error
	Delete(ctx context.Context, id uint) error

	TaskExists(ctx context.Context, taskID uint) (bool, error)
	SetTaskDoDChecked(ctx context.Context, taskID uint, checked bool) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new DoD repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a new repository with the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// BeginTx starts a new transaction.
func (r *repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// Create creates a DoD. The unique index on task_id enforces the 1:1
// relation; a duplicate surfaces as ErrDoDExists.
func (r *repository) Create(ctx context.Context, dod *DoD) error {
	err := r.db.WithContext(ctx).Create(dod).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDoDExists
	}
	return err
}

// GetByID retrieves a DoD by ID.
func (r *repository) GetByID(ctx context.Context, id uint) (*DoD, error) {
	var d DoD
	err := r.db.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoDNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetByTaskID retrieves the DoD attached to a task.
func (r *repository) GetByTaskID(ctx context.Context, taskID uint) (*DoD, error) {
	var d DoD
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoDNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List lists all DoDs.
func (r *repository) List(ctx context.Context) ([]*DoD, error) {
	var dods []*DoD
	if err := r.db.WithContext(ctx).Order("id").Find(&dods).Error; err != nil {
		return nil, err
	}
	return dods, nil
}

// Update saves a DoD.
func (r *repository) Update(ctx context.Context, dod *DoD) error {
	return r.db.WithContext(ctx).Save(dod).Error
}

// Delete deletes a DoD.
func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DoD{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDoDNotFound
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

// SetTaskDoDChecked flips the owning task's dod_checked flag.
func (r *repository) SetTaskDoDChecked(ctx context.Context, taskID uint, checked bool) error {
	return r.db.WithContext(ctx).Model(&task.Task{}).
		Where("id = ?", taskID).
		Update("dod_checked", checked).Error
}
