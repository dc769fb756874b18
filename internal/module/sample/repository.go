package sample

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// Repository defines the interface for sample data access.
type Repository interface {
	Create(ctx context.Context, s *Sample) error
	GetByID(ctx context.Context, id uint) (*Sample, error)
	List(ctx context.Context) ([]*Sample, error)
	ListByTask(ctx context.Context, taskID uint) ([]*Sample, error)
	Update(ctx context.Context, s *Sample) error
	Delete(ctx context.Context, id uint) error
	TaskExists(ctx context.Context, taskID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new sample repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Sample) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Sample, error) {
	var s Sample
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSampleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]*Sample, error) {
	var samples []*Sample
	if err := r.db.WithContext(ctx).Order("id").Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *repository) ListByTask(ctx context.Context, taskID uint) ([]*Sample, error) {
	var samples []*Sample
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *repository) Update(ctx context.Context, s *Sample) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Sample{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSampleNotFound
	}
	return nil
}

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
