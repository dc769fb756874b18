package review

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// Repository defines the interface for review data access.
type Repository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uint) (*Review, error)
	List(ctx context.Context) ([]*Review, error)
	ListByTask(ctx context.Context, taskID uint) ([]*Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uint) error
	TaskExists(ctx context.Context, taskID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new review repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Review, error) {
	var rev Review
	err := r.db.WithContext(ctx).First(&rev, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *repository) List(ctx context.Context) ([]*Review, error) {
	var reviews []*Review
	if err := r.db.WithContext(ctx).Order("id").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) ListByTask(ctx context.Context, taskID uint) ([]*Review, error) {
	var reviews []*Review
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) Update(ctx context.Context, review *Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
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
