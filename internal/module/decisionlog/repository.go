package decisionlog

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// Repository defines the interface for decision log data access.
type Repository interface {
	Create(ctx context.Context, decision *DecisionLog) error
	GetByID(ctx context.Context, id uint) (*DecisionLog, error)
	List(ctx context.Context) ([]*DecisionLog, error)
	ListByTask(ctx context.Context, taskID uint) ([]*DecisionLog, error)
	Update(ctx context.Context, decision *DecisionLog) error
	Delete(ctx context.Context, id uint) error
	TaskExists(ctx context.Context, taskID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new decision log repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, decision *DecisionLog) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*DecisionLog, error) {
	var d DecisionLog
	err := r.db.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) List(ctx context.Context) ([]*DecisionLog, error) {
	var decisions []*DecisionLog
	if err := r.db.WithContext(ctx).Order("id").Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

func (r *repository) ListByTask(ctx context.Context, taskID uint) ([]*DecisionLog, error) {
	var decisions []*DecisionLog
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id").
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

func (r *repository) Update(ctx context.Context, decision *DecisionLog) error {
	return r.db.WithContext(ctx).Save(decision).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&DecisionLog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDecisionNotFound
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
