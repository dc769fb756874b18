package task

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/project"
	"gorm.io/gorm"
)

// wipGateLockKey is the advisory lock key serializing WIP-gated state
// changes. Any value works as long as all writers agree on it.
const wipGateLockKey = 421001

// Repository defines the interface for task data access.
type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id uint) (*Task, error)
	List(ctx context.Context, q *ListQuery) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uint) error
	DeleteDependents(ctx context.Context, taskID uint) error

	ProjectExists(ctx context.Context, projectID uint) (bool, error)
	CountInProgress(ctx context.Context, excludeTaskID uint) (int, error)
	AcquireWIPGate(ctx context.Context) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
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

// Create creates a new task.
func (r *repository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by ID.
func (r *repository) GetByID(ctx context.Context, id uint) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List lists tasks, optionally filtered by project and state.
func (r *repository) List(ctx context.Context, q *ListQuery) ([]*Task, error) {
	db := r.db.WithContext(ctx)
	if q != nil {
		if q.ProjectID != 0 {
			db = db.Where("project_id = ?", q.ProjectID)
		}
		if q.State != "" {
			db = db.Where("state = ?", q.State)
		}
	}

	var tasks []*Task
	if err := db.Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves a task.
func (r *repository) Update(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete deletes a task row.
func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteDependents deletes every record owned by the task. Callers run
// this inside a transaction via WithTx together with Delete.
func (r *repository) DeleteDependents(ctx context.Context, taskID uint) error {
	db := r.db.WithContext(ctx)
	for _, table := range []string{"briefs", "dods", "reviews", "decision_logs", "samples", "notifications"} {
		if err := db.Exec("DELETE FROM "+table+" WHERE task_id = ?", taskID).Error; err != nil {
			return err
		}
	}
	return nil
}

// ProjectExists checks that the referenced project exists.
func (r *repository) ProjectExists(ctx context.Context, projectID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&project.Project{}).
		Where("id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountInProgress counts tasks currently in progress across all projects,
// excluding the given task.
func (r *repository) CountInProgress(ctx context.Context, excludeTaskID uint) (int, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Task{}).Where("state = ?", StateInProgress)
	if excludeTaskID != 0 {
		db = db.Where("id <> ?", excludeTaskID)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// AcquireWIPGate takes the transaction-scoped advisory lock guarding the
// WIP admission check. The lock is released when the surrounding
// transaction commits or rolls back, so count-then-set pairs from
// concurrent requests cannot interleave.
func (r *repository) AcquireWIPGate(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", wipGateLockKey).Error
}
