package notification

import (
	"context"
	"errors"
	"time"

	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// StatusCounts groups notification totals per status.
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Sent      int64 `json:"sent"`
	Read      int64 `json:"read"`
	Dismissed int64 `json:"dismissed"`
	Total     int64 `json:"total"`
}

// Repository defines the interface for notification data access.
type Repository interface {
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	List(ctx context.Context, status Status, limit int) ([]*Notification, error)
	ListPending(ctx context.Context, now time.Time) ([]*Notification, error)
	Update(ctx context.Context, n *Notification) error
	CountByStatus(ctx context.Context) (StatusCounts, error)

	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) error

	// Dedup lookups: IDs that already carry an undelivered or delivered
	// but unread notification of the given type.
	ActiveTaskIDs(ctx context.Context, t Type) (map[uint]bool, error)
	ActiveProjectIDs(ctx context.Context, t Type) (map[uint]bool, error)

	ListTasksDueBefore(ctx context.Context, deadline time.Time) ([]*task.Task, error)
	ListOpenTasks(ctx context.Context) ([]*task.Task, error)
	TaskIDsWithBrief(ctx context.Context) (map[uint]bool, error)
	TaskIDsWithDoD(ctx context.Context) (map[uint]bool, error)
	ListStaleTasks(ctx context.Context, updatedBefore time.Time) ([]*task.Task, error)
	ListProjects(ctx context.Context) ([]*project.Project, error)
	ProjectIDsWithRecentReview(ctx context.Context, since time.Time) (map[uint]bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(ctx context.Context, notifications []*Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(notifications).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) List(ctx context.Context, status Status, limit int) ([]*Notification, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var notifications []*Notification
	err := q.Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *repository) ListPending(ctx context.Context, now time.Time) ([]*Notification, error) {
	var notifications []*Notification
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_for <= ?", StatusPending, now).
		Order("scheduled_for DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) CountByStatus(ctx context.Context) (StatusCounts, error) {
	var counts StatusCounts

	type row struct {
		Status Status
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}

	for _, rw := range rows {
		switch rw.Status {
		case StatusPending:
			counts.Pending = rw.Count
		case StatusSent:
			counts.Sent = rw.Count
		case StatusRead:
			counts.Read = rw.Count
		case StatusDismissed:
			counts.Dismissed = rw.Count
		}
		counts.Total += rw.Count
	}
	return counts, nil
}

func (r *repository) GetSettings(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.db.WithContext(ctx).Order("id").First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) SaveSettings(ctx context.Context, s *Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) ActiveTaskIDs(ctx context.Context, t Type) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("type = ? AND status IN ? AND task_id IS NOT NULL", t, []Status{StatusPending, StatusSent}).
		Pluck("task_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (r *repository) ActiveProjectIDs(ctx context.Context, t Type) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("type = ? AND status IN ? AND project_id IS NOT NULL", t, []Status{StatusPending, StatusSent}).
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (r *repository) ListTasksDueBefore(ctx context.Context, deadline time.Time) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND state IN ? AND due_date <= ?",
			[]task.State{task.StateBacklog, task.StateInProgress}, deadline).
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) ListOpenTasks(ctx context.Context) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.WithContext(ctx).
		Where("state IN ?", []task.State{task.StateBacklog, task.StateInProgress}).
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) TaskIDsWithBrief(ctx context.Context) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Table("briefs").Pluck("task_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (r *repository) TaskIDsWithDoD(ctx context.Context) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Table("dods").Pluck("task_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (r *repository) ListStaleTasks(ctx context.Context, updatedBefore time.Time) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.WithContext(ctx).
		Where("state = ? AND updated_at < ?", task.StateInProgress, updatedBefore).
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) ListProjects(ctx context.Context) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.WithContext(ctx).Find(&projects).Error
	return projects, err
}

func (r *repository) ProjectIDsWithRecentReview(ctx context.Context, since time.Time) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Table("reviews").
		Joins("JOIN tasks ON tasks.id = reviews.task_id").
		Where("reviews.created_at > ?", since).
		Pluck("tasks.project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
