package project

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository defines the interface for project data access.
type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id uint) (*Project, error)
	ListWithStats(ctx context.Context) ([]ProjectWithStats, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uint) error
	DeleteTaskRecords(ctx context.Context, projectID uint) error

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new project repository.
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

// Create creates a new project.
func (r *repository) Create(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID retrieves a project by ID.
func (r *repository) GetByID(ctx context.Context, id uint) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListWithStats lists all projects together with their task counts.
func (r *repository) ListWithStats(ctx context.Context) ([]ProjectWithStats, error) {
	type row struct {
		Project
		TaskCount int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("projects").
		Select("projects.*, COUNT(tasks.id) AS task_count").
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id").
		Group("projects.id").
		Order("projects.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]ProjectWithStats, 0, len(rows))
	for _, r := range rows {
		result = append(result, ProjectWithStats{
			ProjectResponse: r.Project.ToResponse(),
			TaskCount:       r.TaskCount,
		})
	}
	return result, nil
}

// Update updates a project.
func (r *repository) Update(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete deletes a project row.
func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteTaskRecords deletes all records hanging off the project's tasks,
// the tasks themselves, and project-scoped collaboration rows. Callers are
// expected to run this inside a transaction via WithTx.
func (r *repository) DeleteTaskRecords(ctx context.Context, projectID uint) error {
	db := r.db.WithContext(ctx)

	taskScoped := []string{"briefs", "dods", "reviews", "decision_logs", "samples"}
	for _, table := range taskScoped {
		if err := db.Exec(
			"DELETE FROM "+table+" WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
			projectID,
		).Error; err != nil {
			return err
		}
	}

	if err := db.Exec(
		"DELETE FROM notifications WHERE project_id = ? OR task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
		projectID, projectID,
	).Error; err != nil {
		return err
	}

	if err := db.Exec(
		"DELETE FROM approval_responses WHERE workflow_id IN (SELECT id FROM approval_workflows WHERE project_id = ?)",
		projectID,
	).Error; err != nil {
		return err
	}
	if err := db.Exec(
		"DELETE FROM decision_votes WHERE decision_id IN (SELECT id FROM team_decisions WHERE project_id = ?)",
		projectID,
	).Error; err != nil {
		return err
	}
	if err := db.Exec(
		"DELETE FROM decision_comments WHERE decision_id IN (SELECT id FROM team_decisions WHERE project_id = ?)",
		projectID,
	).Error; err != nil {
		return err
	}

	projectScoped := []string{"approval_workflows", "team_decisions", "project_invites", "project_members"}
	for _, table := range projectScoped {
		if err := db.Exec("DELETE FROM "+table+" WHERE project_id = ?", projectID).Error; err != nil {
			return err
		}
	}

	if err := db.Exec("UPDATE templates SET source_project_id = NULL WHERE source_project_id = ?", projectID).Error; err != nil {
		return err
	}

	return db.Exec("DELETE FROM tasks WHERE project_id = ?", projectID).Error
}
