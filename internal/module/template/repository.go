package template

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// ListFilter narrows the template listing.
type ListFilter struct {
	Category      Category
	TemplateType  Type
	IncludeSystem bool
	IncludeAI     bool
	Limit         int
}

// Repository defines the interface for template data access.
type Repository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id uint) (*Template, error)
	List(ctx context.Context, filter ListFilter) ([]*Template, error)
	ListAll(ctx context.Context) ([]*Template, error)
	SystemTemplateExists(ctx context.Context, name string) (bool, error)
	IncrementUsage(ctx context.Context, id uint) error
	CreateUsage(ctx context.Context, u *Usage) error
	ListBestPractices(ctx context.Context, category Category, limit int) ([]*BestPractice, error)
	Stats(ctx context.Context) (Stats, error)

	GetProject(ctx context.Context, id uint) (*project.Project, error)
	ListProjectTasks(ctx context.Context, projectID uint) ([]*task.Task, error)
	ListBriefsForTasks(ctx context.Context, taskIDs []uint) ([]*brief.Brief, error)
	ListDoDsForTasks(ctx context.Context, taskIDs []uint) ([]*dod.DoD, error)

	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) *gorm.DB
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new template repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) BeginTx(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Begin()
}

func (r *repository) Create(ctx context.Context, t *Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Template, error) {
	var t Template
	err := r.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Template, error) {
	q := r.db.WithContext(ctx).Model(&Template{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.TemplateType != "" {
		q = q.Where("template_type = ?", filter.TemplateType)
	}
	if !filter.IncludeSystem {
		q = q.Where("is_system_template = false")
	}
	if !filter.IncludeAI {
		q = q.Where("is_generated = false")
	}

	var templates []*Template
	err := q.Order("usage_count DESC, created_at DESC").
		Limit(filter.Limit).
		Find(&templates).Error
	return templates, err
}

func (r *repository) ListAll(ctx context.Context) ([]*Template, error) {
	var templates []*Template
	err := r.db.WithContext(ctx).Find(&templates).Error
	return templates, err
}

func (r *repository) SystemTemplateExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Template{}).
		Where("name = ? AND is_system_template = true", name).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) IncrementUsage(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&Template{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *repository) CreateUsage(ctx context.Context, u *Usage) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) ListBestPractices(ctx context.Context, category Category, limit int) ([]*BestPractice, error) {
	q := r.db.WithContext(ctx).Model(&BestPractice{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var practices []*BestPractice
	err := q.Order("confidence_score DESC").Limit(limit).Find(&practices).Error
	return practices, err
}

func (r *repository) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{CategoryDistribution: make(map[string]int64, len(AllCategories))}
	db := r.db.WithContext(ctx).Model(&Template{})

	if err := db.Count(&stats.TotalTemplates).Error; err != nil {
		return stats, err
	}
	if err := r.db.WithContext(ctx).Model(&Template{}).
		Where("is_system_template = true").
		Count(&stats.SystemTemplates).Error; err != nil {
		return stats, err
	}
	if err := r.db.WithContext(ctx).Model(&Template{}).
		Where("is_generated = true").
		Count(&stats.GeneratedTemplates).Error; err != nil {
		return stats, err
	}
	stats.UserTemplates = stats.TotalTemplates - stats.SystemTemplates - stats.GeneratedTemplates

	type categoryCount struct {
		Category string
		Count    int64
	}
	var rows []categoryCount
	if err := r.db.WithContext(ctx).Model(&Template{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return stats, err
	}
	for _, c := range AllCategories {
		stats.CategoryDistribution[string(c)] = 0
	}
	for _, row := range rows {
		stats.CategoryDistribution[row.Category] = row.Count
	}

	var mostUsed []*Template
	if err := r.db.WithContext(ctx).
		Where("usage_count > 0").
		Order("usage_count DESC").
		Limit(5).
		Find(&mostUsed).Error; err != nil {
		return stats, err
	}
	stats.MostUsedTemplates = make([]UsageSummary, 0, len(mostUsed))
	for _, t := range mostUsed {
		stats.MostUsedTemplates = append(stats.MostUsedTemplates, UsageSummary{
			ID:          t.ID,
			Name:        t.Name,
			Category:    t.Category,
			UsageCount:  t.UsageCount,
			SuccessRate: t.SuccessRate,
		})
	}

	return stats, nil
}

func (r *repository) GetProject(ctx context.Context, id uint) (*project.Project, error) {
	var p project.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListProjectTasks(ctx context.Context, projectID uint) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) ListBriefsForTasks(ctx context.Context, taskIDs []uint) ([]*brief.Brief, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var briefs []*brief.Brief
	err := r.db.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Find(&briefs).Error
	return briefs, err
}

func (r *repository) ListDoDsForTasks(ctx context.Context, taskIDs []uint) ([]*dod.DoD, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	var dods []*dod.DoD
	err := r.db.WithContext(ctx).
		Where("task_id IN ?", taskIDs).
		Find(&dods).Error
	return dods, err
}
