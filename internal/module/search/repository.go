package search

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/decisionlog"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/review"
	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
)

// Repository runs the substring queries behind search. Matching is
// case-insensitive and unindexed; relevance scoring happens in the
// service on top of these result sets.
type Repository interface {
	SearchProjects(ctx context.Context, query string, limit int) ([]*project.Project, error)
	SearchTasks(ctx context.Context, query string, limit int) ([]*task.Task, error)
	SearchBriefs(ctx context.Context, query string, limit int) ([]*brief.Brief, error)
	SearchDoDs(ctx context.Context, query string, limit int) ([]*dod.DoD, error)
	SearchDecisions(ctx context.Context, query string, limit int) ([]*decisionlog.DecisionLog, error)
	SearchReviews(ctx context.Context, query string, limit int) ([]*review.Review, error)
	RecentDecisionsMatching(ctx context.Context, query string, limit int) ([]*decisionlog.DecisionLog, error)
	GetProject(ctx context.Context, id uint) (*project.Project, error)
	ListOtherProjects(ctx context.Context, excludeID uint) ([]*project.Project, error)
	CountContent(ctx context.Context) (ContentSummary, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new search repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func pattern(query string) string {
	return "%" + query + "%"
}

func (r *repository) SearchProjects(ctx context.Context, query string, limit int) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern(query), pattern(query)).
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *repository) SearchTasks(ctx context.Context, query string, limit int) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern(query)).
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) SearchBriefs(ctx context.Context, query string, limit int) ([]*brief.Brief, error) {
	var briefs []*brief.Brief
	p := pattern(query)
	err := r.db.WithContext(ctx).
		Where("LOWER(purpose) LIKE ? OR LOWER(success_criteria) LIKE ? OR LOWER(constraints) LIKE ? OR LOWER(priority) LIKE ? OR LOWER(validation) LIKE ?",
			p, p, p, p, p).
		Limit(limit).
		Find(&briefs).Error
	return briefs, err
}

func (r *repository) SearchDoDs(ctx context.Context, query string, limit int) ([]*dod.DoD, error) {
	var dods []*dod.DoD
	p := pattern(query)
	err := r.db.WithContext(ctx).
		Where("LOWER(deliverable_formats) LIKE ? OR LOWER(quality_bar) LIKE ? OR LOWER(verification) LIKE ?", p, p, p).
		Limit(limit).
		Find(&dods).Error
	return dods, err
}

func (r *repository) SearchDecisions(ctx context.Context, query string, limit int) ([]*decisionlog.DecisionLog, error) {
	var logs []*decisionlog.DecisionLog
	p := pattern(query)
	err := r.db.WithContext(ctx).
		Where("LOWER(problem) LIKE ? OR LOWER(options) LIKE ? OR LOWER(decision_reason) LIKE ? OR LOWER(assumptions_risks) LIKE ?",
			p, p, p, p).
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *repository) SearchReviews(ctx context.Context, query string, limit int) ([]*review.Review, error) {
	var reviews []*review.Review
	p := pattern(query)
	err := r.db.WithContext(ctx).
		Where("LOWER(positives) LIKE ? OR LOWER(negatives) LIKE ? OR LOWER(changes_next) LIKE ?", p, p, p).
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) RecentDecisionsMatching(ctx context.Context, query string, limit int) ([]*decisionlog.DecisionLog, error) {
	var logs []*decisionlog.DecisionLog
	p := pattern(query)
	err := r.db.WithContext(ctx).
		Where("LOWER(problem) LIKE ? OR LOWER(options) LIKE ?", p, p).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
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

func (r *repository) ListOtherProjects(ctx context.Context, excludeID uint) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Find(&projects).Error
	return projects, err
}

func (r *repository) CountContent(ctx context.Context) (ContentSummary, error) {
	var s ContentSummary
	db := r.db.WithContext(ctx)

	counts := []struct {
		model any
		dest  *int64
	}{
		{&project.Project{}, &s.Projects},
		{&task.Task{}, &s.Tasks},
		{&brief.Brief{}, &s.Briefs},
		{&dod.DoD{}, &s.DoD},
		{&decisionlog.DecisionLog{}, &s.Decisions},
		{&review.Review{}, &s.Reviews},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return s, err
		}
	}
	s.Total = s.Projects + s.Tasks + s.Briefs + s.DoD + s.Decisions + s.Reviews
	return s, nil
}
