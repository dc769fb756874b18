package template

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/opstrack/server/internal/module/task"
	"go.uber.org/zap"
)

const minCompletionForTemplate = 0.8

// Service handles template business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new template service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SeedSystemTemplates inserts the built-in templates. Safe to call
// repeatedly: templates that already exist are skipped.
func (s *Service) SeedSystemTemplates(ctx context.Context) error {
	var created int
	for _, t := range systemTemplates() {
		exists, err := s.repo.SystemTemplateExists(ctx, t.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		t.IsSystemTemplate = true
		t.Tags = []string{"system", "default", strings.ToLower(string(t.Category))}
		if err := s.repo.Create(ctx, t); err != nil {
			return err
		}
		created++
	}

	if created > 0 {
		s.logger.Info("system templates seeded", zap.Int("created", created))
	}
	return nil
}

// List returns templates matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Template, error) {
	return s.repo.List(ctx, filter)
}

// Get returns one template.
func (s *Service) Get(ctx context.Context, id uint) (*Template, error) {
	return s.repo.GetByID(ctx, id)
}

// Recommend scores every template against the keywords and returns the
// best matches with their reasons.
func (s *Service) Recommend(ctx context.Context, keywords []string, limit int) ([]Recommendation, error) {
	templates, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0)
	for _, t := range templates {
		score := relevance(t, keywords)
		if score <= 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Template:       t.ToResponse(),
			RelevanceScore: score,
			MatchReasons:   matchReasons(t, keywords),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RelevanceScore > recs[j].RelevanceScore
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// GenerateFromProject extracts brief and DoD templates from a project
// that finished well. The project qualifies when at least 80% of its
// tasks are done and at least one task carries a brief or a DoD.
func (s *Service) GenerateFromProject(ctx context.Context, projectID uint) ([]GeneratedTemplate, error) {
	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListProjectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rate := completionRate(tasks)
	if len(tasks) == 0 || rate < minCompletionForTemplate {
		return nil, ErrNotEligible
	}

	taskIDs := make([]uint, 0, len(tasks))
	var doneCount int
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		if t.State == task.StateDone {
			doneCount++
		}
	}

	briefs, err := s.repo.ListBriefsForTasks(ctx, taskIDs)
	if err != nil {
		return nil, err
	}
	dods, err := s.repo.ListDoDsForTasks(ctx, taskIDs)
	if err != nil {
		return nil, err
	}
	if len(briefs) == 0 && len(dods) == 0 {
		return nil, ErrNotEligible
	}

	category := inferCategory(p.Name, p.Description)
	tags := projectTags(p.Name, len(tasks), doneCount)
	successRate := rate

	tx := s.repo.BeginTx(ctx)
	if tx.Error != nil {
		return nil, tx.Error
	}
	txRepo := s.repo.WithTx(tx)

	var generated []GeneratedTemplate

	if content := extractBriefContent(briefs); content != nil {
		t := &Template{
			Name:            fmt.Sprintf("%s 5SB template", p.Name),
			Description:     fmt.Sprintf("5SB template extracted from the completed project %q", p.Name),
			Category:        category,
			TemplateType:    TypeBrief,
			Content:         content,
			IsGenerated:     true,
			SourceProjectID: &projectID,
			SuccessRate:     &successRate,
			Tags:            tags,
		}
		if err := txRepo.Create(ctx, t); err != nil {
			tx.Rollback()
			return nil, err
		}
		generated = append(generated, GeneratedTemplate{
			ID:          t.ID,
			Name:        t.Name,
			Type:        TypeBrief,
			SuccessRate: t.SuccessRate,
		})
	}

	if content := extractDoDContent(dods); content != nil {
		t := &Template{
			Name:            fmt.Sprintf("%s DoD template", p.Name),
			Description:     fmt.Sprintf("DoD template extracted from the completed project %q", p.Name),
			Category:        category,
			TemplateType:    TypeDoD,
			Content:         content,
			IsGenerated:     true,
			SourceProjectID: &projectID,
			SuccessRate:     &successRate,
			Tags:            tags,
		}
		if err := txRepo.Create(ctx, t); err != nil {
			tx.Rollback()
			return nil, err
		}
		generated = append(generated, GeneratedTemplate{
			ID:          t.ID,
			Name:        t.Name,
			Type:        TypeDoD,
			SuccessRate: t.SuccessRate,
		})
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("templates generated from project",
		zap.Uint("project_id", projectID),
		zap.Int("count", len(generated)),
		zap.Float64("completion_rate", rate),
	)

	return generated, nil
}

// RecordUsage logs one template application and bumps its usage count.
func (s *Service) RecordUsage(ctx context.Context, templateID uint, req *UsageRequest) error {
	if _, err := s.repo.GetByID(ctx, templateID); err != nil {
		return err
	}

	usedFor := req.UsedFor
	if usedFor == "" {
		usedFor = "unknown"
	}

	tx := s.repo.BeginTx(ctx)
	if tx.Error != nil {
		return tx.Error
	}
	txRepo := s.repo.WithTx(tx)

	usage := &Usage{
		TemplateID: templateID,
		ProjectID:  req.ProjectID,
		TaskID:     req.TaskID,
		UsedFor:    usedFor,
	}
	if err := txRepo.CreateUsage(ctx, usage); err != nil {
		tx.Rollback()
		return err
	}
	if err := txRepo.IncrementUsage(ctx, templateID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// BestPractices returns curated guidance, optionally per category.
func (s *Service) BestPractices(ctx context.Context, category Category, limit int) ([]*BestPractice, error) {
	return s.repo.ListBestPractices(ctx, category, limit)
}

// Stats aggregates template counts and usage.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
