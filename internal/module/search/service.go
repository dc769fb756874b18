package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Service implements unified search, similar-project matching and
// decision-pattern analysis.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new search service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Unified searches the requested content types for the query and scores
// every hit.
func (s *Service) Unified(ctx context.Context, query string, types []string, limit int) (*UnifiedResponse, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < 2 {
		return &UnifiedResponse{Results: map[string][]Result{}}, nil
	}
	if len(types) == 0 {
		types = AllContentTypes
	}

	resp := &UnifiedResponse{
		Results: make(map[string][]Result),
		Query:   query,
	}

	for _, t := range types {
		var (
			results []Result
			err     error
		)
		switch t {
		case TypeProjects:
			results, err = s.searchProjects(ctx, query, limit)
		case TypeTasks:
			results, err = s.searchTasks(ctx, query, limit)
		case TypeBriefs:
			results, err = s.searchBriefs(ctx, query, limit)
		case TypeDoD:
			results, err = s.searchDoDs(ctx, query, limit)
		case TypeDecisions:
			results, err = s.searchDecisions(ctx, query, limit)
		case TypeReviews:
			results, err = s.searchReviews(ctx, query, limit)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		resp.Results[t] = results
		resp.TotalResults += len(results)
	}

	return resp, nil
}

func (s *Service) searchProjects(ctx context.Context, query string, limit int) ([]Result, error) {
	projects, err := s.repo.SearchProjects(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(projects))
	for _, p := range projects {
		results = append(results, Result{
			ID:             p.ID,
			Type:           "project",
			Title:          p.Name,
			Content:        p.Description,
			CreatedAt:      p.CreatedAt,
			RelevanceScore: textRelevance(query, []string{p.Name, p.Description}),
		})
	}
	return results, nil
}

func (s *Service) searchTasks(ctx context.Context, query string, limit int) ([]Result, error) {
	tasks, err := s.repo.SearchTasks(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(tasks))
	for _, t := range tasks {
		results = append(results, Result{
			ID:             t.ID,
			Type:           "task",
			Title:          t.Title,
			Content:        fmt.Sprintf("Priority: P%d, State: %s", t.Priority, t.State),
			ProjectID:      t.ProjectID,
			CreatedAt:      t.CreatedAt,
			RelevanceScore: textRelevance(query, []string{t.Title}),
		})
	}
	return results, nil
}

func (s *Service) searchBriefs(ctx context.Context, query string, limit int) ([]Result, error) {
	briefs, err := s.repo.SearchBriefs(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(briefs))
	for _, b := range briefs {
		results = append(results, Result{
			ID:             b.ID,
			Type:           "brief",
			Title:          fmt.Sprintf("5SB - Task #%d", b.TaskID),
			Content:        "Purpose: " + snippet(b.Purpose, 100),
			TaskID:         b.TaskID,
			CreatedAt:      b.CreatedAt,
			RelevanceScore: textRelevance(query, []string{b.Purpose, b.SuccessCriteria, b.Constraints, b.Priority, b.Validation}),
		})
	}
	return results, nil
}

func (s *Service) searchDoDs(ctx context.Context, query string, limit int) ([]Result, error) {
	dods, err := s.repo.SearchDoDs(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(dods))
	for _, d := range dods {
		results = append(results, Result{
			ID:             d.ID,
			Type:           "dod",
			Title:          fmt.Sprintf("DoD - Task #%d", d.TaskID),
			Content:        "Quality bar: " + snippet(d.QualityBar, 100),
			TaskID:         d.TaskID,
			CreatedAt:      d.CreatedAt,
			RelevanceScore: textRelevance(query, []string{d.DeliverableFormats, d.QualityBar, d.Verification}),
		})
	}
	return results, nil
}

func (s *Service) searchDecisions(ctx context.Context, query string, limit int) ([]Result, error) {
	logs, err := s.repo.SearchDecisions(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(logs))
	for _, d := range logs {
		results = append(results, Result{
			ID:             d.ID,
			Type:           "decision",
			Title:          "Decision - " + snippet(d.Problem, 50),
			Content:        "Decision: " + snippet(d.DecisionReason, 100),
			TaskID:         d.TaskID,
			CreatedAt:      d.CreatedAt,
			RelevanceScore: textRelevance(query, []string{d.Problem, d.Options, d.DecisionReason, d.AssumptionsRisks}),
		})
	}
	return results, nil
}

func (s *Service) searchReviews(ctx context.Context, query string, limit int) ([]Result, error) {
	reviews, err := s.repo.SearchReviews(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(reviews))
	for _, r := range reviews {
		results = append(results, Result{
			ID:             r.ID,
			Type:           "review",
			Title:          fmt.Sprintf("%s review - Task #%d", r.ReviewType, r.TaskID),
			Content:        "Positives: " + snippet(r.Positives, 100),
			TaskID:         r.TaskID,
			CreatedAt:      r.CreatedAt,
			RelevanceScore: textRelevance(query, []string{r.Positives, r.Negatives, r.ChangesNext}),
		})
	}
	return results, nil
}

// FindSimilarProjects ranks other projects by keyword overlap with the
// given project's name and description.
func (s *Service) FindSimilarProjects(ctx context.Context, projectID uint, limit int) ([]SimilarProject, error) {
	current, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	keywords := extractKeywords([]string{current.Name, current.Description})
	if len(keywords) == 0 {
		return []SimilarProject{}, nil
	}

	others, err := s.repo.ListOtherProjects(ctx, projectID)
	if err != nil {
		return nil, err
	}

	similar := make([]SimilarProject, 0)
	for _, p := range others {
		score := keywordSimilarity(keywords, []string{p.Name, p.Description})
		if score <= 0 {
			continue
		}
		similar = append(similar, SimilarProject{
			ID:              p.ID,
			Name:            p.Name,
			Description:     p.Description,
			SimilarityScore: score,
			CreatedAt:       p.CreatedAt,
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// DecisionPatterns finds past decisions whose problem or options match
// the query, ranked by relevance.
func (s *Service) DecisionPatterns(ctx context.Context, query string, limit int) ([]DecisionPattern, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < 3 {
		return []DecisionPattern{}, nil
	}

	logs, err := s.repo.RecentDecisionsMatching(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	patterns := make([]DecisionPattern, 0, len(logs))
	for _, d := range logs {
		hasReview := d.DPlus7Review != nil && strings.TrimSpace(*d.DPlus7Review) != ""
		patterns = append(patterns, DecisionPattern{
			ID:             d.ID,
			Problem:        d.Problem,
			Options:        d.Options,
			Decision:       d.DecisionReason,
			Risks:          d.AssumptionsRisks,
			DPlus7Review:   d.DPlus7Review,
			HasReview:      hasReview,
			TaskID:         d.TaskID,
			CreatedAt:      d.CreatedAt,
			RelevanceScore: textRelevance(query, []string{d.Problem, d.Options}),
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].RelevanceScore > patterns[j].RelevanceScore
	})
	return patterns, nil
}

// ProjectSuggestions bundles similar projects and related decision
// patterns for one project.
func (s *Service) ProjectSuggestions(ctx context.Context, projectID uint) (*SuggestionsResponse, error) {
	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	similar, err := s.FindSimilarProjects(ctx, projectID, 5)
	if err != nil {
		return nil, err
	}

	// Seed the pattern lookup with the first words of the project name.
	words := strings.Fields(p.Name)
	if len(words) > 3 {
		words = words[:3]
	}
	seed := strings.Join(words, " ")

	patterns := []DecisionPattern{}
	if len([]rune(seed)) >= 3 {
		patterns, err = s.DecisionPatterns(ctx, seed, 5)
		if err != nil {
			return nil, err
		}
	}

	return &SuggestionsResponse{
		Project: ProjectSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		},
		Suggestions: Suggestions{
			SimilarProjects:  similar,
			RelatedDecisions: patterns,
			Recommendations: []string{
				"Review the success patterns of similar past projects",
				"Check related past decisions to surface risks early",
				"Define a clear 5SB and DoD to raise the odds of success",
			},
		},
	}, nil
}

// ContentStats returns counts of searchable content.
func (s *Service) ContentStats(ctx context.Context) (ContentSummary, error) {
	return s.repo.CountContent(ctx)
}
