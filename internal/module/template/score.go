package template

import (
	"fmt"
	"math"
	"strings"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/task"
)

// Relevance scoring weights. Name matches count most, then description,
// tags and category; popularity and proven success add bounded bonuses.
const (
	nameMatchScore     = 3.0
	descMatchScore     = 2.0
	tagMatchScore      = 1.5
	categoryMatchScore = 1.0
	popularityPerUse   = 0.1
	popularityCap      = 2.0
	successWeight      = 2.0
)

// relevance scores a template against project keywords.
func relevance(t *Template, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	var score float64
	name := strings.ToLower(t.Name)
	desc := strings.ToLower(t.Description)
	category := strings.ToLower(strings.ReplaceAll(string(t.Category), "_", " "))

	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if strings.Contains(name, kw) {
			score += nameMatchScore
		}
		if desc != "" && strings.Contains(desc, kw) {
			score += descMatchScore
		}
		for _, tag := range t.Tags {
			if strings.Contains(strings.ToLower(tag), kw) {
				score += tagMatchScore
			}
		}
		if strings.Contains(category, kw) {
			score += categoryMatchScore
		}
	}

	score += math.Min(float64(t.UsageCount)*popularityPerUse, popularityCap)
	if t.SuccessRate != nil {
		score += *t.SuccessRate * successWeight
	}

	return math.Round(score*100) / 100
}

// matchReasons explains, per keyword, why a template was recommended.
func matchReasons(t *Template, keywords []string) []string {
	reasons := []string{}
	name := strings.ToLower(t.Name)
	desc := strings.ToLower(t.Description)

	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		switch {
		case strings.Contains(name, lower):
			reasons = append(reasons, fmt.Sprintf("template name contains %q", kw))
		case desc != "" && strings.Contains(desc, lower):
			reasons = append(reasons, fmt.Sprintf("description contains %q", kw))
		}
	}

	if t.UsageCount > 5 {
		reasons = append(reasons, fmt.Sprintf("popular template used %d times", t.UsageCount))
	}
	if t.SuccessRate != nil && *t.SuccessRate > 0.8 {
		reasons = append(reasons, fmt.Sprintf("proven template with %.0f%% success rate", *t.SuccessRate*100))
	}

	return reasons
}

var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryWebDevelopment, []string{"web", "website", "frontend", "backend"}},
	{CategoryMobileApp, []string{"mobile", "app", "ios", "android"}},
	{CategoryDataAnalysis, []string{"data", "analysis", "analytics"}},
	{CategoryResearch, []string{"research", "study", "survey"}},
	{CategoryMarketing, []string{"marketing", "campaign", "promotion"}},
	{CategoryDesign, []string{"design", "ui", "ux", "graphic"}},
	{CategoryInfrastructure, []string{"infrastructure", "server", "cloud"}},
	{CategoryAutomation, []string{"automation", "script", "bot"}},
}

// inferCategory guesses a template category from project text.
func inferCategory(name, description string) Category {
	text := strings.ToLower(name + " " + description)
	for _, ck := range categoryKeywords {
		for _, word := range ck.words {
			if strings.Contains(text, word) {
				return ck.category
			}
		}
	}
	return CategoryGeneral
}

// projectTags derives tags from a project's name and task outcomes.
func projectTags(name string, totalTasks, doneTasks int) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, word := range strings.Fields(strings.ToLower(name)) {
		if len([]rune(word)) >= 3 {
			add(word)
		}
	}

	switch {
	case totalTasks > 10:
		add("large-project")
	case totalTasks > 5:
		add("medium-project")
	default:
		add("small-project")
	}

	if totalTasks > 0 {
		rate := float64(doneTasks) / float64(totalTasks)
		if rate > 0.9 {
			add("high-success")
		} else if rate > 0.7 {
			add("medium-success")
		}
	}

	return tags
}

// extractBriefContent picks the most detailed brief as the skeleton.
func extractBriefContent(briefs []*brief.Brief) map[string]any {
	if len(briefs) == 0 {
		return nil
	}

	best := briefs[0]
	for _, b := range briefs[1:] {
		if len(b.Purpose)+len(b.SuccessCriteria) > len(best.Purpose)+len(best.SuccessCriteria) {
			best = b
		}
	}

	return map[string]any{
		"purpose":          best.Purpose,
		"success_criteria": best.SuccessCriteria,
		"constraints":      best.Constraints,
		"priority":         best.Priority,
		"validation":       best.Validation,
	}
}

// extractDoDContent picks the DoD with the most mandatory checks.
func extractDoDContent(dods []*dod.DoD) map[string]any {
	if len(dods) == 0 {
		return nil
	}

	best := dods[0]
	for _, d := range dods[1:] {
		if len(d.MandatoryChecks) > len(best.MandatoryChecks) {
			best = d
		}
	}

	checks := []string(best.MandatoryChecks)
	if checks == nil {
		checks = []string{}
	}

	return map[string]any{
		"deliverable_formats": best.DeliverableFormats,
		"mandatory_checks":    checks,
		"quality_bar":         best.QualityBar,
		"verification":        best.Verification,
		"version_tag":         "v1.0",
	}
}

// completionRate is the done fraction of a task list.
func completionRate(tasks []*task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var done int
	for _, t := range tasks {
		if t.State == task.StateDone {
			done++
		}
	}
	return float64(done) / float64(len(tasks))
}
