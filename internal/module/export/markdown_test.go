package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/decisionlog"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/review"
	"github.com/opstrack/server/internal/module/task"
)

func TestRenderMarkdown_EmptyProject(t *testing.T) {
	e := projectExport{
		Project: &project.Project{
			Name:      "Idle",
			CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		Briefs:    map[uint]*brief.Brief{},
		DoDs:      map[uint]*dod.DoD{},
		Decisions: map[uint][]*decisionlog.DecisionLog{},
		Reviews:   map[uint][]*review.Review{},
	}

	got := renderMarkdown(e)

	assert.True(t, strings.HasPrefix(got, "# Idle\n\n"))
	assert.Contains(t, got, "- Created: 2024-03-01\n")
	assert.Contains(t, got, "- Tasks: 0\n")
	assert.Contains(t, got, "- Completion: 0%\n")
	assert.Contains(t, got, "(no tasks)\n")
}

func TestRenderMarkdown_FullProject(t *testing.T) {
	due := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	d7 := "held up well"

	e := projectExport{
		Project: &project.Project{
			Name:        "Relaunch",
			Description: "Website relaunch for Q2.",
			CreatedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		Tasks: []*task.Task{
			{ID: 1, Title: "Design pages", State: task.StateDone, Priority: 2, DueDate: &due, DoDChecked: true},
			{ID: 2, Title: "Write copy", State: task.StateInProgress, Priority: 3},
		},
		Briefs: map[uint]*brief.Brief{
			1: {TaskID: 1, Purpose: "refresh brand", SuccessCriteria: "signoff", Constraints: "two weeks", Priority: "blocks launch", Validation: "stakeholder review"},
		},
		DoDs: map[uint]*dod.DoD{
			1: {TaskID: 1, DeliverableFormats: "FIGMA,PDF", MandatoryChecks: []string{"responsive", "accessible"}, QualityBar: "no major findings", Verification: "design review", VersionTag: "v0.1"},
		},
		Decisions: map[uint][]*decisionlog.DecisionLog{
			2: {{TaskID: 2, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Problem: "tone", Options: "formal or casual", DecisionReason: "casual fits brand", AssumptionsRisks: "may read unprofessional", DPlus7Review: &d7}},
		},
		Reviews: map[uint][]*review.Review{
			1: {{TaskID: 1, ReviewType: review.TypeRetro, Positives: "fast", Negatives: "late feedback", ChangesNext: "earlier reviews", CreatedAt: time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC)}},
		},
	}

	got := renderMarkdown(e)

	assert.Contains(t, got, "# Relaunch\n\nWebsite relaunch for Q2.\n\n")
	assert.Contains(t, got, "- Completion: 50.0%\n")
	assert.Contains(t, got, "### [DONE] Design pages\n")
	assert.Contains(t, got, "- Priority: P2\n")
	assert.Contains(t, got, "- Due: 2024-04-15\n")
	assert.Contains(t, got, "- DoD: ✓\n")
	assert.Contains(t, got, "  - Purpose: refresh brand\n")
	assert.Contains(t, got, "  - Mandatory: responsive, accessible\n")
	assert.Contains(t, got, "  - Deadline: —\n")
	assert.Contains(t, got, "### [IN_PROGRESS] Write copy\n")
	// The unfinished task has no due date or DoD check.
	assert.Contains(t, got, "- Due: —\n")
	assert.Contains(t, got, "- DoD: ✗\n")
	assert.Contains(t, got, "  - Date: 2024-03-05\n")
	assert.Contains(t, got, "    - D+7 Review: held up well\n")
	assert.Contains(t, got, "  - Retro (2024-04-20):\n")
	assert.Contains(t, got, "    - Changes for Next: earlier reviews\n")
}

func TestReviewTypeLabel(t *testing.T) {
	assert.Equal(t, "Premortem", reviewTypeLabel(review.TypePremortem))
	assert.Equal(t, "Midmortem", reviewTypeLabel(review.TypeMidmortem))
	assert.Equal(t, "Retro", reviewTypeLabel(review.TypeRetro))
}
