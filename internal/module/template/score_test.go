package template

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/task"
)

func floatPtr(v float64) *float64 { return &v }

func TestRelevance(t *testing.T) {
	tmpl := &Template{
		Name:        "Web application 5SB",
		Description: "Brief template for web projects",
		Category:    CategoryWebDevelopment,
		Tags:        []string{"system", "web_development"},
	}

	tests := []struct {
		name     string
		keywords []string
		want     float64
	}{
		{
			name:     "no keywords",
			keywords: nil,
			want:     0,
		},
		{
			// name 3.0 + description 2.0 + tag 1.5 + category 1.0.
			name:     "single keyword hits all fields",
			keywords: []string{"web"},
			want:     7.5,
		},
		{
			name:     "no matches",
			keywords: []string{"blockchain"},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevance(tmpl, tt.keywords))
		})
	}
}

func TestRelevance_Bonuses(t *testing.T) {
	tmpl := &Template{
		Name:        "General project skeleton",
		Category:    CategoryGeneral,
		UsageCount:  30,
		SuccessRate: floatPtr(0.9),
	}

	// name 3.0 + popularity capped at 2.0 + success 0.9*2.
	got := relevance(tmpl, []string{"skeleton"})
	assert.Equal(t, 6.8, got)
}

func TestMatchReasons(t *testing.T) {
	tmpl := &Template{
		Name:        "Web application 5SB",
		Description: "Covers planning basics",
		UsageCount:  8,
		SuccessRate: floatPtr(0.92),
	}

	reasons := matchReasons(tmpl, []string{"web", "planning", "blockchain"})

	assert.Contains(t, reasons, `template name contains "web"`)
	assert.Contains(t, reasons, `description contains "planning"`)
	assert.Contains(t, reasons, "popular template used 8 times")
	assert.Contains(t, reasons, "proven template with 92% success rate")
	assert.Len(t, reasons, 4)
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        Category
	}{
		{"Company website relaunch", "", CategoryWebDevelopment},
		{"Quarterly report", "market research for Q3", CategoryResearch},
		{"Cloud migration", "move workloads to new servers", CategoryInfrastructure},
		{"Untitled", "nothing specific", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferCategory(tt.name, tt.description))
		})
	}
}

func TestProjectTags(t *testing.T) {
	tags := projectTags("Mobile App Redesign", 12, 11)

	assert.Contains(t, tags, "mobile")
	assert.Contains(t, tags, "app")
	assert.Contains(t, tags, "redesign")
	assert.Contains(t, tags, "large-project")
	assert.Contains(t, tags, "high-success")
	assert.NotContains(t, tags, "medium-success")
}

func TestProjectTags_SmallProject(t *testing.T) {
	tags := projectTags("CRM", 3, 2)

	assert.Contains(t, tags, "crm")
	assert.Contains(t, tags, "small-project")
	// 2/3 does not clear the 0.7 bar.
	assert.NotContains(t, tags, "medium-success")
}

func TestExtractBriefContent(t *testing.T) {
	assert.Nil(t, extractBriefContent(nil))

	briefs := []*brief.Brief{
		{TaskID: 1, Purpose: "short", SuccessCriteria: "s", Constraints: "c", Priority: "p", Validation: "v"},
		{TaskID: 2, Purpose: "a much longer and more detailed purpose", SuccessCriteria: "detailed criteria", Constraints: "c2", Priority: "p2", Validation: "v2"},
	}

	content := extractBriefContent(briefs)
	assert.Equal(t, "a much longer and more detailed purpose", content["purpose"])
	assert.Equal(t, "c2", content["constraints"])
}

func TestExtractDoDContent(t *testing.T) {
	dods := []*dod.DoD{
		{TaskID: 1, DeliverableFormats: "MD", MandatoryChecks: []string{"one"}, QualityBar: "q1", Verification: "v1"},
		{TaskID: 2, DeliverableFormats: "MD,PDF", MandatoryChecks: []string{"one", "two", "three"}, QualityBar: "q2", Verification: "v2"},
	}

	content := extractDoDContent(dods)
	assert.Equal(t, "MD,PDF", content["deliverable_formats"])
	assert.Equal(t, []string{"one", "two", "three"}, content["mandatory_checks"])
	assert.Equal(t, "v1.0", content["version_tag"])
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, completionRate(nil))

	tasks := []*task.Task{
		{State: task.StateDone},
		{State: task.StateDone},
		{State: task.StateBacklog},
		{State: task.StateCanceled},
	}
	assert.Equal(t, 0.5, completionRate(tasks))
}
