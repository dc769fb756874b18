package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/decisionlog"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/review"
	"github.com/opstrack/server/internal/module/task"
)

// projectExport is everything the markdown renderer needs, loaded up
// front so rendering itself is pure.
type projectExport struct {
	Project   *project.Project
	Tasks     []*task.Task
	Briefs    map[uint]*brief.Brief
	DoDs      map[uint]*dod.DoD
	Decisions map[uint][]*decisionlog.DecisionLog
	Reviews   map[uint][]*review.Review
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("2006-01-02")
}

// renderMarkdown turns a loaded project into a markdown document.
func renderMarkdown(e projectExport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", e.Project.Name)
	if e.Project.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", e.Project.Description)
	}

	var done int
	for _, t := range e.Tasks {
		if t.State == task.StateDone {
			done++
		}
	}
	completion := "0%"
	if len(e.Tasks) > 0 {
		completion = fmt.Sprintf("%.1f%%", float64(done)/float64(len(e.Tasks))*100)
	}

	b.WriteString("## Overview\n")
	created := e.Project.CreatedAt
	fmt.Fprintf(&b, "- Created: %s\n", fmtDate(&created))
	fmt.Fprintf(&b, "- Tasks: %d\n", len(e.Tasks))
	fmt.Fprintf(&b, "- Completion: %s\n\n", completion)

	b.WriteString("## Tasks\n")
	if len(e.Tasks) == 0 {
		b.WriteString("(no tasks)\n\n")
		return b.String()
	}

	for _, t := range e.Tasks {
		fmt.Fprintf(&b, "### [%s] %s\n", t.State, t.Title)
		fmt.Fprintf(&b, "- Priority: P%d\n", t.Priority)
		fmt.Fprintf(&b, "- Due: %s\n", fmtDate(t.DueDate))
		check := "✗"
		if t.DoDChecked {
			check = "✓"
		}
		fmt.Fprintf(&b, "- DoD: %s\n", check)

		if br := e.Briefs[t.ID]; br != nil {
			b.WriteString("- 5SB:\n")
			fmt.Fprintf(&b, "  - Purpose: %s\n", br.Purpose)
			fmt.Fprintf(&b, "  - Success: %s\n", br.SuccessCriteria)
			fmt.Fprintf(&b, "  - Constraints: %s\n", br.Constraints)
			fmt.Fprintf(&b, "  - Priority: %s\n", br.Priority)
			fmt.Fprintf(&b, "  - Validation: %s\n", br.Validation)
		}

		if d := e.DoDs[t.ID]; d != nil {
			b.WriteString("- DoD Details:\n")
			fmt.Fprintf(&b, "  - Deliverable Formats: %s\n", d.DeliverableFormats)
			fmt.Fprintf(&b, "  - Mandatory: %s\n", strings.Join(d.MandatoryChecks, ", "))
			fmt.Fprintf(&b, "  - Quality Bar: %s\n", d.QualityBar)
			fmt.Fprintf(&b, "  - Verification: %s\n", d.Verification)
			fmt.Fprintf(&b, "  - Deadline: %s\n", fmtDate(d.Deadline))
			fmt.Fprintf(&b, "  - Version: %s\n", d.VersionTag)
		}

		if logs := e.Decisions[t.ID]; len(logs) > 0 {
			b.WriteString("- Decision Logs:\n")
			for _, dl := range logs {
				date := dl.Date
				fmt.Fprintf(&b, "  - Date: %s\n", fmtDate(&date))
				fmt.Fprintf(&b, "    - Problem: %s\n", dl.Problem)
				fmt.Fprintf(&b, "    - Options: %s\n", dl.Options)
				fmt.Fprintf(&b, "    - Decision: %s\n", dl.DecisionReason)
				fmt.Fprintf(&b, "    - Risks: %s\n", dl.AssumptionsRisks)
				if dl.DPlus7Review != nil && *dl.DPlus7Review != "" {
					fmt.Fprintf(&b, "    - D+7 Review: %s\n", *dl.DPlus7Review)
				}
			}
		}

		if reviews := e.Reviews[t.ID]; len(reviews) > 0 {
			b.WriteString("- Reviews:\n")
			for _, rv := range reviews {
				created := rv.CreatedAt
				fmt.Fprintf(&b, "  - %s (%s):\n", reviewTypeLabel(rv.ReviewType), fmtDate(&created))
				fmt.Fprintf(&b, "    - Positives: %s\n", rv.Positives)
				fmt.Fprintf(&b, "    - Negatives: %s\n", rv.Negatives)
				fmt.Fprintf(&b, "    - Changes for Next: %s\n", rv.ChangesNext)
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}

// reviewTypeLabel renders PREMORTEM as Premortem.
func reviewTypeLabel(t review.Type) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	label = strings.ToLower(label)
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
