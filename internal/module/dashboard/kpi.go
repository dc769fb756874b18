package dashboard

import (
	"math"
	"time"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/decisionlog"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/review"
	"github.com/opstrack/server/internal/module/sample"
	"github.com/opstrack/server/internal/module/task"
)

const recentWindowDays = 7

// snapshot is everything the KPI computation reads.
type snapshot struct {
	Tasks     []*task.Task
	Projects  []*project.Project
	Reviews   []*review.Review
	Decisions []*decisionlog.DecisionLog
	Samples   []*sample.Sample
	Briefs    []*brief.Brief
	DoDs      []*dod.DoD
}

// computeKPIs derives the dashboard metrics from a data snapshot. Rates
// are ratios in [0,1] rounded to three decimals; an empty task set
// yields zero rates but still reports the raw counts.
func computeKPIs(s snapshot, now time.Time) KPIResponse {
	resp := KPIResponse{
		TotalProjects:   len(s.Projects),
		TotalTasks:      len(s.Tasks),
		TotalReviews:    len(s.Reviews),
		TotalDecisions:  len(s.Decisions),
		RecentReviews:   len(s.Reviews),
		RecentDecisions: len(s.Decisions),
	}
	if len(s.Tasks) == 0 {
		return resp
	}

	// Rework rate: reworked tasks over done plus in-progress.
	var relevant, reworked int
	for _, t := range s.Tasks {
		if t.State != task.StateDone && t.State != task.StateInProgress {
			continue
		}
		relevant++
		if t.ReworkCount > 0 {
			reworked++
		}
	}
	resp.ReworkRate = round3(ratio(reworked, relevant))

	// Context switches per day, averaged over each task's lifetime.
	var totalDays float64
	var totalSwitches int
	for _, t := range s.Tasks {
		days := daysSince(now, t.CreatedAt)
		if days < 1 {
			days = 1
		}
		totalDays += float64(days)
		totalSwitches += t.ContextSwitchCount
	}
	if totalDays > 0 {
		resp.ContextSwitchesPerDay = round3(float64(totalSwitches) / totalDays)
	}

	var checked int
	for _, t := range s.Tasks {
		if t.DoDChecked {
			checked++
		}
	}
	resp.DoDAdherence = round3(ratio(checked, len(s.Tasks)))

	var approved int
	for _, sm := range s.Samples {
		if sm.Approved {
			approved++
		}
	}
	resp.SampleValidationRate = round3(ratio(approved, len(s.Samples)))

	taskIDs := make(map[uint]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		taskIDs[t.ID] = true
	}

	var briefed int
	seenBrief := make(map[uint]bool)
	for _, b := range s.Briefs {
		if taskIDs[b.TaskID] && !seenBrief[b.TaskID] {
			seenBrief[b.TaskID] = true
			briefed++
		}
	}
	resp.BriefCompletionRate = round3(ratio(briefed, len(s.Tasks)))

	var defined int
	seenDoD := make(map[uint]bool)
	for _, d := range s.DoDs {
		if taskIDs[d.TaskID] && !seenDoD[d.TaskID] {
			seenDoD[d.TaskID] = true
			defined++
		}
	}
	resp.DoDDefinitionRate = round3(ratio(defined, len(s.Tasks)))

	// Average completion across projects that have at least one task.
	var completionSum float64
	var projectsWithTasks int
	for _, p := range s.Projects {
		var total, done int
		for _, t := range s.Tasks {
			if t.ProjectID != p.ID {
				continue
			}
			total++
			if t.State == task.StateDone {
				done++
			}
		}
		if total > 0 {
			projectsWithTasks++
			completionSum += float64(done) / float64(total)
		}
	}
	if projectsWithTasks > 0 {
		resp.AvgProjectCompletion = round3(completionSum / float64(projectsWithTasks))
	}

	for _, t := range s.Tasks {
		switch t.State {
		case task.StateBacklog:
			resp.TaskStates.Backlog++
		case task.StateInProgress:
			resp.TaskStates.InProgress++
		case task.StateDone:
			resp.TaskStates.Done++
		case task.StatePaused:
			resp.TaskStates.Paused++
		case task.StateCanceled:
			resp.TaskStates.Canceled++
		}
	}

	resp.RecentTasks = 0
	for _, t := range s.Tasks {
		if daysSince(now, t.CreatedAt) <= recentWindowDays {
			resp.RecentTasks++
		}
	}
	resp.RecentReviews = 0
	for _, r := range s.Reviews {
		if daysSince(now, r.CreatedAt) <= recentWindowDays {
			resp.RecentReviews++
		}
	}
	resp.RecentDecisions = 0
	for _, d := range s.Decisions {
		if daysSince(now, d.CreatedAt) <= recentWindowDays {
			resp.RecentDecisions++
		}
	}

	return resp
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// daysSince counts whole days elapsed between then and now.
func daysSince(now, then time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}
