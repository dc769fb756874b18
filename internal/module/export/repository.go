package export

import (
	"context"
	"errors"

	"github.com/opstrack/server/internal/module/brief"
	"github.com/opstrack/server/internal/module/decisionlog"
	"github.com/opstrack/server/internal/module/dod"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/review"
	"gorm.io/gorm"
)

// Repository loads a whole project tree for export.
type Repository interface {
	LoadProject(ctx context.Context, projectID uint) (projectExport, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new export repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LoadProject(ctx context.Context, projectID uint) (projectExport, error) {
	var e projectExport
	db := r.db.WithContext(ctx)

	var p project.Project
	if err := db.First(&p, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return e, ErrProjectNotFound
		}
		return e, err
	}
	e.Project = &p

	if err := db.Where("project_id = ?", projectID).Order("id").Find(&e.Tasks).Error; err != nil {
		return e, err
	}

	taskIDs := make([]uint, 0, len(e.Tasks))
	for _, t := range e.Tasks {
		taskIDs = append(taskIDs, t.ID)
	}

	e.Briefs = make(map[uint]*brief.Brief)
	e.DoDs = make(map[uint]*dod.DoD)
	e.Decisions = make(map[uint][]*decisionlog.DecisionLog)
	e.Reviews = make(map[uint][]*review.Review)
	if len(taskIDs) == 0 {
		return e, nil
	}

	var briefs []*brief.Brief
	if err := db.Where("task_id IN ?", taskIDs).Find(&briefs).Error; err != nil {
		return e, err
	}
	for _, b := range briefs {
		e.Briefs[b.TaskID] = b
	}

	var dods []*dod.DoD
	if err := db.Where("task_id IN ?", taskIDs).Find(&dods).Error; err != nil {
		return e, err
	}
	for _, d := range dods {
		e.DoDs[d.TaskID] = d
	}

	var logs []*decisionlog.DecisionLog
	if err := db.Where("task_id IN ?", taskIDs).Order("id").Find(&logs).Error; err != nil {
		return e, err
	}
	for _, dl := range logs {
		e.Decisions[dl.TaskID] = append(e.Decisions[dl.TaskID], dl)
	}

	var reviews []*review.Review
	if err := db.Where("task_id IN ?", taskIDs).Order("id").Find(&reviews).Error; err != nil {
		return e, err
	}
	for _, rv := range reviews {
		e.Reviews[rv.TaskID] = append(e.Reviews[rv.TaskID], rv)
	}

	return e, nil
}
