package dod

import "time"

// CreateDoDRequest is the request body for creating a DoD. Update reuses
// the same shape: a DoD update is a full replacement of its content.
type CreateDoDRequest struct {
	TaskID             uint       `json:"task_id" binding:"required"`
	DeliverableFormats string     `json:"deliverable_formats" binding:"required,min=1"`
	MandatoryChecks    []string   `json:"mandatory_checks" binding:"required"`
	QualityBar         string     `json:"quality_bar" binding:"required,min=1"`
	Verification       string     `json:"verification" binding:"required,min=1"`
	Deadline           *time.Time `json:"deadline"`
	VersionTag         string     `json:"version_tag"`
}

// DoDResponse is the API representation of a DoD.
type DoDResponse struct {
	ID                 uint       `json:"id"`
	TaskID             uint       `json:"task_id"`
	DeliverableFormats string     `json:"deliverable_formats"`
	MandatoryChecks    []string   `json:"mandatory_checks"`
	QualityBar         string     `json:"quality_bar"`
	Verification       string     `json:"verification"`
	Deadline           *time.Time `json:"deadline"`
	VersionTag         string     `json:"version_tag"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ToResponse converts a DoD to its API representation.
func (d *DoD) ToResponse() DoDResponse {
	return DoDResponse{
		ID:                 d.ID,
		TaskID:             d.TaskID,
		DeliverableFormats: d.DeliverableFormats,
		MandatoryChecks:    []string(d.MandatoryChecks),
		QualityBar:         d.QualityBar,
		Verification:       d.Verification,
		Deadline:           d.Deadline,
		VersionTag:         d.VersionTag,
		CreatedAt:          d.CreatedAt,
	}
}
