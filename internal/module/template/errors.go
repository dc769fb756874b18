package template

import "errors"

var (
	// ErrTemplateNotFound is returned when a template does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrProjectNotFound is returned when the referenced project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNotEligible is returned when a project does not qualify for
	// template extraction: it needs at least 80% of its tasks done and
	// at least one brief or DoD to extract from.
	ErrNotEligible = errors.New("project does not meet template generation conditions")
)
