package decisionlog

import "errors"

// Decision log errors.
var (
	ErrDecisionNotFound = errors.New("decision not found")
	ErrTaskNotFound     = errors.New("task not found")
)
