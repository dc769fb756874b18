package task

import "errors"

// Task errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidState    = errors.New("invalid task state")
	ErrWIPLimitReached = errors.New("wip limit exceeded")
)
