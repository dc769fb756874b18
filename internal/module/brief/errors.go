package brief

import "errors"

// Brief errors.
var (
	ErrBriefNotFound = errors.New("brief not found")
	ErrTaskNotFound  = errors.New("task not found")
	// ErrBriefExists signals the 1:1 constraint: a task carries at most
	// one brief, and a second create is a conflict, not an upsert.
	ErrBriefExists = errors.New("brief already exists for this task")
)
