package dod

import "errors"

// DoD errors.
var (
	ErrDoDNotFound  = errors.New("dod not found")
	ErrTaskNotFound = errors.New("task not found")
	// ErrDoDExists signals the 1:1 constraint: a task carries at most
	// one DoD record.
	ErrDoDExists = errors.New("dod already exists for this task")
)
