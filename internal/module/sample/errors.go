package sample

import "errors"

var (
	// ErrSampleNotFound is returned when a sample does not exist.
	ErrSampleNotFound = errors.New("sample not found")
	// ErrTaskNotFound is returned when the referenced task does not exist.
	ErrTaskNotFound = errors.New("task not found")
)
