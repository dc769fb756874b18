package project

import "errors"

// Project errors.
var (
	ErrProjectNotFound = errors.New("project not found")
)
