package search

import "errors"

// ErrProjectNotFound is returned when the referenced project does not exist.
var ErrProjectNotFound = errors.New("project not found")
