package export

import "errors"

// ErrProjectNotFound is returned when the project to export does not exist.
var ErrProjectNotFound = errors.New("project not found")
