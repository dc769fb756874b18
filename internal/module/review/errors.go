package review

import "errors"

// Review errors.
var (
	ErrReviewNotFound = errors.New("review not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrInvalidType    = errors.New("invalid review type")
)
