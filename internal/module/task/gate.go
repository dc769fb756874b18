package task

// WIP gate: entering IN_PROGRESS is a global admission check against the
// configured limit. Every other transition is unconditionally allowed,
// including reopening CANCELED or DONE tasks.

// canEnter reports whether a task may move into the given state while
// wipCount tasks are already in progress. The count must exclude the task
// being moved; callers evaluate this inside the same transaction as the
// state write.
func canEnter(to State, wipCount int, limit int) bool {
	if to != StateInProgress {
		return true
	}
	return wipCount < limit
}
