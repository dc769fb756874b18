package collaboration

// clampRequiredApprovers caps the approval quorum at the number of
// designated approvers so a workflow can always complete.
func clampRequiredApprovers(required, approverCount int) int {
	if required > approverCount {
		return approverCount
	}
	if required < 1 {
		return 1
	}
	return required
}

// isApprover reports whether userID is on the workflow's approver list.
func isApprover(approverIDs []int64, userID uint) bool {
	for _, id := range approverIDs {
		if uint(id) == userID {
			return true
		}
	}
	return false
}

// resolveApproval decides a workflow's status from its responses.
// Reaching the quorum approves the workflow; short of that, any single
// rejection rejects it outright.
func resolveApproval(required int, responses []*ApprovalResponse) ApprovalStatus {
	approved, rejected := 0, 0
	for _, resp := range responses {
		if resp.IsApproved {
			approved++
		} else {
			rejected++
		}
	}
	switch {
	case approved >= required:
		return ApprovalApproved
	case rejected > 0:
		return ApprovalRejected
	default:
		return ApprovalPending
	}
}

// validateVoteOptions checks that every selected option is one of the
// decision's published options and that at least one option was picked.
func validateVoteOptions(available, selected []string) bool {
	if len(selected) == 0 {
		return false
	}
	known := make(map[string]struct{}, len(available))
	for _, opt := range available {
		known[opt] = struct{}{}
	}
	for _, opt := range selected {
		if _, ok := known[opt]; !ok {
			return false
		}
	}
	return true
}

// tallyVotes counts how many ballots selected each option.
func tallyVotes(votes []*DecisionVote) map[string]int {
	counts := make(map[string]int)
	for _, vote := range votes {
		for _, opt := range vote.SelectedOptions {
			counts[opt]++
		}
	}
	return counts
}
