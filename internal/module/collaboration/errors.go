package collaboration

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already taken")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrNotOwner           = errors.New("only the project owner can share it")
	ErrPermissionDenied   = errors.New("insufficient project permission")
	ErrAssigneeNotMember  = errors.New("assignee is not a project member")
	ErrInviteInvalid      = errors.New("invite is invalid or expired")
	ErrWorkflowNotFound   = errors.New("approval workflow not found")
	ErrWorkflowClosed     = errors.New("approval workflow already completed")
	ErrNotApprover        = errors.New("user is not a designated approver")
	ErrAlreadyResponded   = errors.New("approver already responded")
	ErrDecisionNotFound   = errors.New("team decision not found")
	ErrDecisionConcluded  = errors.New("decision already concluded")
	ErrVotingDisabled     = errors.New("voting is not enabled for this decision")
	ErrVotingClosed       = errors.New("voting deadline has passed")
	ErrInvalidVoteOptions = errors.New("selected options are not among the decision options")
	ErrInvalidParent      = errors.New("parent comment does not belong to this decision")
)
