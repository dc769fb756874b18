package collaboration

import (
	"context"
	"time"

	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/task"
	"github.com/opstrack/server/internal/utils/random"
	"go.uber.org/zap"
)

// inviteTTL is how long a share invite stays redeemable.
const inviteTTL = 7 * 24 * time.Hour

// inviteTokenBytes is the entropy of an invite token before encoding.
const inviteTokenBytes = 32

// Service handles collaboration business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new collaboration service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GetOrCreateUser returns the user matching the username or email, creating
// a new one when neither matches. The second return value reports whether a
// user was created.
func (s *Service) GetOrCreateUser(ctx context.Context, req *CreateUserRequest) (*User, bool, error) {
	existing, err := s.repo.FindUserByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	fullName := req.FullName
	if fullName == nil {
		fullName = &req.Username
	}
	user := &User{
		Username: req.Username,
		Email:    req.Email,
		FullName: fullName,
		IsActive: true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}

	s.logger.Info("user created",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return user, true, nil
}

// UserProjects lists the projects a user owns, plus the ones shared with
// them when includeShared is set.
func (s *Service) UserProjects(ctx context.Context, userID uint, includeShared bool) ([]*project.Project, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	owned, err := s.repo.ListOwnedProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !includeShared {
		return owned, nil
	}

	memberIDs, err := s.repo.MemberProjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	shared, err := s.repo.ListProjectsByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(owned))
	result := make([]*project.Project, 0, len(owned)+len(shared))
	for _, p := range owned {
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	for _, p := range shared {
		if _, ok := seen[p.ID]; !ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// ShareProject creates an invite for a project. Only the owner can share.
func (s *Service) ShareProject(ctx context.Context, projectID, ownerID uint, req *ShareProjectRequest) (*ProjectInvite, error) {
	proj, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	role := req.Role
	if role == "" {
		role = RoleMember
	}
	permissions := req.Permissions
	if permissions == "" {
		permissions = PermissionRead
	}

	token, err := random.Base64URL(inviteTokenBytes)
	if err != nil {
		return nil, err
	}

	invite := &ProjectInvite{
		ProjectID:     projectID,
		InvitedByID:   ownerID,
		InvitedUserID: req.TargetUserID,
		InvitedEmail:  req.TargetEmail,
		Role:          role,
		Permissions:   permissions,
		InviteToken:   token,
		Status:        InvitePending,
		ExpiresAt:     s.now().Add(inviteTTL),
	}
	if err := s.repo.CreateInvite(ctx, invite); err != nil {
		return nil, err
	}

	s.logger.Info("project shared",
		zap.Uint("project_id", projectID),
		zap.Uint("invite_id", invite.ID),
		zap.String("role", string(role)),
		zap.String("permissions", string(permissions)),
	)
	return invite, nil
}

// AcceptInvite redeems a pending invite and adds the user as a member.
// The invite update and the membership insert commit together.
func (s *Service) AcceptInvite(ctx context.Context, token string, userID uint) (*ProjectMember, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	txRepo := s.repo.WithTx(tx)

	now := s.now()
	invite, err := txRepo.GetPendingInviteByToken(ctx, token, now)
	if err != nil {
		return nil, err
	}

	invite.Status = InviteAccepted
	invite.RespondedAt = &now
	if err := txRepo.UpdateInvite(ctx, invite); err != nil {
		return nil, err
	}

	member := &ProjectMember{
		ProjectID:   invite.ProjectID,
		UserID:      userID,
		Role:        invite.Role,
		Permissions: invite.Permissions,
	}
	if err := txRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("invite accepted",
		zap.Uint("project_id", invite.ProjectID),
		zap.Uint("user_id", userID),
	)
	return member, nil
}

// ProjectMembers lists a project's members. The owner is returned first as a
// synthetic entry with admin permissions.
func (s *Service) ProjectMembers(ctx context.Context, projectID uint) (*MemberListResponse, error) {
	proj, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ids := []uint{proj.OwnerID}
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := s.repo.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]MemberEntry, 0, len(members)+1)
	if owner, ok := users[proj.OwnerID]; ok {
		entries = append(entries, MemberEntry{
			User:        owner.ToResponse(),
			Role:        RoleOwner,
			Permissions: PermissionAdmin,
			JoinedAt:    proj.CreatedAt,
			IsOwner:     true,
		})
	}
	for _, m := range members {
		u, ok := users[m.UserID]
		if !ok {
			continue
		}
		entries = append(entries, MemberEntry{
			User:        u.ToResponse(),
			Role:        m.Role,
			Permissions: m.Permissions,
			JoinedAt:    m.JoinedAt,
			IsOwner:     false,
		})
	}

	return &MemberListResponse{
		ProjectID: projectID,
		Members:   entries,
		Total:     len(entries),
	}, nil
}

// HasPermission reports whether a user holds at least the required
// permission on a project. The owner holds every permission.
func (s *Service) HasPermission(ctx context.Context, userID, projectID uint, required SharePermission) (bool, error) {
	proj, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return false, err
	}
	if proj.OwnerID == userID {
		return true, nil
	}
	member, err := s.repo.GetMember(ctx, projectID, userID)
	if err != nil {
		return false, err
	}
	if member == nil {
		return false, nil
	}
	return member.Permissions.Covers(required), nil
}

// AssignTask sets a task's assignee. The assigner needs write access and
// the assignee must at least be able to read the project.
func (s *Service) AssignTask(ctx context.Context, taskID, assigneeID, assignerID uint) (*task.Task, error) {
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	ok, err := s.HasPermission(ctx, assignerID, t.ProjectID, PermissionWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	ok, err = s.HasPermission(ctx, assigneeID, t.ProjectID, PermissionRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAssigneeNotMember
	}

	updated, err := s.repo.SetTaskAssignee(ctx, taskID, assigneeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task assigned",
		zap.Uint("task_id", taskID),
		zap.Uint("assignee_id", assigneeID),
		zap.Uint("assigner_id", assignerID),
	)
	return updated, nil
}

// Workload summarizes the tasks assigned to a user, optionally filtered to
// one project.
func (s *Service) Workload(ctx context.Context, userID uint, projectID *uint) (*WorkloadResponse, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListAssignedTasks(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	workload := &WorkloadResponse{
		UserID:     userID,
		TotalTasks: len(tasks),
		ByState: map[string]int{
			string(task.StateBacklog):    0,
			string(task.StateInProgress): 0,
			string(task.StateDone):       0,
			string(task.StatePaused):     0,
			string(task.StateCanceled):   0,
		},
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, t := range tasks {
		workload.ByState[string(t.State)]++
		if t.DueDate != nil && t.DueDate.Before(today) && t.State.IsActive() {
			workload.OverdueTasks++
		}
		if t.Priority <= 2 {
			workload.HighPriorityTasks++
		}
	}
	return workload, nil
}

// CreateApprovalWorkflow opens an approval workflow on a project. The
// quorum is capped at the number of designated approvers.
func (s *Service) CreateApprovalWorkflow(ctx context.Context, projectID, requestedByID uint, req *CreateApprovalRequest) (*ApprovalWorkflow, error) {
	ok, err := s.HasPermission(ctx, requestedByID, projectID, PermissionWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	required := req.RequiredApprovers
	if required == 0 {
		required = 1
	}
	workflow := &ApprovalWorkflow{
		ProjectID:         projectID,
		TaskID:            req.TaskID,
		DecisionID:        req.DecisionID,
		Title:             req.Title,
		Description:       req.Description,
		RequestedByID:     requestedByID,
		RequiredApprovers: clampRequiredApprovers(required, len(req.ApproverUserIDs)),
		ApproverUserIDs:   req.ApproverUserIDs,
		Status:            ApprovalPending,
	}
	if err := s.repo.CreateWorkflow(ctx, workflow); err != nil {
		return nil, err
	}

	s.logger.Info("approval workflow created",
		zap.Uint("workflow_id", workflow.ID),
		zap.Uint("project_id", projectID),
		zap.Int("required_approvers", workflow.RequiredApprovers),
	)
	return workflow, nil
}

// RespondToApproval records one approver's verdict and settles the workflow
// status. The workflow row is locked so concurrent responses tally against a
// consistent view; settled workflows reject further responses.
func (s *Service) RespondToApproval(ctx context.Context, workflowID, approverID uint, req *ApprovalResponseRequest) (*ApprovalResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	txRepo := s.repo.WithTx(tx)

	workflow, err := txRepo.GetWorkflowForUpdate(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow.Status != ApprovalPending {
		return nil, ErrWorkflowClosed
	}
	if !isApprover(workflow.ApproverUserIDs, approverID) {
		return nil, ErrNotApprover
	}

	responded, err := txRepo.HasApproverResponded(ctx, workflowID, approverID)
	if err != nil {
		return nil, err
	}
	if responded {
		return nil, ErrAlreadyResponded
	}

	response := &ApprovalResponse{
		WorkflowID: workflowID,
		ApproverID: approverID,
		IsApproved: req.IsApproved,
		Comment:    req.Comment,
	}
	if err := txRepo.CreateApprovalResponse(ctx, response); err != nil {
		return nil, err
	}

	responses, err := txRepo.ListApprovalResponses(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	status := resolveApproval(workflow.RequiredApprovers, responses)
	if status != workflow.Status {
		workflow.Status = status
		if status == ApprovalApproved || status == ApprovalRejected {
			now := s.now()
			workflow.CompletedAt = &now
		}
		if err := txRepo.UpdateWorkflow(ctx, workflow); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("approval response recorded",
		zap.Uint("workflow_id", workflowID),
		zap.Uint("approver_id", approverID),
		zap.Bool("approved", req.IsApproved),
		zap.String("workflow_status", string(status)),
	)
	return response, nil
}

// WorkflowDetail returns a workflow with its responses and approvers.
func (s *Service) WorkflowDetail(ctx context.Context, workflowID uint) (*WorkflowDetailResponse, error) {
	workflow, err := s.repo.GetWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	responses, err := s.repo.ListApprovalResponses(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(responses))
	for _, resp := range responses {
		ids = append(ids, resp.ApproverID)
	}
	users, err := s.repo.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]ResponseEntry, 0, len(responses))
	for _, resp := range responses {
		u, ok := users[resp.ApproverID]
		if !ok {
			continue
		}
		entries = append(entries, ResponseEntry{
			ID:         resp.ID,
			Approver:   u.ToResponse(),
			IsApproved: resp.IsApproved,
			Comment:    resp.Comment,
			CreatedAt:  resp.CreatedAt,
		})
	}

	return &WorkflowDetailResponse{
		Workflow:  workflow.ToResponse(),
		Responses: entries,
	}, nil
}

// CreateTeamDecision opens a team decision on a project. Voting is enabled
// unless the request disables it.
func (s *Service) CreateTeamDecision(ctx context.Context, projectID, createdByID uint, req *CreateTeamDecisionRequest) (*TeamDecision, error) {
	ok, err := s.HasPermission(ctx, createdByID, projectID, PermissionWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	votingEnabled := true
	if req.IsVotingEnabled != nil {
		votingEnabled = *req.IsVotingEnabled
	}
	decision := &TeamDecision{
		ProjectID:          projectID,
		TaskID:             req.TaskID,
		Title:              req.Title,
		Description:        req.Description,
		Options:            req.Options,
		IsVotingEnabled:    votingEnabled,
		VotingDeadline:     req.VotingDeadline,
		AllowMultipleVotes: req.AllowMultipleVotes,
		CreatedByID:        createdByID,
	}
	if err := s.repo.CreateDecision(ctx, decision); err != nil {
		return nil, err
	}

	s.logger.Info("team decision created",
		zap.Uint("decision_id", decision.ID),
		zap.Uint("project_id", projectID),
		zap.Int("options", len(req.Options)),
	)
	return decision, nil
}

// CastVote records a ballot. Every selected option must be one of the
// decision's published options. When repeat ballots are not allowed, a
// voter's existing ballot is replaced in place.
func (s *Service) CastVote(ctx context.Context, decisionID, voterID uint, req *CastVoteRequest) (*DecisionVote, error) {
	decision, err := s.repo.GetDecision(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	if decision.IsConcluded {
		return nil, ErrDecisionConcluded
	}
	if !decision.IsVotingEnabled {
		return nil, ErrVotingDisabled
	}
	if decision.VotingDeadline != nil && s.now().After(*decision.VotingDeadline) {
		return nil, ErrVotingClosed
	}

	ok, err := s.HasPermission(ctx, voterID, decision.ProjectID, PermissionRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	if !validateVoteOptions(decision.Options, req.SelectedOptions) {
		return nil, ErrInvalidVoteOptions
	}

	existing, err := s.repo.GetVote(ctx, decisionID, voterID)
	if err != nil {
		return nil, err
	}
	if existing != nil && !decision.AllowMultipleVotes {
		existing.SelectedOptions = req.SelectedOptions
		existing.Reasoning = req.Reasoning
		if err := s.repo.UpdateVote(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("vote replaced",
			zap.Uint("decision_id", decisionID),
			zap.Uint("voter_id", voterID),
		)
		return existing, nil
	}

	vote := &DecisionVote{
		DecisionID:      decisionID,
		VoterID:         voterID,
		SelectedOptions: req.SelectedOptions,
		Reasoning:       req.Reasoning,
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		return nil, err
	}

	s.logger.Info("vote cast",
		zap.Uint("decision_id", decisionID),
		zap.Uint("voter_id", voterID),
	)
	return vote, nil
}

// ConcludeDecision closes a decision with a final outcome. Only the creator
// or a project admin may conclude, and conclusion is irreversible.
func (s *Service) ConcludeDecision(ctx context.Context, decisionID, concluderID uint, req *ConcludeDecisionRequest) (*TeamDecision, error) {
	decision, err := s.repo.GetDecision(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	if decision.IsConcluded {
		return nil, ErrDecisionConcluded
	}

	if decision.CreatedByID != concluderID {
		ok, err := s.HasPermission(ctx, concluderID, decision.ProjectID, PermissionAdmin)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrPermissionDenied
		}
	}

	now := s.now()
	decision.IsConcluded = true
	decision.FinalDecision = &req.FinalDecision
	decision.DecisionRationale = req.DecisionRationale
	decision.ConcludedAt = &now
	if err := s.repo.UpdateDecision(ctx, decision); err != nil {
		return nil, err
	}

	s.logger.Info("decision concluded",
		zap.Uint("decision_id", decisionID),
		zap.Uint("concluder_id", concluderID),
	)
	return decision, nil
}

// AddComment attaches a comment to a decision. A reply's parent must be an
// existing comment on the same decision.
func (s *Service) AddComment(ctx context.Context, decisionID, authorID uint, req *AddCommentRequest) (*DecisionComment, error) {
	decision, err := s.repo.GetDecision(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	ok, err := s.HasPermission(ctx, authorID, decision.ProjectID, PermissionRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	if req.ParentCommentID != nil {
		parent, err := s.repo.GetComment(ctx, *req.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.DecisionID != decisionID {
			return nil, ErrInvalidParent
		}
	}

	comment := &DecisionComment{
		DecisionID:      decisionID,
		AuthorID:        authorID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("decision comment added",
		zap.Uint("decision_id", decisionID),
		zap.Uint("comment_id", comment.ID),
	)
	return comment, nil
}

// DecisionStats tallies ballots and computes the participation rate against
// the project's member count (owner included).
func (s *Service) DecisionStats(ctx context.Context, decisionID uint) (*DecisionStats, error) {
	decision, err := s.repo.GetDecision(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	votes, err := s.repo.ListVotes(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	stats := &DecisionStats{
		TotalVotes:   len(votes),
		OptionCounts: tallyVotes(votes),
	}
	if len(votes) == 0 {
		return stats, nil
	}

	members, err := s.repo.ListMembers(ctx, decision.ProjectID)
	if err != nil {
		return nil, err
	}
	totalMembers := len(members) + 1 // the owner
	stats.ParticipationRate = float64(len(votes)) / float64(totalMembers)
	return stats, nil
}

// DecisionDetail returns a decision with its votes, comments and stats.
func (s *Service) DecisionDetail(ctx context.Context, decisionID uint) (*DecisionDetailResponse, error) {
	decision, err := s.repo.GetDecision(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	votes, err := s.repo.ListVotes(ctx, decisionID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(votes)+len(comments))
	for _, v := range votes {
		ids = append(ids, v.VoterID)
	}
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	users, err := s.repo.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	voteEntries := make([]VoteEntry, 0, len(votes))
	for _, v := range votes {
		u, ok := users[v.VoterID]
		if !ok {
			continue
		}
		voteEntries = append(voteEntries, VoteEntry{
			ID:              v.ID,
			Voter:           u.ToResponse(),
			SelectedOptions: v.SelectedOptions,
			Reasoning:       v.Reasoning,
			CreatedAt:       v.CreatedAt,
		})
	}

	commentEntries := make([]CommentEntry, 0, len(comments))
	for _, c := range comments {
		u, ok := users[c.AuthorID]
		if !ok {
			continue
		}
		commentEntries = append(commentEntries, CommentEntry{
			ID:              c.ID,
			Author:          u.ToResponse(),
			Content:         c.Content,
			ParentCommentID: c.ParentCommentID,
			CreatedAt:       c.CreatedAt,
		})
	}

	stats, err := s.DecisionStats(ctx, decisionID)
	if err != nil {
		return nil, err
	}

	return &DecisionDetailResponse{
		Decision: decision.ToResponse(),
		Votes:    voteEntries,
		Comments: commentEntries,
		Stats:    *stats,
	}, nil
}
