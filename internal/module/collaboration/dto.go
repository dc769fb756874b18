package collaboration

import (
	"time"

	"github.com/opstrack/server/internal/module/project"
)

// CreateUserRequest registers (or looks up) a collaborator.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=1,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
}

// ShareProjectRequest invites a user or an email address to a project.
type ShareProjectRequest struct {
	TargetUserID *uint           `json:"target_user_id"`
	TargetEmail  *string         `json:"target_email" binding:"omitempty,email"`
	Role         UserRole        `json:"role" binding:"omitempty,oneof=ADMIN MEMBER VIEWER"`
	Permissions  SharePermission `json:"permissions" binding:"omitempty,oneof=READ WRITE ADMIN"`
}

// AssignTaskRequest sets a task's assignee.
type AssignTaskRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

// CreateApprovalRequest opens an approval workflow.
type CreateApprovalRequest struct {
	Title             string  `json:"title" binding:"required,max=255"`
	Description       string  `json:"description"`
	ApproverUserIDs   []int64 `json:"approver_user_ids" binding:"required,min=1"`
	RequiredApprovers int     `json:"required_approvers" binding:"omitempty,min=1"`
	TaskID            *uint   `json:"task_id"`
	DecisionID        *uint   `json:"decision_id"`
}

// ApprovalResponseRequest records one approver's verdict.
type ApprovalResponseRequest struct {
	IsApproved bool    `json:"is_approved"`
	Comment    *string `json:"comment"`
}

// CreateTeamDecisionRequest opens a team decision.
type CreateTeamDecisionRequest struct {
	Title              string     `json:"title" binding:"required,max=255"`
	Description        string     `json:"description"`
	Options            []string   `json:"options" binding:"required,min=1,dive,required"`
	TaskID             *uint      `json:"task_id"`
	IsVotingEnabled    *bool      `json:"is_voting_enabled"`
	VotingDeadline     *time.Time `json:"voting_deadline"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
}

// CastVoteRequest records a ballot on a team decision.
type CastVoteRequest struct {
	SelectedOptions []string `json:"selected_options" binding:"required,min=1,dive,required"`
	Reasoning       *string  `json:"reasoning"`
}

// ConcludeDecisionRequest closes a team decision.
type ConcludeDecisionRequest struct {
	FinalDecision     string  `json:"final_decision" binding:"required"`
	DecisionRationale *string `json:"decision_rationale"`
}

// AddCommentRequest adds a comment to a team decision.
type AddCommentRequest struct {
	Content         string `json:"content" binding:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a User to a UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// InviteResponse is the API representation of a project invite.
type InviteResponse struct {
	ID          uint            `json:"id"`
	ProjectID   uint            `json:"project_id"`
	Role        UserRole        `json:"role"`
	Permissions SharePermission `json:"permissions"`
	InviteToken string          `json:"invite_token"`
	Status      InviteStatus    `json:"status"`
	ExpiresAt   time.Time       `json:"expires_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToResponse converts a ProjectInvite to an InviteResponse.
func (i *ProjectInvite) ToResponse() InviteResponse {
	return InviteResponse{
		ID:          i.ID,
		ProjectID:   i.ProjectID,
		Role:        i.Role,
		Permissions: i.Permissions,
		InviteToken: i.InviteToken,
		Status:      i.Status,
		ExpiresAt:   i.ExpiresAt,
		CreatedAt:   i.CreatedAt,
	}
}

// MemberEntry is one row in a project's member list. The project owner is
// included as a synthetic entry ahead of the stored memberships.
type MemberEntry struct {
	User        UserResponse    `json:"user"`
	Role        UserRole        `json:"role"`
	Permissions SharePermission `json:"permissions"`
	JoinedAt    time.Time       `json:"joined_at"`
	IsOwner     bool            `json:"is_owner"`
}

// MemberListResponse is the member list of a shared project.
type MemberListResponse struct {
	ProjectID uint          `json:"project_id"`
	Members   []MemberEntry `json:"members"`
	Total     int           `json:"total"`
}

// UserProjectsResponse lists the projects a user owns or participates in.
type UserProjectsResponse struct {
	UserID   uint                      `json:"user_id"`
	Projects []project.ProjectResponse `json:"projects"`
	Total    int                       `json:"total"`
}

// WorkloadResponse summarizes the tasks assigned to a user.
type WorkloadResponse struct {
	UserID            uint           `json:"user_id"`
	TotalTasks        int            `json:"total_tasks"`
	ByState           map[string]int `json:"by_state"`
	OverdueTasks      int            `json:"overdue_tasks"`
	HighPriorityTasks int            `json:"high_priority_tasks"`
}

// WorkflowResponse is the API representation of an approval workflow.
type WorkflowResponse struct {
	ID                uint           `json:"id"`
	ProjectID         uint           `json:"project_id"`
	TaskID            *uint          `json:"task_id"`
	DecisionID        *uint          `json:"decision_id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	RequestedByID     uint           `json:"requested_by_id"`
	RequiredApprovers int            `json:"required_approvers"`
	ApproverUserIDs   []int64        `json:"approver_user_ids"`
	Status            ApprovalStatus `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	CompletedAt       *time.Time     `json:"completed_at"`
}

// ToResponse converts an ApprovalWorkflow to a WorkflowResponse.
func (w *ApprovalWorkflow) ToResponse() WorkflowResponse {
	return WorkflowResponse{
		ID:                w.ID,
		ProjectID:         w.ProjectID,
		TaskID:            w.TaskID,
		DecisionID:        w.DecisionID,
		Title:             w.Title,
		Description:       w.Description,
		RequestedByID:     w.RequestedByID,
		RequiredApprovers: w.RequiredApprovers,
		ApproverUserIDs:   w.ApproverUserIDs,
		Status:            w.Status,
		CreatedAt:         w.CreatedAt,
		CompletedAt:       w.CompletedAt,
	}
}

// ResponseEntry is an approver's verdict joined with the approver.
type ResponseEntry struct {
	ID         uint         `json:"id"`
	Approver   UserResponse `json:"approver"`
	IsApproved bool         `json:"is_approved"`
	Comment    *string      `json:"comment"`
	CreatedAt  time.Time    `json:"created_at"`
}

// WorkflowDetailResponse is a workflow together with its responses.
type WorkflowDetailResponse struct {
	Workflow  WorkflowResponse `json:"workflow"`
	Responses []ResponseEntry  `json:"responses"`
}

// DecisionResponse is the API representation of a team decision.
type DecisionResponse struct {
	ID                 uint       `json:"id"`
	ProjectID          uint       `json:"project_id"`
	TaskID             *uint      `json:"task_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Options            []string   `json:"options"`
	IsVotingEnabled    bool       `json:"is_voting_enabled"`
	VotingDeadline     *time.Time `json:"voting_deadline"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
	IsConcluded        bool       `json:"is_concluded"`
	FinalDecision      *string    `json:"final_decision"`
	DecisionRationale  *string    `json:"decision_rationale"`
	CreatedByID        uint       `json:"created_by_id"`
	CreatedAt          time.Time  `json:"created_at"`
	ConcludedAt        *time.Time `json:"concluded_at"`
}

// ToResponse converts a TeamDecision to a DecisionResponse.
func (d *TeamDecision) ToResponse() DecisionResponse {
	return DecisionResponse{
		ID:                 d.ID,
		ProjectID:          d.ProjectID,
		TaskID:             d.TaskID,
		Title:              d.Title,
		Description:        d.Description,
		Options:            d.Options,
		IsVotingEnabled:    d.IsVotingEnabled,
		VotingDeadline:     d.VotingDeadline,
		AllowMultipleVotes: d.AllowMultipleVotes,
		IsConcluded:        d.IsConcluded,
		FinalDecision:      d.FinalDecision,
		DecisionRationale:  d.DecisionRationale,
		CreatedByID:        d.CreatedByID,
		CreatedAt:          d.CreatedAt,
		ConcludedAt:        d.ConcludedAt,
	}
}

// VoteResponse is the API representation of a ballot.
type VoteResponse struct {
	ID              uint      `json:"id"`
	DecisionID      uint      `json:"decision_id"`
	VoterID         uint      `json:"voter_id"`
	SelectedOptions []string  `json:"selected_options"`
	Reasoning       *string   `json:"reasoning"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts a DecisionVote to a VoteResponse.
func (v *DecisionVote) ToResponse() VoteResponse {
	return VoteResponse{
		ID:              v.ID,
		DecisionID:      v.DecisionID,
		VoterID:         v.VoterID,
		SelectedOptions: v.SelectedOptions,
		Reasoning:       v.Reasoning,
		CreatedAt:       v.CreatedAt,
	}
}

// VoteEntry is a ballot joined with its voter.
type VoteEntry struct {
	ID              uint         `json:"id"`
	Voter           UserResponse `json:"voter"`
	SelectedOptions []string     `json:"selected_options"`
	Reasoning       *string      `json:"reasoning"`
	CreatedAt       time.Time    `json:"created_at"`
}

// CommentResponse is the API representation of a decision comment.
type CommentResponse struct {
	ID              uint      `json:"id"`
	DecisionID      uint      `json:"decision_id"`
	AuthorID        uint      `json:"author_id"`
	Content         string    `json:"content"`
	ParentCommentID *uint     `json:"parent_comment_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToResponse converts a DecisionComment to a CommentResponse.
func (c *DecisionComment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:              c.ID,
		DecisionID:      c.DecisionID,
		AuthorID:        c.AuthorID,
		Content:         c.Content,
		ParentCommentID: c.ParentCommentID,
		CreatedAt:       c.CreatedAt,
	}
}

// CommentEntry is a comment joined with its author.
type CommentEntry struct {
	ID              uint         `json:"id"`
	Author          UserResponse `json:"author"`
	Content         string       `json:"content"`
	ParentCommentID *uint        `json:"parent_comment_id"`
	CreatedAt       time.Time    `json:"created_at"`
}

// DecisionStats summarizes voting on a team decision.
type DecisionStats struct {
	TotalVotes        int            `json:"total_votes"`
	OptionCounts      map[string]int `json:"option_counts"`
	ParticipationRate float64        `json:"participation_rate"`
}

// DecisionDetailResponse is a decision with its votes, comments and stats.
type DecisionDetailResponse struct {
	Decision DecisionResponse `json:"decision"`
	Votes    []VoteEntry      `json:"votes"`
	Comments []CommentEntry   `json:"comments"`
	Stats    DecisionStats    `json:"stats"`
}
