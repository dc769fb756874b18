package collaboration

import (
	"time"

	"github.com/lib/pq"
)

// UserRole represents a member's role inside a shared project.
type UserRole string

const (
	RoleOwner  UserRole = "OWNER"
	RoleAdmin  UserRole = "ADMIN"
	RoleMember UserRole = "MEMBER"
	RoleViewer UserRole = "VIEWER"
)

// IsValid checks if the role is valid.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	default:
		return false
	}
}

// SharePermission represents the access level granted on a shared project.
type SharePermission string

const (
	PermissionRead  SharePermission = "READ"
	PermissionWrite SharePermission = "WRITE"
	PermissionAdmin SharePermission = "ADMIN"
)

// IsValid checks if the permission is valid.
func (p SharePermission) IsValid() bool {
	switch p {
	case PermissionRead, PermissionWrite, PermissionAdmin:
		return true
	default:
		return false
	}
}

// InviteStatus represents the lifecycle state of a project invite.
type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteRejected InviteStatus = "REJECTED"
	InviteExpired  InviteStatus = "EXPIRED"
)

// ApprovalStatus represents the state of an approval workflow.
type ApprovalStatus string

const (
	ApprovalPending   ApprovalStatus = "PENDING"
	ApprovalApproved  ApprovalStatus = "APPROVED"
	ApprovalRejected  ApprovalStatus = "REJECTED"
	ApprovalCancelled ApprovalStatus = "CANCELLED"
)

// User is a collaborator identified by username and email.
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FullName  *string   `json:"full_name" gorm:"size:255"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the User model.
func (User) TableName() string {
	return "users"
}

// ProjectMember links a user to a shared project with a role and permission.
type ProjectMember struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	ProjectID   uint            `json:"project_id" gorm:"index;not null"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	Role        UserRole        `json:"role" gorm:"type:varchar(20);default:'MEMBER'"`
	Permissions SharePermission `json:"permissions" gorm:"type:varchar(20);default:'READ'"`
	JoinedAt    time.Time       `json:"joined_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for the ProjectMember model.
func (ProjectMember) TableName() string {
	return "project_members"
}

// ProjectInvite is a pending share offer, addressed to a known user or an
// email, redeemable through its token until it expires.
type ProjectInvite struct {
	ID            uint            `json:"id" gorm:"primarykey"`
	ProjectID     uint            `json:"project_id" gorm:"index;not null"`
	InvitedByID   uint            `json:"invited_by_id" gorm:"not null"`
	InvitedUserID *uint           `json:"invited_user_id" gorm:"index"`
	InvitedEmail  *string         `json:"invited_email" gorm:"size:255"`
	Role          UserRole        `json:"role" gorm:"type:varchar(20);default:'MEMBER'"`
	Permissions   SharePermission `json:"permissions" gorm:"type:varchar(20);default:'READ'"`
	InviteToken   string          `json:"invite_token" gorm:"uniqueIndex;not null;size:64"`
	Status        InviteStatus    `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	ExpiresAt     time.Time       `json:"expires_at" gorm:"not null"`
	RespondedAt   *time.Time      `json:"responded_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName returns the table name for the ProjectInvite model.
func (ProjectInvite) TableName() string {
	return "project_invites"
}

// ApprovalWorkflow collects approvals from a fixed set of approvers.
// It may target a task or a decision log entry in addition to its project.
type ApprovalWorkflow struct {
	ID                uint           `json:"id" gorm:"primarykey"`
	ProjectID         uint           `json:"project_id" gorm:"index;not null"`
	TaskID            *uint          `json:"task_id" gorm:"index"`
	DecisionID        *uint          `json:"decision_id" gorm:"index"`
	Title             string         `json:"title" gorm:"not null;size:255"`
	Description       string         `json:"description" gorm:"type:text"`
	RequestedByID     uint           `json:"requested_by_id" gorm:"not null"`
	RequiredApprovers int            `json:"required_approvers" gorm:"default:1"`
	ApproverUserIDs   pq.Int64Array  `json:"approver_user_ids" gorm:"type:bigint[]"`
	Status            ApprovalStatus `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	CreatedAt         time.Time      `json:"created_at"`
	CompletedAt       *time.Time     `json:"completed_at"`
}

// TableName returns the table name for the ApprovalWorkflow model.
func (ApprovalWorkflow) TableName() string {
	return "approval_workflows"
}

// ApprovalResponse is one approver's verdict on a workflow.
type ApprovalResponse struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	WorkflowID uint      `json:"workflow_id" gorm:"index;not null"`
	ApproverID uint      `json:"approver_id" gorm:"index;not null"`
	IsApproved bool      `json:"is_approved"`
	Comment    *string   `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the table name for the ApprovalResponse model.
func (ApprovalResponse) TableName() string {
	return "approval_responses"
}

// TeamDecision is a question put to project members, optionally with voting
// on a fixed option list, concluded by the creator or a project admin.
type TeamDecision struct {
	ID                 uint           `json:"id" gorm:"primarykey"`
	ProjectID          uint           `json:"project_id" gorm:"index;not null"`
	TaskID             *uint          `json:"task_id" gorm:"index"`
	Title              string         `json:"title" gorm:"not null;size:255"`
	Description        string         `json:"description" gorm:"type:text"`
	Options            pq.StringArray `json:"options" gorm:"type:text[]"`
	IsVotingEnabled    bool           `json:"is_voting_enabled" gorm:"default:true"`
	VotingDeadline     *time.Time     `json:"voting_deadline"`
	AllowMultipleVotes bool           `json:"allow_multiple_votes" gorm:"default:false"`
	IsConcluded        bool           `json:"is_concluded" gorm:"default:false;index"`
	FinalDecision      *string        `json:"final_decision" gorm:"type:text"`
	DecisionRationale  *string        `json:"decision_rationale" gorm:"type:text"`
	CreatedByID        uint           `json:"created_by_id" gorm:"not null"`
	CreatedAt          time.Time      `json:"created_at"`
	ConcludedAt        *time.Time     `json:"concluded_at"`
}

// TableName returns the table name for the TeamDecision model.
func (TeamDecision) TableName() string {
	return "team_decisions"
}

// DecisionVote is one member's ballot on a team decision.
type DecisionVote struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	DecisionID      uint           `json:"decision_id" gorm:"index;not null"`
	VoterID         uint           `json:"voter_id" gorm:"index;not null"`
	SelectedOptions pq.StringArray `json:"selected_options" gorm:"type:text[]"`
	Reasoning       *string        `json:"reasoning" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName returns the table name for the DecisionVote model.
func (DecisionVote) TableName() string {
	return "decision_votes"
}

// DecisionComment is a threaded comment on a team decision.
type DecisionComment struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	DecisionID      uint      `json:"decision_id" gorm:"index;not null"`
	AuthorID        uint      `json:"author_id" gorm:"index;not null"`
	Content         string    `json:"content" gorm:"type:text;not null"`
	ParentCommentID *uint     `json:"parent_comment_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the table name for the DecisionComment model.
func (DecisionComment) TableName() string {
	return "decision_comments"
}
