package collaboration

import (
	"context"
	"errors"
	"time"

	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/task"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for collaboration data access.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)
	UsersByIDs(ctx context.Context, ids []uint) (map[uint]*User, error)

	// Project and membership operations
	GetProject(ctx context.Context, id uint) (*project.Project, error)
	ListOwnedProjects(ctx context.Context, ownerID uint) ([]*project.Project, error)
	ListProjectsByIDs(ctx context.Context, ids []uint) ([]*project.Project, error)
	AddMember(ctx context.Context, member *ProjectMember) error
	GetMember(ctx context.Context, projectID, userID uint) (*ProjectMember, error)
	ListMembers(ctx context.Context, projectID uint) ([]*ProjectMember, error)
	MemberProjectIDs(ctx context.Context, userID uint) ([]uint, error)

	// Invite operations
	CreateInvite(ctx context.Context, invite *ProjectInvite) error
	GetPendingInviteByToken(ctx context.Context, token string, now time.Time) (*ProjectInvite, error)
	UpdateInvite(ctx context.Context, invite *ProjectInvite) error

	// Task operations
	GetTask(ctx context.Context, id uint) (*task.Task, error)
	SetTaskAssignee(ctx context.Context, taskID, assigneeID uint) (*task.Task, error)
	ListAssignedTasks(ctx context.Context, userID uint, projectID *uint) ([]*task.Task, error)

	// Approval workflow operations
	CreateWorkflow(ctx context.Context, workflow *ApprovalWorkflow) error
	GetWorkflow(ctx context.Context, id uint) (*ApprovalWorkflow, error)
	GetWorkflowForUpdate(ctx context.Context, id uint) (*ApprovalWorkflow, error)
	UpdateWorkflow(ctx context.Context, workflow *ApprovalWorkflow) error
	CreateApprovalResponse(ctx context.Context, response *ApprovalResponse) error
	HasApproverResponded(ctx context.Context, workflowID, approverID uint) (bool, error)
	ListApprovalResponses(ctx context.Context, workflowID uint) ([]*ApprovalResponse, error)

	// Team decision operations
	CreateDecision(ctx context.Context, decision *TeamDecision) error
	GetDecision(ctx context.Context, id uint) (*TeamDecision, error)
	UpdateDecision(ctx context.Context, decision *TeamDecision) error
	GetVote(ctx context.Context, decisionID, voterID uint) (*DecisionVote, error)
	CreateVote(ctx context.Context, vote *DecisionVote) error
	UpdateVote(ctx context.Context, vote *DecisionVote) error
	ListVotes(ctx context.Context, decisionID uint) ([]*DecisionVote, error)
	CreateComment(ctx context.Context, comment *DecisionComment) error
	GetComment(ctx context.Context, id uint) (*DecisionComment, error)
	ListComments(ctx context.Context, decisionID uint) ([]*DecisionComment, error)

	// Transaction support
	WithTx(tx *gorm.DB) Repository
	BeginTx(ctx context.Context) (*gorm.DB, error)
}

// repository implements Repository using GORM.
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new collaboration repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a new repository bound to the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// BeginTx starts a new transaction.
func (r *repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

func (r *repository) CreateUser(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserExists
	}
	return err
}

func (r *repository) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByUsernameOrEmail returns (nil, nil) when no user matches.
func (r *repository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UsersByIDs(ctx context.Context, ids []uint) (map[uint]*User, error) {
	result := make(map[uint]*User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []*User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

func (r *repository) GetProject(ctx context.Context, id uint) (*project.Project, error) {
	var p project.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListOwnedProjects(ctx context.Context, ownerID uint) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) ListProjectsByIDs(ctx context.Context, ids []uint) ([]*project.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var projects []*project.Project
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *repository) AddMember(ctx context.Context, member *ProjectMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetMember returns (nil, nil) when the user is not a member.
func (r *repository) GetMember(ctx context.Context, projectID, userID uint) (*ProjectMember, error) {
	var member ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *repository) ListMembers(ctx context.Context, projectID uint) ([]*ProjectMember, error) {
	var members []*ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("joined_at").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) MemberProjectIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&ProjectMember{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) CreateInvite(ctx context.Context, invite *ProjectInvite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *repository) GetPendingInviteByToken(ctx context.Context, token string, now time.Time) (*ProjectInvite, error) {
	var invite ProjectInvite
	err := r.db.WithContext(ctx).
		Where("invite_token = ? AND status = ? AND expires_at > ?", token, InvitePending, now).
		First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteInvalid
		}
		return nil, err
	}
	return &invite, nil
}

func (r *repository) UpdateInvite(ctx context.Context, invite *ProjectInvite) error {
	return r.db.WithContext(ctx).Save(invite).Error
}

func (r *repository) GetTask(ctx context.Context, id uint) (*task.Task, error) {
	var t task.Task
	err := r.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) SetTaskAssignee(ctx context.Context, taskID, assigneeID uint) (*task.Task, error) {
	result := r.db.WithContext(ctx).
		Model(&task.Task{}).
		Where("id = ?", taskID).
		Update("assignee_id", assigneeID)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}
	return r.GetTask(ctx, taskID)
}

func (r *repository) ListAssignedTasks(ctx context.Context, userID uint, projectID *uint) ([]*task.Task, error) {
	query := r.db.WithContext(ctx).Where("assignee_id = ?", userID)
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	var tasks []*task.Task
	if err := query.Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) CreateWorkflow(ctx context.Context, workflow *ApprovalWorkflow) error {
	return r.db.WithContext(ctx).Create(workflow).Error
}

func (r *repository) GetWorkflow(ctx context.Context, id uint) (*ApprovalWorkflow, error) {
	var workflow ApprovalWorkflow
	err := r.db.WithContext(ctx).First(&workflow, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, err
	}
	return &workflow, nil
}

// GetWorkflowForUpdate locks the workflow row for the duration of the
// surrounding transaction so concurrent responses tally consistently.
func (r *repository) GetWorkflowForUpdate(ctx context.Context, id uint) (*ApprovalWorkflow, error) {
	var workflow ApprovalWorkflow
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&workflow, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, err
	}
	return &workflow, nil
}

func (r *repository) UpdateWorkflow(ctx context.Context, workflow *ApprovalWorkflow) error {
	return r.db.WithContext(ctx).Save(workflow).Error
}

func (r *repository) CreateApprovalResponse(ctx context.Context, response *ApprovalResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *repository) HasApproverResponded(ctx context.Context, workflowID, approverID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ApprovalResponse{}).
		Where("workflow_id = ? AND approver_id = ?", workflowID, approverID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListApprovalResponses(ctx context.Context, workflowID uint) ([]*ApprovalResponse, error) {
	var responses []*ApprovalResponse
	err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("id").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *repository) CreateDecision(ctx context.Context, decision *TeamDecision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

func (r *repository) GetDecision(ctx context.Context, id uint) (*TeamDecision, error) {
	var decision TeamDecision
	err := r.db.WithContext(ctx).First(&decision, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDecisionNotFound
		}
		return nil, err
	}
	return &decision, nil
}

func (r *repository) UpdateDecision(ctx context.Context, decision *TeamDecision) error {
	return r.db.WithContext(ctx).Save(decision).Error
}

// GetVote returns (nil, nil) when the voter has not voted yet.
func (r *repository) GetVote(ctx context.Context, decisionID, voterID uint) (*DecisionVote, error) {
	var vote DecisionVote
	err := r.db.WithContext(ctx).
		Where("decision_id = ? AND voter_id = ?", decisionID, voterID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

func (r *repository) CreateVote(ctx context.Context, vote *DecisionVote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *repository) UpdateVote(ctx context.Context, vote *DecisionVote) error {
	return r.db.WithContext(ctx).Save(vote).Error
}

func (r *repository) ListVotes(ctx context.Context, decisionID uint) ([]*DecisionVote, error) {
	var votes []*DecisionVote
	err := r.db.WithContext(ctx).
		Where("decision_id = ?", decisionID).
		Order("id").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *repository) CreateComment(ctx context.Context, comment *DecisionComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repository) GetComment(ctx context.Context, id uint) (*DecisionComment, error) {
	var comment DecisionComment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidParent
		}
		return nil, err
	}
	return &comment, nil
}

func (r *repository) ListComments(ctx context.Context, decisionID uint) ([]*DecisionComment, error) {
	var comments []*DecisionComment
	err := r.db.WithContext(ctx).
		Where("decision_id = ?", decisionID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
