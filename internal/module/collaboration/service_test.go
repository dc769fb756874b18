package collaboration

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/opstrack/server/internal/module/project"
	"github.com/opstrack/server/internal/module/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubTx satisfies gorm's ConnPool and TxCommitter so a *gorm.DB handed
// out by the mock survives Commit/Rollback without a database.
type stubTx struct{}

func (*stubTx) PrepareContext(context.Context, string) (*sql.Stmt, error) { return nil, nil }
func (*stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (*stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (*stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (*stubTx) Commit() error { return nil }
func (*stubTx) Rollback() error { return nil }

func newStubTx() *gorm.DB {
	return &gorm.DB{Statement: &gorm.Statement{ConnPool: &stubTx{}}}
}

// MockRepository implements Repository for testing.
type MockRepository struct {
	users     map[uint]*User
	projects  map[uint]*project.Project
	members   map[uint][]*ProjectMember
	invites   map[uint]*ProjectInvite
	tasks     map[uint]*task.Task
	workflows map[uint]*ApprovalWorkflow
	responses map[uint]*ApprovalResponse
	decisions map[uint]*TeamDecision
	votes     map[uint]*DecisionVote
	comments  map[uint]*DecisionComment
	nextID    uint
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:     make(map[uint]*User),
		projects:  make(map[uint]*project.Project),
		members:   make(map[uint][]*ProjectMember),
		invites:   make(map[uint]*ProjectInvite),
		tasks:     make(map[uint]*task.Task),
		workflows: make(map[uint]*ApprovalWorkflow),
		responses: make(map[uint]*ApprovalResponse),
		decisions: make(map[uint]*TeamDecision),
		votes:     make(map[uint]*DecisionVote),
		comments:  make(map[uint]*DecisionComment),
	}
}

func (m *MockRepository) id() uint {
	m.nextID++
	return m.nextID
}

func (m *MockRepository) CreateUser(_ context.Context, user *User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrUserExists
		}
	}
	user.ID = m.id()
	m.users[user.ID] = user
	return nil
}

func (m *MockRepository) GetUserByID(_ context.Context, id uint) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *MockRepository) FindUserByUsernameOrEmail(_ context.Context, username, email string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) UsersByIDs(_ context.Context, ids []uint) (map[uint]*User, error) {
	result := make(map[uint]*User, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

func (m *MockRepository) GetProject(_ context.Context, id uint) (*project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func (m *MockRepository) ListOwnedProjects(_ context.Context, ownerID uint) ([]*project.Project, error) {
	var result []*project.Project
	for _, p := range m.projects {
		if p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRepository) ListProjectsByIDs(_ context.Context, ids []uint) ([]*project.Project, error) {
	var result []*project.Project
	for _, id := range ids {
		if p, ok := m.projects[id]; ok {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRepository) AddMember(_ context.Context, member *ProjectMember) error {
	member.ID = m.id()
	m.members[member.ProjectID] = append(m.members[member.ProjectID], member)
	return nil
}

func (m *MockRepository) GetMember(_ context.Context, projectID, userID uint) (*ProjectMember, error) {
	for _, member := range m.members[projectID] {
		if member.UserID == userID {
			return member, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) ListMembers(_ context.Context, projectID uint) ([]*ProjectMember, error) {
	return m.members[projectID], nil
}

func (m *MockRepository) MemberProjectIDs(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for projectID, members := range m.members {
		for _, member := range members {
			if member.UserID == userID {
				ids = append(ids, projectID)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MockRepository) CreateInvite(_ context.Context, invite *ProjectInvite) error {
	invite.ID = m.id()
	m.invites[invite.ID] = invite
	return nil
}

func (m *MockRepository) GetPendingInviteByToken(_ context.Context, token string, now time.Time) (*ProjectInvite, error) {
	for _, invite := range m.invites {
		if invite.InviteToken == token && invite.Status == InvitePending && invite.ExpiresAt.After(now) {
			return invite, nil
		}
	}
	return nil, ErrInviteInvalid
}

func (m *MockRepository) UpdateInvite(_ context.Context, invite *ProjectInvite) error {
	m.invites[invite.ID] = invite
	return nil
}

func (m *MockRepository) GetTask(_ context.Context, id uint) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (m *MockRepository) SetTaskAssignee(_ context.Context, taskID, assigneeID uint) (*task.Task, error) {
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	t.AssigneeID = &assigneeID
	return t, nil
}

func (m *MockRepository) ListAssignedTasks(_ context.Context, userID uint, projectID *uint) ([]*task.Task, error) {
	var result []*task.Task
	for _, t := range m.tasks {
		if t.AssigneeID == nil || *t.AssigneeID != userID {
			continue
		}
		if projectID != nil && t.ProjectID != *projectID {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRepository) CreateWorkflow(_ context.Context, workflow *ApprovalWorkflow) error {
	workflow.ID = m.id()
	m.workflows[workflow.ID] = workflow
	return nil
}

func (m *MockRepository) GetWorkflow(_ context.Context, id uint) (*ApprovalWorkflow, error) {
	w, ok := m.workflows[id]
	if !ok {
		return nil, ErrWorkflowNotFound
	}
	return w, nil
}

func (m *MockRepository) GetWorkflowForUpdate(ctx context.Context, id uint) (*ApprovalWorkflow, error) {
	return m.GetWorkflow(ctx, id)
}

func (m *MockRepository) UpdateWorkflow(_ context.Context, workflow *ApprovalWorkflow) error {
	m.workflows[workflow.ID] = workflow
	return nil
}

func (m *MockRepository) CreateApprovalResponse(_ context.Context, response *ApprovalResponse) error {
	response.ID = m.id()
	m.responses[response.ID] = response
	return nil
}

func (m *MockRepository) HasApproverResponded(_ context.Context, workflowID, approverID uint) (bool, error) {
	for _, resp := range m.responses {
		if resp.WorkflowID == workflowID && resp.ApproverID == approverID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) ListApprovalResponses(_ context.Context, workflowID uint) ([]*ApprovalResponse, error) {
	var result []*ApprovalResponse
	for _, resp := range m.responses {
		if resp.WorkflowID == workflowID {
			result = append(result, resp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRepository) CreateDecision(_ context.Context, decision *TeamDecision) error {
	decision.ID = m.id()
	m.decisions[decision.ID] = decision
	return nil
}

func (m *MockRepository) GetDecision(_ context.Context, id uint) (*TeamDecision, error) {
	d, ok := m.decisions[id]
	if !ok {
		return nil, ErrDecisionNotFound
	}
	return d, nil
}

func (m *MockRepository) UpdateDecision(_ context.Context, decision *TeamDecision) error {
	m.decisions[decision.ID] = decision
	return nil
}

func (m *MockRepository) GetVote(_ context.Context, decisionID, voterID uint) (*DecisionVote, error) {
	for _, vote := range m.votes {
		if vote.DecisionID == decisionID && vote.VoterID == voterID {
			return vote, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) CreateVote(_ context.Context, vote *DecisionVote) error {
	vote.ID = m.id()
	m.votes[vote.ID] = vote
	return nil
}

func (m *MockRepository) UpdateVote(_ context.Context, vote *DecisionVote) error {
	m.votes[vote.ID] = vote
	return nil
}

func (m *MockRepository) ListVotes(_ context.Context, decisionID uint) ([]*DecisionVote, error) {
	var result []*DecisionVote
	for _, vote := range m.votes {
		if vote.DecisionID == decisionID {
			result = append(result, vote)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRepository) CreateComment(_ context.Context, comment *DecisionComment) error {
	comment.ID = m.id()
	m.comments[comment.ID] = comment
	return nil
}

func (m *MockRepository) GetComment(_ context.Context, id uint) (*DecisionComment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, ErrInvalidParent
	}
	return c, nil
}

func (m *MockRepository) ListComments(_ context.Context, decisionID uint) ([]*DecisionComment, error) {
	var result []*DecisionComment
	for _, c := range m.comments {
		if c.DecisionID == decisionID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockRepository) WithTx(_ *gorm.DB) Repository { return m }

func (m *MockRepository) BeginTx(_ context.Context) (*gorm.DB, error) {
	return newStubTx(), nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, zap.NewNop())
}

func seedWorkflow(repo *MockRepository, required int, approvers ...int64) *ApprovalWorkflow {
	workflow := &ApprovalWorkflow{
		ProjectID:         1,
		Title:             "release sign-off",
		RequestedByID:     1,
		RequiredApprovers: required,
		ApproverUserIDs:   pq.Int64Array(approvers),
		Status:            ApprovalPending,
	}
	workflow.ID = repo.id()
	repo.workflows[workflow.ID] = workflow
	return workflow
}

func TestRespondToApprovalDuplicateRejected(t *testing.T) {
	repo := NewMockRepository()
	workflow := seedWorkflow(repo, 2, 10, 11)
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.RespondToApproval(ctx, workflow.ID, 10, &ApprovalResponseRequest{IsApproved: true})
	require.NoError(t, err)
	assert.Equal(t, ApprovalPending, repo.workflows[workflow.ID].Status)

	// The same approver cannot respond twice, regardless of verdict.
	_, err = svc.RespondToApproval(ctx, workflow.ID, 10, &ApprovalResponseRequest{IsApproved: false})
	assert.ErrorIs(t, err, ErrAlreadyResponded)
	assert.Len(t, repo.responses, 1)
}

func TestRespondToApprovalAfterSettlement(t *testing.T) {
	repo := NewMockRepository()
	workflow := seedWorkflow(repo, 1, 10, 11)
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.RespondToApproval(ctx, workflow.ID, 10, &ApprovalResponseRequest{IsApproved: true})
	require.NoError(t, err)

	settled := repo.workflows[workflow.ID]
	assert.Equal(t, ApprovalApproved, settled.Status)
	require.NotNil(t, settled.CompletedAt)

	// A settled workflow rejects further responses.
	_, err = svc.RespondToApproval(ctx, workflow.ID, 11, &ApprovalResponseRequest{IsApproved: true})
	assert.ErrorIs(t, err, ErrWorkflowClosed)
	assert.Len(t, repo.responses, 1)
}

func TestRespondToApprovalNotApprover(t *testing.T) {
	repo := NewMockRepository()
	workflow := seedWorkflow(repo, 1, 10)
	svc := newTestService(repo)

	_, err := svc.RespondToApproval(context.Background(), workflow.ID, 99, &ApprovalResponseRequest{IsApproved: true})
	assert.ErrorIs(t, err, ErrNotApprover)
}

func TestCastVoteReplacesExistingBallot(t *testing.T) {
	repo := NewMockRepository()
	repo.projects[1] = &project.Project{ID: 1, Name: "ops", OwnerID: 5}
	decision := &TeamDecision{
		ProjectID:          1,
		Title:              "pick a database",
		Options:            pq.StringArray{"PostgreSQL", "MySQL"},
		IsVotingEnabled:    true,
		AllowMultipleVotes: false,
		CreatedByID:        5,
	}
	decision.ID = repo.id()
	repo.decisions[decision.ID] = decision
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.CastVote(ctx, decision.ID, 5, &CastVoteRequest{SelectedOptions: []string{"PostgreSQL"}})
	require.NoError(t, err)

	second, err := svc.CastVote(ctx, decision.ID, 5, &CastVoteRequest{SelectedOptions: []string{"MySQL"}})
	require.NoError(t, err)

	// The second ballot replaces the first in place.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, pq.StringArray{"MySQL"}, second.SelectedOptions)

	votes, err := repo.ListVotes(ctx, decision.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}
