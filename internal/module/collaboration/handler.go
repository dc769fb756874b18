package collaboration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opstrack/server/internal/module/project"
)

// Handler handles HTTP requests for collaboration.
type Handler struct {
	service *Service
}

// NewHandler creates a new collaboration handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers collaboration routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	collab := r.Group("/collaboration")
	{
		collab.POST("/users", h.CreateUser)
		collab.GET("/users/:user_id/projects", h.UserProjects)
		collab.GET("/users/:user_id/workload", h.Workload)

		collab.POST("/projects/:project_id/share", h.ShareProject)
		collab.GET("/projects/:project_id/members", h.ProjectMembers)
		collab.POST("/projects/:project_id/approvals", h.CreateApproval)
		collab.POST("/projects/:project_id/decisions", h.CreateDecision)

		collab.POST("/invites/:invite_token/accept", h.AcceptInvite)

		collab.PATCH("/tasks/:task_id/assign", h.AssignTask)

		collab.GET("/approvals/:workflow_id", h.WorkflowDetail)
		collab.POST("/approvals/:workflow_id/respond", h.RespondToApproval)

		collab.GET("/decisions/:decision_id", h.DecisionDetail)
		collab.GET("/decisions/:decision_id/stats", h.DecisionStats)
		collab.POST("/decisions/:decision_id/vote", h.CastVote)
		collab.PATCH("/decisions/:decision_id/conclude", h.ConcludeDecision)
		collab.POST("/decisions/:decision_id/comments", h.AddComment)
	}
}

// CreateUser handles user registration. Posting an existing username or
// email returns the existing user.
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, created, err := h.service.GetOrCreateUser(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"user": user.ToResponse(), "created": created})
}

// UserProjects handles listing a user's owned and shared projects.
func (h *Handler) UserProjects(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	includeShared := c.DefaultQuery("include_shared", "true") != "false"

	projects, err := h.service.UserProjects(c.Request.Context(), userID, includeShared)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, p.ToResponse())
	}
	c.JSON(http.StatusOK, UserProjectsResponse{
		UserID:   userID,
		Projects: responses,
		Total:    len(responses),
	})
}

// Workload handles summarizing a user's assigned tasks.
func (h *Handler) Workload(c *gin.Context) {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	var projectID *uint
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		pid := uint(id)
		projectID = &pid
	}

	workload, err := h.service.Workload(c.Request.Context(), userID, projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, workload)
}

// ShareProject handles creating a project share invite.
func (h *Handler) ShareProject(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	ownerID, ok := parseQueryID(c, "owner_id")
	if !ok {
		return
	}

	var req ShareProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invite, err := h.service.ShareProject(c.Request.Context(), projectID, ownerID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project shared",
		"invite":  invite.ToResponse(),
	})
}

// AcceptInvite handles redeeming an invite token.
func (h *Handler) AcceptInvite(c *gin.Context) {
	token := c.Param("invite_token")
	userID, ok := parseQueryID(c, "user_id")
	if !ok {
		return
	}

	member, err := h.service.AcceptInvite(c.Request.Context(), token, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite accepted",
		"member": gin.H{
			"project_id":  member.ProjectID,
			"user_id":     member.UserID,
			"role":        member.Role,
			"permissions": member.Permissions,
			"joined_at":   member.JoinedAt,
		},
	})
}

// ProjectMembers handles listing a project's members.
func (h *Handler) ProjectMembers(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}

	members, err := h.service.ProjectMembers(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// AssignTask handles setting a task's assignee.
func (h *Handler) AssignTask(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	assignerID, ok := parseQueryID(c, "assigner_id")
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.AssignTask(c.Request.Context(), taskID, req.AssigneeID, assignerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task assigned",
		"task": gin.H{
			"id":          t.ID,
			"title":       t.Title,
			"assignee_id": t.AssigneeID,
			"project_id":  t.ProjectID,
		},
	})
}

// CreateApproval handles opening an approval workflow.
func (h *Handler) CreateApproval(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	requestedByID, ok := parseQueryID(c, "requested_by_id")
	if !ok {
		return
	}

	var req CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workflow, err := h.service.CreateApprovalWorkflow(c.Request.Context(), projectID, requestedByID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Approval workflow created",
		"workflow": workflow.ToResponse(),
	})
}

// RespondToApproval handles recording an approver's verdict.
func (h *Handler) RespondToApproval(c *gin.Context) {
	workflowID, ok := parseID(c, "workflow_id")
	if !ok {
		return
	}
	approverID, ok := parseQueryID(c, "approver_id")
	if !ok {
		return
	}

	var req ApprovalResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.RespondToApproval(c.Request.Context(), workflowID, approverID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Approval response recorded",
		"response": gin.H{
			"id":          response.ID,
			"is_approved": response.IsApproved,
			"comment":     response.Comment,
			"created_at":  response.CreatedAt,
		},
	})
}

// WorkflowDetail handles fetching a workflow with its responses.
func (h *Handler) WorkflowDetail(c *gin.Context) {
	workflowID, ok := parseID(c, "workflow_id")
	if !ok {
		return
	}

	detail, err := h.service.WorkflowDetail(c.Request.Context(), workflowID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateDecision handles opening a team decision.
func (h *Handler) CreateDecision(c *gin.Context) {
	projectID, ok := parseID(c, "project_id")
	if !ok {
		return
	}
	createdByID, ok := parseQueryID(c, "created_by_id")
	if !ok {
		return
	}

	var req CreateTeamDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.service.CreateTeamDecision(c.Request.Context(), projectID, createdByID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Team decision created",
		"decision": decision.ToResponse(),
	})
}

// CastVote handles recording a ballot.
func (h *Handler) CastVote(c *gin.Context) {
	decisionID, ok := parseID(c, "decision_id")
	if !ok {
		return
	}
	voterID, ok := parseQueryID(c, "voter_id")
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vote, err := h.service.CastVote(c.Request.Context(), decisionID, voterID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vote recorded",
		"vote":    vote.ToResponse(),
	})
}

// ConcludeDecision handles closing a decision.
func (h *Handler) ConcludeDecision(c *gin.Context) {
	decisionID, ok := parseID(c, "decision_id")
	if !ok {
		return
	}
	concluderID, ok := parseQueryID(c, "concluder_id")
	if !ok {
		return
	}

	var req ConcludeDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.service.ConcludeDecision(c.Request.Context(), decisionID, concluderID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Decision concluded",
		"decision": decision.ToResponse(),
	})
}

// AddComment handles commenting on a decision.
func (h *Handler) AddComment(c *gin.Context) {
	decisionID, ok := parseID(c, "decision_id")
	if !ok {
		return
	}
	authorID, ok := parseQueryID(c, "author_id")
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), decisionID, authorID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added",
		"comment": comment.ToResponse(),
	})
}

// DecisionDetail handles fetching a decision with votes, comments and stats.
func (h *Handler) DecisionDetail(c *gin.Context) {
	decisionID, ok := parseID(c, "decision_id")
	if !ok {
		return
	}

	detail, err := h.service.DecisionDetail(c.Request.Context(), decisionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// DecisionStats handles fetching voting stats for a decision.
func (h *Handler) DecisionStats(c *gin.Context) {
	decisionID, ok := parseID(c, "decision_id")
	if !ok {
		return
	}

	stats, err := h.service.DecisionStats(c.Request.Context(), decisionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"decision_id": decisionID,
		"stats":       stats,
	})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// parseQueryID reads the acting user's id from a query parameter. There is
// no session auth; callers identify themselves explicitly.
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// handleError handles service errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
	case errors.Is(err, ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project_not_found"})
	case errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
	case errors.Is(err, ErrWorkflowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "approval_workflow_not_found"})
	case errors.Is(err, ErrDecisionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "team_decision_not_found"})
	case errors.Is(err, ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user_already_exists"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "only_owner_can_share"})
	case errors.Is(err, ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient_permission"})
	case errors.Is(err, ErrNotApprover):
		c.JSON(http.StatusForbidden, gin.H{"error": "not_a_designated_approver"})
	case errors.Is(err, ErrInviteInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invite_invalid_or_expired"})
	case errors.Is(err, ErrAssigneeNotMember):
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignee_not_project_member"})
	case errors.Is(err, ErrWorkflowClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "approval_workflow_completed"})
	case errors.Is(err, ErrAlreadyResponded):
		c.JSON(http.StatusConflict, gin.H{"error": "approver_already_responded"})
	case errors.Is(err, ErrDecisionConcluded):
		c.JSON(http.StatusConflict, gin.H{"error": "decision_already_concluded"})
	case errors.Is(err, ErrVotingDisabled):
		c.JSON(http.StatusBadRequest, gin.H{"error": "voting_not_enabled"})
	case errors.Is(err, ErrVotingClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "voting_deadline_passed"})
	case errors.Is(err, ErrInvalidVoteOptions):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_vote_options"})
	case errors.Is(err, ErrInvalidParent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_parent_comment"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
