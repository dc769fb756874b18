package task

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for tasks.
type Handler struct {
	service *Service
}

// NewHandler creates a new task handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers task routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tasks := r.Group("/tasks")
	{
		tasks.POST("", h.Create)
		tasks.GET("", h.List)
		tasks.GET("/:id", h.Get)
		tasks.PATCH("/:id/state", h.UpdateState)
		tasks.PATCH("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
	}
}

// Create handles task creation.
//
//	@Summary		Create task
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTaskRequest	true	"Create task request"
//	@Success		201		{object}	TaskResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/tasks [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t.ToResponse())
}

// List handles listing tasks with optional project/state filters.
//
//	@Summary		List tasks
//	@Tags			Tasks
//	@Produce		json
//	@Param			project_id	query	int		false	"Filter by project"
//	@Param			state		query	string	false	"Filter by state"
//	@Success		200	{array}	TaskResponse
//	@Router			/tasks [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.service.List(c.Request.Context(), &q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, t.ToResponse())
	}
	c.JSON(http.StatusOK, result)
}

// Get handles getting a single task.
//
//	@Summary		Get task
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		int	true	"Task ID"
//	@Success		200	{object}	TaskResponse
//	@Failure		404	{object}	map[string]string
//	@Router			/tasks/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t.ToResponse())
}

// UpdateState handles a WIP-gated state transition.
//
//	@Summary		Update task state
//	@Description	Moves a task to a new state. Entering IN_PROGRESS is rejected when the WIP limit is reached.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Task ID"
//	@Param			request	body		UpdateStateRequest	true	"Target state"
//	@Success		200		{object}	TaskResponse
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/tasks/{id}/state [patch]
func (h *Handler) UpdateState(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.UpdateState(c.Request.Context(), id, req.State)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t.ToResponse())
}

// Update handles a partial task update.
//
//	@Summary		Update task
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Task ID"
//	@Param			request	body		UpdateTaskRequest	true	"Update task request"
//	@Success		200		{object}	TaskResponse
//	@Failure		404		{object}	map[string]string
//	@Router			/tasks/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, t.ToResponse())
}

// Delete handles task deletion.
//
//	@Summary		Delete task
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		int	true	"Task ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/tasks/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// parseID parses a numeric path parameter, writing a 400 response on failure.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// handleError handles service errors.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task_not_found"})
	case errors.Is(err, ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project_not_found"})
	case errors.Is(err, ErrWIPLimitReached):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_state"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
