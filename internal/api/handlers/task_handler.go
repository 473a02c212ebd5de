package handlers

import (
	"errors"
	"net/http"

	"github.com/RishabhMalviya75/ZenithTrack/internal/api/dto"
	"github.com/RishabhMalviya75/ZenithTrack/internal/api/middleware"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	service task.Service
	log     *logger.Logger
}

func NewTaskHandler(service task.Service, log *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, log: log}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTaskRequest true "Task details"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} map[string]string
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	req := c.MustGet("validated_model").(*dto.CreateTaskRequest)

	created, err := h.service.Create(c.Request.Context(), userID, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    task.Category(req.Category),
		Priority:    task.Priority(req.Priority),
		Duration:    req.Duration,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Subtasks:    toSubtasks(req.Subtasks),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToTaskResponse(created)})
}

// GetTask godoc
// @Summary Get one task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	found, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskResponse(found)})
}

// ListTasks godoc
// @Summary List tasks with filters
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param priority query string false "Filter by priority"
// @Param search query string false "Search in title and description"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.TaskListResponse
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	query := c.MustGet("validated_query").(*dto.TaskListQuery)

	filter := task.Filter{
		UserID:   userID,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		status := task.Status(query.Status)
		filter.Status = &status
	}
	if query.Category != "" {
		category := task.Category(query.Category)
		filter.Category = &category
	}
	if query.Priority != "" {
		priority := task.Priority(query.Priority)
		filter.Priority = &priority
	}
	if query.Search != "" {
		filter.Search = &query.Search
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 50
	}

	tasks, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskListResponse(tasks, total, filter.Page, filter.PageSize)})
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Task changes"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	req := c.MustGet("validated_model").(*dto.UpdateTaskRequest)

	input := task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := task.Status(*req.Status)
		input.Status = &status
	}
	if req.Category != nil {
		category := task.Category(*req.Category)
		input.Category = &category
	}
	if req.Priority != nil {
		priority := task.Priority(*req.Priority)
		input.Priority = &priority
	}
	if req.Subtasks != nil {
		subtasks := toSubtasks(*req.Subtasks)
		input.Subtasks = &subtasks
	}

	updated, err := h.service.Update(c.Request.Context(), id, userID, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskResponse(updated)})
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toSubtasks(bodies []dto.SubtaskBody) task.Subtasks {
	subtasks := make(task.Subtasks, 0, len(bodies))
	for _, b := range bodies {
		subtasks = append(subtasks, task.Subtask{Title: b.Title, Done: b.Done})
	}
	return subtasks
}

func (h *TaskHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrInvalidCategory),
		errors.Is(err, task.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("task handler error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
