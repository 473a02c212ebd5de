package dto

import (
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/google/uuid"
)

type SubtaskBody struct {
	Title string `json:"title" validate:"required,not_empty,max=200"`
	Done  bool   `json:"done"`
}

// CreateTaskRequest is the payload for a new task.
type CreateTaskRequest struct {
	Title       string        `json:"title" validate:"required,not_empty,max=200"`
	Description string        `json:"description" validate:"omitempty,max=5000"`
	Category    string        `json:"category" validate:"omitempty,oneof=one-off habit milestone"`
	Priority    string        `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Duration    int           `json:"duration" validate:"omitempty,min=1,max=1440"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Tags        []string      `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Subtasks    []SubtaskBody `json:"subtasks,omitempty" validate:"omitempty,max=50,dive"`
}

// UpdateTaskRequest carries partial task changes.
type UpdateTaskRequest struct {
	Title       *string        `json:"title,omitempty" validate:"omitempty,not_empty,max=200"`
	Description *string        `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status      *string        `json:"status,omitempty" validate:"omitempty,oneof=Pending 'In Progress' Complete"`
	Category    *string        `json:"category,omitempty" validate:"omitempty,oneof=one-off habit milestone"`
	Priority    *string        `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Duration    *int           `json:"duration,omitempty" validate:"omitempty,min=1,max=1440"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	Tags        []string       `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Subtasks    *[]SubtaskBody `json:"subtasks,omitempty" validate:"omitempty,max=50,dive"`
}

// TaskListQuery filters the task listing.
type TaskListQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=Pending 'In Progress' Complete"`
	Category string `form:"category" validate:"omitempty,oneof=one-off habit milestone"`
	Priority string `form:"priority" validate:"omitempty,oneof=low medium high critical"`
	Search   string `form:"search" validate:"omitempty,max=200"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// TaskResponse is the API shape of a task.
type TaskResponse struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      string        `json:"status"`
	Category    string        `json:"category"`
	Priority    string        `json:"priority"`
	Duration    int           `json:"duration"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Tags        []string      `json:"tags"`
	Subtasks    []SubtaskBody `json:"subtasks"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TaskListResponse wraps a page of tasks.
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

func ToTaskResponse(t *task.Task) TaskResponse {
	subtasks := make([]SubtaskBody, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		subtasks = append(subtasks, SubtaskBody{Title: st.Title, Done: st.Done})
	}

	tags := []string(t.Tags)
	if tags == nil {
		tags = []string{}
	}

	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		Duration:    t.Duration,
		DueDate:     t.DueDate,
		Tags:        tags,
		Subtasks:    subtasks,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTaskListResponse(tasks []task.Task, total int64, page, pageSize int) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToTaskResponse(&tasks[i]))
	}
	return TaskListResponse{
		Tasks:    out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
