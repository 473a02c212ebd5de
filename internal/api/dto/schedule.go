package dto

import (
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/schedule"
	"github.com/google/uuid"
)

// CreateScheduleRequest is the payload for a new schedule block.
type CreateScheduleRequest struct {
	TaskID    *uuid.UUID `json:"taskId,omitempty"`
	Title     string     `json:"title" validate:"required,not_empty,max=200"`
	Date      string     `json:"date" validate:"required,date_string"`
	StartTime time.Time  `json:"startTime" validate:"required"`
	EndTime   time.Time  `json:"endTime" validate:"required"`
	Color     string     `json:"color" validate:"omitempty,len=7,startswith=#"`
	Note      string     `json:"note" validate:"omitempty,max=2000"`
}

// UpdateScheduleRequest carries partial block changes.
type UpdateScheduleRequest struct {
	TaskID    *uuid.UUID `json:"taskId,omitempty"`
	Title     *string    `json:"title,omitempty" validate:"omitempty,not_empty,max=200"`
	Date      *string    `json:"date,omitempty" validate:"omitempty,date_string"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Color     *string    `json:"color,omitempty" validate:"omitempty,len=7,startswith=#"`
	Note      *string    `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// ScheduleQuery selects blocks by day or date range.
type ScheduleQuery struct {
	Date string `form:"date" validate:"omitempty,date_string"`
	From string `form:"from" validate:"omitempty,date_string"`
	To   string `form:"to" validate:"omitempty,date_string"`
}

// ScheduleBlockResponse is the API shape of a block.
type ScheduleBlockResponse struct {
	ID        uuid.UUID  `json:"id"`
	TaskID    *uuid.UUID `json:"taskId,omitempty"`
	Title     string     `json:"title"`
	Date      string     `json:"date"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Color     string     `json:"color"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func ToScheduleBlockResponse(b *schedule.ScheduleBlock) ScheduleBlockResponse {
	return ScheduleBlockResponse{
		ID:        b.ID,
		TaskID:    b.TaskID,
		Title:     b.Title,
		Date:      b.Date.Format("2006-01-02"),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Color:     b.Color,
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func ToScheduleBlockListResponse(blocks []schedule.ScheduleBlock) []ScheduleBlockResponse {
	out := make([]ScheduleBlockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, ToScheduleBlockResponse(&blocks[i]))
	}
	return out
}
