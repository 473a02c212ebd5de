package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultColor = "#3b82f6"

// ScheduleBlock is a planned stretch of time on a user's day. A block may
// reference the task it reserves time for.
type ScheduleBlock struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TaskID    *uuid.UUID `gorm:"type:uuid" json:"task_id,omitempty"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Date      time.Time  `gorm:"type:date;not null;index" json:"date"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   time.Time  `gorm:"not null" json:"end_time"`
	Color     string     `gorm:"size:7;not null;default:'#3b82f6'" json:"color"`
	Note      string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (b *ScheduleBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Validate checks block invariants and applies the default color. Blocks
// with a zero or negative span are rejected up front rather than stored.
func (b *ScheduleBlock) Validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if !b.StartTime.Before(b.EndTime) {
		return ErrInvalidTimeRange
	}
	if b.Color == "" {
		b.Color = defaultColor
	}
	return nil
}

// Domain errors
var (
	ErrBlockNotFound    = errors.New("schedule block not found")
	ErrTitleRequired    = errors.New("schedule block title is required")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
)
