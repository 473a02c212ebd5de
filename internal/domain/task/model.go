package task

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Status follows the task lifecycle: Pending -> In Progress -> Complete.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusComplete   Status = "Complete"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// Category distinguishes one-off work from recurring habits and larger
// milestones.
type Category string

const (
	CategoryOneOff    Category = "one-off"
	CategoryHabit     Category = "habit"
	CategoryMilestone Category = "milestone"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryOneOff, CategoryHabit, CategoryMilestone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Subtask is an embedded checklist item; subtasks have no identity outside
// their parent task.
type Subtask struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Subtasks is stored as a JSONB array on the task row.
type Subtasks []Subtask

func (s Subtasks) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]Subtask{})
	}
	return json.Marshal(s)
}

func (s *Subtasks) Scan(value interface{}) error {
	if value == nil {
		*s = Subtasks{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan subtasks: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}

type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Status      Status         `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	Category    Category       `gorm:"size:20;not null;default:'one-off'" json:"category"`
	Priority    Priority       `gorm:"size:10;not null;default:'medium'" json:"priority"`
	Duration    int            `gorm:"not null;default:30" json:"duration"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Subtasks    Subtasks       `gorm:"type:jsonb" json:"subtasks"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Domain errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidCategory = errors.New("invalid task category")
	ErrInvalidPriority = errors.New("invalid task priority")
)
