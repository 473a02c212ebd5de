package progress

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snapshot is an append-only record of a user's task counts at the end of
// one day. Snapshots are never updated in place; trends read the series.
type Snapshot struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_date" json:"user_id"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:idx_progress_user_date" json:"date"`
	TotalTasks     int64     `gorm:"not null" json:"total_tasks"`
	CompletedTasks int64     `gorm:"not null" json:"completed_tasks"`
	FocusMinutes   int64     `gorm:"not null" json:"focus_minutes"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s *Snapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CompletionRate is the snapshot's completion percentage, 0 when no tasks
// exist.
func (s *Snapshot) CompletionRate() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
}

var ErrSnapshotExists = errors.New("snapshot already recorded for this day")
