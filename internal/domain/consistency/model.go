package consistency

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is one of the tracked daily focus areas.
type Category string

const (
	CategoryDevelopment Category = "Development"
	CategoryCareer      Category = "Career"
	CategoryAIML        Category = "AI_ML"
	CategoryMindset     Category = "Mindset"
	CategoryDSA         Category = "DSA"
)

// Categories lists every tracked category in display order.
var Categories = []Category{
	CategoryDevelopment,
	CategoryCareer,
	CategoryAIML,
	CategoryMindset,
	CategoryDSA,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Status records how a category went on a given day.
type Status string

const (
	StatusComplete Status = "Complete"
	StatusPartial  Status = "Partial"
	StatusMissed   Status = "Missed"
	StatusNoTasks  Status = "No Tasks"
)

func (s Status) Valid() bool {
	switch s {
	case StatusComplete, StatusPartial, StatusMissed, StatusNoTasks:
		return true
	}
	return false
}

// Metrics maps each logged category to its status for one day, stored as
// JSONB.
type Metrics map[Category]Status

func (m Metrics) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(Metrics{})
	}
	return json.Marshal(m)
}

func (m *Metrics) Scan(value interface{}) error {
	if value == nil {
		*m = Metrics{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan metrics: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, m)
}

// Merge overlays incoming onto m, keeping existing categories that the
// incoming log does not mention. Merging the same log twice gives the same
// result as merging it once.
func (m Metrics) Merge(incoming Metrics) Metrics {
	merged := make(Metrics, len(m)+len(incoming))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

// DailyRecord is one user's consistency log for one calendar day. Date is
// stored as midnight UTC; user and date are unique together.
type DailyRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_consistency_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_consistency_user_date" json:"date"`
	Metrics   Metrics   `gorm:"type:jsonb;not null" json:"metrics"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *DailyRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Domain errors
var (
	ErrRecordNotFound  = errors.New("daily record not found")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidCategory = errors.New("invalid consistency category")
	ErrInvalidStatus   = errors.New("invalid consistency status")
)
