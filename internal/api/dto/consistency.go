package dto

import (
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/google/uuid"
)

// LogDayRequest merges one day's statuses into the stored record. Only the
// supplied categories change; the rest keep their prior values.
type LogDayRequest struct {
	Date    string            `json:"date" validate:"required,date_string"`
	Metrics map[string]string `json:"metrics" validate:"required,min=1"`
	Notes   string            `json:"notes" validate:"omitempty,max=2000"`
}

// ConsistencyQuery selects recent records.
type ConsistencyQuery struct {
	Limit int    `form:"limit" validate:"omitempty,min=1,max=365"`
	Since string `form:"since" validate:"omitempty,date_string"`
}

// DailyRecordResponse is the API shape of one day's log.
type DailyRecordResponse struct {
	ID        uuid.UUID         `json:"id"`
	Date      string            `json:"date"`
	Metrics   map[string]string `json:"metrics"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func ToDailyRecordResponse(r *consistency.DailyRecord) DailyRecordResponse {
	metrics := make(map[string]string, len(r.Metrics))
	for category, status := range r.Metrics {
		metrics[string(category)] = string(status)
	}

	return DailyRecordResponse{
		ID:        r.ID,
		Date:      r.Date.Format("2006-01-02"),
		Metrics:   metrics,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToDailyRecordListResponse(records []consistency.DailyRecord) []DailyRecordResponse {
	out := make([]DailyRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, ToDailyRecordResponse(&records[i]))
	}
	return out
}

// ToMetrics converts the wire map into domain types. Enum validation
// happens in the service.
func (r LogDayRequest) ToMetrics() consistency.Metrics {
	metrics := make(consistency.Metrics, len(r.Metrics))
	for category, status := range r.Metrics {
		metrics[consistency.Category(category)] = consistency.Status(status)
	}
	return metrics
}
