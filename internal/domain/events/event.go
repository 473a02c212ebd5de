package events

import (
	"time"

	"github.com/google/uuid"
)

// Analytics event types
const (
	EventTypeTaskUpdate        = "task_update"
	EventTypeScheduleUpdate    = "schedule_update"
	EventTypeConsistencyUpdate = "consistency_update"
	EventTypeSnapshotRecorded  = "snapshot_recorded"
	EventTypeCacheInvalidate   = "cache_invalidate"
)

// AnalyticsEvent signals that a user's derived analytics may have changed.
// Consumers use it to invalidate cached list responses for that user.
type AnalyticsEvent struct {
	EventType string                 `json:"event_type"`
	UserID    uuid.UUID              `json:"user_id"`
	EntityID  uuid.UUID              `json:"entity_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}
