package task

import (
	"context"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/events"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// EventPublisher pushes analytics events after task mutations. The cache
// layer satisfies this.
type EventPublisher interface {
	PublishAnalyticsEvent(ctx context.Context, event events.AnalyticsEvent) error
}

// CreateInput carries the accepted fields for a new task.
type CreateInput struct {
	Title       string
	Description string
	Category    Category
	Priority    Priority
	Duration    int
	DueDate     *time.Time
	Tags        []string
	Subtasks    Subtasks
}

// UpdateInput carries the mutable task fields. Nil means unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *Status
	Category    *Category
	Priority    *Priority
	Duration    *int
	DueDate     *time.Time
	Tags        []string
	Subtasks    *Subtasks
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*Task, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	List(ctx context.Context, filter Filter) ([]Task, int64, error)
	Update(ctx context.Context, id, userID uuid.UUID, input UpdateInput) (*Task, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo      Repository
	publisher EventPublisher
	log       *logger.Logger
}

func NewService(repo Repository, publisher EventPublisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*Task, error) {
	if input.Category == "" {
		input.Category = CategoryOneOff
	}
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if input.Priority == "" {
		input.Priority = PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.Duration <= 0 {
		input.Duration = 30
	}

	task := &Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusPending,
		Category:    input.Category,
		Priority:    input.Priority,
		Duration:    input.Duration,
		DueDate:     input.DueDate,
		Tags:        pq.StringArray(input.Tags),
		Subtasks:    input.Subtasks,
	}
	if task.Subtasks == nil {
		task.Subtasks = Subtasks{}
	}

	if err := s.repo.Create(task); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTypeTaskUpdate, userID, task.ID, map[string]interface{}{"action": "created"})

	return task, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	return s.repo.FindByID(id, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]Task, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, 0, ErrInvalidCategory
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, 0, ErrInvalidPriority
	}
	return s.repo.FindAll(filter)
}

// Update applies partial changes. CompletedAt tracks the status field: it is
// stamped on the transition into Complete and cleared on any transition out.
func (s *service) Update(ctx context.Context, id, userID uuid.UUID, input UpdateInput) (*Task, error) {
	task, err := s.repo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		task.Category = *input.Category
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Duration != nil && *input.Duration > 0 {
		task.Duration = *input.Duration
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Tags != nil {
		task.Tags = pq.StringArray(input.Tags)
	}
	if input.Subtasks != nil {
		task.Subtasks = *input.Subtasks
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		previous := task.Status
		task.Status = *input.Status

		if task.Status == StatusComplete && previous != StatusComplete {
			now := time.Now().UTC()
			task.CompletedAt = &now
		} else if task.Status != StatusComplete {
			task.CompletedAt = nil
		}
	}

	if err := s.repo.Update(task); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTypeTaskUpdate, userID, task.ID, map[string]interface{}{
		"action": "updated",
		"status": string(task.Status),
	})

	return task, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		return err
	}

	s.publish(ctx, events.EventTypeTaskUpdate, userID, id, map[string]interface{}{"action": "deleted"})

	return nil
}

func (s *service) publish(ctx context.Context, eventType string, userID, entityID uuid.UUID, details map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	event := events.AnalyticsEvent{
		EventType: eventType,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
	if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish analytics event", zap.Error(err))
	}
}
