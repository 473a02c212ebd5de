package task

import (
	"context"
	"testing"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	tasks map[uuid.UUID]*Task
}

func newMockRepository() *mockRepository {
	return &mockRepository{tasks: make(map[uuid.UUID]*Task)}
}

func (m *mockRepository) Create(task *Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now().UTC()
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockRepository) FindByID(id, userID uuid.UUID) (*Task, error) {
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockRepository) FindAll(filter Filter) ([]Task, int64, error) {
	var out []Task
	for _, t := range m.tasks {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Update(task *Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(id, userID uuid.UUID) error {
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockRepository) CountByStatus(userID uuid.UUID, status Status) (int64, error) {
	var count int64
	for _, t := range m.tasks {
		if t.UserID == userID && t.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockRepository) DistinctUserIDs() ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, t := range m.tasks {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			ids = append(ids, t.UserID)
		}
	}
	return ids, nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, nil, logger.NewLogger())
}

func strPtr(s string) *string          { return &s }
func statusPtr(s Status) *Status       { return &s }
func priorityPtr(p Priority) *Priority { return &p }

func TestCreateDefaults(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	task, err := svc.Create(context.Background(), userID, CreateInput{Title: "Read gorm docs"})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, CategoryOneOff, task.Category)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, 30, task.Duration)
	assert.NotNil(t, task.Subtasks)
	assert.Nil(t, task.CompletedAt)
}

func TestCreateRejectsInvalidEnums(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, CreateInput{Title: "x", Category: "weekly"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = svc.Create(context.Background(), userID, CreateInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestUpdateCompletedAtTransitions(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	task, err := svc.Create(context.Background(), userID, CreateInput{Title: "Ship it"})
	require.NoError(t, err)

	// Pending -> Complete stamps CompletedAt.
	updated, err := svc.Update(context.Background(), task.ID, userID, UpdateInput{Status: statusPtr(StatusComplete)})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	firstCompleted := *updated.CompletedAt

	// Complete -> Complete keeps the original timestamp.
	updated, err = svc.Update(context.Background(), task.ID, userID, UpdateInput{
		Status: statusPtr(StatusComplete),
		Title:  strPtr("Ship it v2"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, firstCompleted, *updated.CompletedAt)

	// Complete -> In Progress clears CompletedAt.
	updated, err = svc.Update(context.Background(), task.ID, userID, UpdateInput{Status: statusPtr(StatusInProgress)})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateOtherUsersTaskNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	owner := uuid.New()
	intruder := uuid.New()

	task, err := svc.Create(context.Background(), owner, CreateInput{Title: "Private"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), task.ID, intruder, UpdateInput{Status: statusPtr(StatusComplete)})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.Delete(context.Background(), task.ID, intruder)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdatePartialFields(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	task, err := svc.Create(context.Background(), userID, CreateInput{
		Title:    "Write tests",
		Priority: PriorityHigh,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), task.ID, userID, UpdateInput{
		Priority: priorityPtr(PriorityCritical),
	})
	require.NoError(t, err)

	assert.Equal(t, "Write tests", updated.Title)
	assert.Equal(t, PriorityCritical, updated.Priority)
	assert.Equal(t, StatusPending, updated.Status)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), userID, CreateInput{Title: "t"})
		require.NoError(t, err)
	}
	done, err := svc.Create(context.Background(), userID, CreateInput{Title: "done"})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), done.ID, userID, UpdateInput{Status: statusPtr(StatusComplete)})
	require.NoError(t, err)

	tasks, total, err := svc.List(context.Background(), Filter{
		UserID: userID,
		Status: statusPtr(StatusComplete),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "done", tasks[0].Title)
}
