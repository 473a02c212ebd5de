package progress

import (
	"context"
	"testing"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	snapshots []Snapshot
}

func (m *mockRepository) Create(snapshot *Snapshot) error {
	for _, s := range m.snapshots {
		if s.UserID == snapshot.UserID && s.Date.Equal(snapshot.Date) {
			return ErrSnapshotExists
		}
	}
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	m.snapshots = append(m.snapshots, *snapshot)
	return nil
}

func (m *mockRepository) FindByUser(userID uuid.UUID, limit int) ([]Snapshot, error) {
	var out []Snapshot
	for _, s := range m.snapshots {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepository) FindSince(userID uuid.UUID, since time.Time) ([]Snapshot, error) {
	var out []Snapshot
	for _, s := range m.snapshots {
		if s.UserID == userID && !s.Date.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepository) Latest(userID uuid.UUID) (*Snapshot, error) {
	var latest *Snapshot
	for i := range m.snapshots {
		s := &m.snapshots[i]
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.Date.After(latest.Date) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

// mockTaskRepository implements just enough of task.Repository for the
// snapshot job: DistinctUserIDs and FindAll.
type mockTaskRepository struct {
	tasks []task.Task
}

func (m *mockTaskRepository) Create(t *task.Task) error { return nil }

func (m *mockTaskRepository) FindByID(id, userID uuid.UUID) (*task.Task, error) {
	return nil, task.ErrTaskNotFound
}

func (m *mockTaskRepository) Update(t *task.Task) error { return nil }

func (m *mockTaskRepository) Delete(id, userID uuid.UUID) error { return nil }

func (m *mockTaskRepository) FindAll(filter task.Filter) ([]task.Task, int64, error) {
	var out []task.Task
	for _, t := range m.tasks {
		if t.UserID == filter.UserID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockTaskRepository) CountByStatus(userID uuid.UUID, status task.Status) (int64, error) {
	var count int64
	for _, t := range m.tasks {
		if t.UserID == userID && t.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockTaskRepository) DistinctUserIDs() ([]uuid.UUID, error) {
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

func TestRecordDailySnapshots(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	earlier := today.Add(-48 * time.Hour)

	taskRepo := &mockTaskRepository{tasks: []task.Task{
		{ID: uuid.New(), UserID: userA, Status: task.StatusComplete, Duration: 45, CompletedAt: &today},
		{ID: uuid.New(), UserID: userA, Status: task.StatusComplete, Duration: 30, CompletedAt: &earlier},
		{ID: uuid.New(), UserID: userA, Status: task.StatusPending, Duration: 60},
		{ID: uuid.New(), UserID: userB, Status: task.StatusInProgress, Duration: 30},
	}}
	repo := &mockRepository{}
	svc := NewService(repo, taskRepo, nil, logger.NewLogger())

	err := svc.RecordDailySnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.snapshots, 2)

	var forA *Snapshot
	for i := range repo.snapshots {
		if repo.snapshots[i].UserID == userA {
			forA = &repo.snapshots[i]
		}
	}
	require.NotNil(t, forA)

	assert.Equal(t, int64(3), forA.TotalTasks)
	assert.Equal(t, int64(2), forA.CompletedTasks)
	assert.Equal(t, int64(45), forA.FocusMinutes, "only work finished today counts toward focus time")
	assert.Equal(t, today, forA.Date)
}

func TestRecordDailySnapshotsIdempotent(t *testing.T) {
	userID := uuid.New()
	taskRepo := &mockTaskRepository{tasks: []task.Task{
		{ID: uuid.New(), UserID: userID, Status: task.StatusPending},
	}}
	repo := &mockRepository{}
	svc := NewService(repo, taskRepo, nil, logger.NewLogger())

	require.NoError(t, svc.RecordDailySnapshots(context.Background()))
	require.NoError(t, svc.RecordDailySnapshots(context.Background()))

	assert.Len(t, repo.snapshots, 1, "a rerun on the same day must not duplicate snapshots")
}

func TestRecordDailySnapshotsCancelled(t *testing.T) {
	taskRepo := &mockTaskRepository{tasks: []task.Task{
		{ID: uuid.New(), UserID: uuid.New(), Status: task.StatusPending},
	}}
	repo := &mockRepository{}
	svc := NewService(repo, taskRepo, nil, logger.NewLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.RecordDailySnapshots(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.snapshots)
}

func TestGetHistoryDefaultLimit(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{}
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < 100; i++ {
		repo.snapshots = append(repo.snapshots, Snapshot{
			ID:     uuid.New(),
			UserID: userID,
			Date:   day.AddDate(0, 0, -i),
		})
	}
	svc := NewService(repo, &mockTaskRepository{}, nil, logger.NewLogger())

	snapshots, err := svc.GetHistory(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Len(t, snapshots, 90)

	snapshots, err = svc.GetHistory(context.Background(), userID, 10)
	require.NoError(t, err)
	assert.Len(t, snapshots, 10)
}

func TestCompletionRate(t *testing.T) {
	s := Snapshot{TotalTasks: 4, CompletedTasks: 3}
	assert.InDelta(t, 75.0, s.CompletionRate(), 0.001)

	empty := Snapshot{}
	assert.Zero(t, empty.CompletionRate())
}
