package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	domain "github.com/Parasuram76/Task-Management-System/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T, cache *ListCache) *TaskService {
	t.Helper()

	svc := NewTaskService(NewGormRepository(setupTestDB(t).Gorm), cache, &mockLogger{})
	svc.now = steppingClock()
	return svc
}

func strPtr(s string) *string { return &s }

func TestTaskService_CreateThenList(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTaskRequest{
		OwnerID:     "alice",
		Title:       "Buy milk",
		Description: "2 litres, semi-skimmed",
		DueDate:     "2026-05-03",
		Status:      "in-progress",
	})
	require.NoError(t, err)

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2 litres, semi-skimmed", got.Description)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(time.Date(2026, time.May, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "alice", got.OwnerID)
}

func TestTaskService_CreateDefaults(t *testing.T) {
	svc := setupTestService(t, nil)

	created, err := svc.Create(context.Background(), CreateTaskRequest{OwnerID: "alice", Title: "Buy milk"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "", created.Description)
	assert.Nil(t, created.DueDate)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestTaskService_CreateValidation(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantErr error
	}{
		{name: "empty title", req: CreateTaskRequest{OwnerID: "alice"}, wantErr: ErrTitleRequired},
		{name: "blank title", req: CreateTaskRequest{OwnerID: "alice", Title: "  "}, wantErr: ErrTitleRequired},
		{name: "unknown status", req: CreateTaskRequest{OwnerID: "alice", Title: "x", Status: "done"}, wantErr: ErrInvalidStatus},
		{name: "bad due date", req: CreateTaskRequest{OwnerID: "alice", Title: "x", DueDate: "tomorrow"}, wantErr: ErrInvalidDueDate},
		{name: "no caller", req: CreateTaskRequest{Title: "x"}, wantErr: ErrNoCaller},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, tasks, "rejected creates must not persist anything")
}

func TestTaskService_ListNewestFirst(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: title})
		require.NoError(t, err)
	}

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "three", tasks[0].Title)
	assert.Equal(t, "two", tasks[1].Title)
	assert.Equal(t, "one", tasks[2].Title)
}

func TestTaskService_OwnershipIsolation(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	alices, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, alices.Status)

	bobsList, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	assert.NotNil(t, bobsList)
	assert.Empty(t, bobsList)

	_, err = svc.Update(ctx, UpdateTaskRequest{OwnerID: "bob", TaskID: alices.ID, Title: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, errMissing := svc.Update(ctx, UpdateTaskRequest{OwnerID: "bob", TaskID: "does-not-exist", Title: strPtr("x")})
	assert.Equal(t, err, errMissing, "foreign and missing ids must be indistinguishable")

	assert.ErrorIs(t, svc.Delete(ctx, "bob", alices.ID), ErrTaskNotFound)

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestTaskService_Update(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "Buy milk", Description: "2 litres", DueDate: "2026-05-03"})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, Status: strPtr("completed")})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		assert.Equal(t, "Buy milk", updated.Title)
		assert.Equal(t, "2 litres", updated.Description)
		assert.NotNil(t, updated.DueDate)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("any status may follow any other", func(t *testing.T) {
		for _, status := range []string{"pending", "completed", "in-progress", "pending"} {
			updated, err := svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, Status: strPtr(status)})
			require.NoError(t, err)
			assert.Equal(t, domain.Status(status), updated.Status)
		}
	})

	t.Run("empty due date clears it", func(t *testing.T) {
		updated, err := svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, DueDate: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)
	})

	t.Run("empty update returns the task", func(t *testing.T) {
		updated, err := svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Buy milk", updated.Title)
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, Title: strPtr("")})
		assert.ErrorIs(t, err, ErrTitleRequired)

		_, err = svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, Status: strPtr("archived")})
		assert.ErrorIs(t, err, ErrInvalidStatus)

		_, err = svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, Status: strPtr("")})
		assert.ErrorIs(t, err, ErrInvalidStatus)

		_, err = svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, DueDate: strPtr("someday")})
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})
}

func TestTaskService_Delete(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "alice", created.ID), ErrTaskNotFound)

	_, err = svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTaskService_Stats(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	for _, status := range []string{"pending", "pending", "in-progress", "completed"} {
		_, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "t", Status: status})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "bob", Title: "t"})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 4, Pending: 2, InProgress: 1, Completed: 1}, *stats)

	stats, err = svc.Stats(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, *stats)
}

func TestTaskService_ListCache(t *testing.T) {
	store := newMemoryStore()
	svc := setupTestService(t, NewListCache(store, DefaultCachePrefix, time.Minute))
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "Buy milk"})
	require.NoError(t, err)

	first, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, store.has("tasks:alice"), "list should be cached after a miss")

	cached, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, cached[0].ID)

	t.Run("writes invalidate synchronously", func(t *testing.T) {
		_, err := svc.Update(ctx, UpdateTaskRequest{OwnerID: "alice", TaskID: created.ID, Title: strPtr("Buy oat milk")})
		require.NoError(t, err)
		assert.False(t, store.has("tasks:alice"))

		tasks, err := svc.List(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", tasks[0].Title)

		require.NoError(t, svc.Delete(ctx, "alice", created.ID))
		tasks, err = svc.List(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("cache keys are per owner", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "bob", Title: "Bob's"})
		require.NoError(t, err)

		tasks, err := svc.List(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskService_ListCacheFailureFallsThrough(t *testing.T) {
	store := newMemoryStore()
	store.failGet = errors.New("connection refused")
	svc := setupTestService(t, NewListCache(store, DefaultCachePrefix, time.Minute))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "Buy milk"})
	require.NoError(t, err)

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTaskService_ConcurrentListsAreIsolated(t *testing.T) {
	svc := setupTestService(t, NewListCache(newMemoryStore(), DefaultCachePrefix, time.Minute))
	ctx := context.Background()

	for _, owner := range []string{"alice", "bob"} {
		_, err := svc.Create(ctx, CreateTaskRequest{OwnerID: owner, Title: owner + "'s task"})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		owner := "alice"
		if i%2 == 1 {
			owner = "bob"
		}
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()
			tasks, err := svc.List(ctx, owner)
			if assert.NoError(t, err) && assert.Len(t, tasks, 1) {
				assert.Equal(t, owner, tasks[0].OwnerID)
			}
		}(owner)
	}
	wg.Wait()
}

// heldRepository blocks the first ListByOwner after it has read from the store
// until release is closed.
type heldRepository struct {
	Repository
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (r *heldRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := r.Repository.ListByOwner(ctx, ownerID)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.loaded)
		<-r.release
	}
	return tasks, err
}

func TestTaskService_WriteDuringInFlightList(t *testing.T) {
	store := newMemoryStore()
	cache := NewListCache(store, DefaultCachePrefix, time.Minute)
	repo := &heldRepository{
		Repository: NewGormRepository(setupTestDB(t).Gorm),
		loaded:     make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := NewTaskService(repo, cache, &mockLogger{})
	svc.now = steppingClock()
	ctx := context.Background()

	before := make(chan []domain.Task, 1)
	go func() {
		tasks, err := svc.List(ctx, "alice")
		assert.NoError(t, err)
		before <- tasks
	}()
	<-repo.loaded

	created, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "Buy milk"})
	require.NoError(t, err)

	after := make(chan []domain.Task, 1)
	go func() {
		tasks, err := svc.List(ctx, "alice")
		assert.NoError(t, err)
		after <- tasks
	}()

	select {
	case tasks := <-after:
		require.Len(t, tasks, 1, "the writer must see its own task")
		assert.Equal(t, created.ID, tasks[0].ID)
	case <-time.After(5 * time.Second):
		close(repo.release)
		t.Fatal("list after create joined the query started before it")
	}

	close(repo.release)
	assert.Empty(t, <-before)

	cached, found, err := cache.Get(ctx, "alice")
	require.NoError(t, err)
	if found {
		require.Len(t, cached, 1, "the pre-write list must not be cached")
		assert.Equal(t, created.ID, cached[0].ID)
	}

	tasks, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestTaskService_StaleListIsNotCached(t *testing.T) {
	store := newMemoryStore()
	cache := NewListCache(store, DefaultCachePrefix, time.Minute)
	repo := &heldRepository{
		Repository: NewGormRepository(setupTestDB(t).Gorm),
		loaded:     make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := NewTaskService(repo, cache, &mockLogger{})
	svc.now = steppingClock()
	ctx := context.Background()

	before := make(chan []domain.Task, 1)
	go func() {
		tasks, err := svc.List(ctx, "alice")
		assert.NoError(t, err)
		before <- tasks
	}()
	<-repo.loaded

	_, err := svc.Create(ctx, CreateTaskRequest{OwnerID: "alice", Title: "Buy milk"})
	require.NoError(t, err)

	close(repo.release)
	assert.Empty(t, <-before)
	assert.False(t, store.has("tasks:alice"), "a list loaded across a write must not be cached")
}
