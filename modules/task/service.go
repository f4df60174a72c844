package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domain "github.com/Parasuram76/Task-Management-System/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TaskService implements task operations scoped to the calling administrator.
type TaskService struct {
	repo    Repository
	cache   *ListCache
	logger  types.Logger
	now     func() time.Time
	sfGroup singleflight.Group

	// generations counts writes per owner. A list loaded across a write is
	// never stored in the cache.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewTaskService creates a TaskService. cache may be nil.
func NewTaskService(repo Repository, cache *ListCache, logger types.Logger) *TaskService {
	return &TaskService{
		repo:        repo,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
		generations: make(map[string]uint64),
	}
}

// Create validates and persists a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if req.OwnerID == "" {
		return nil, ErrNoCaller
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := domain.ParseDueDate(req.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		dueDate = &d
	}

	now := s.now().UTC()
	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     dueDate,
		OwnerID:     req.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidate(ctx, req.OwnerID)
	s.logger.Info("Task created", "taskID", t.ID, "ownerID", t.OwnerID)
	return t, nil
}

// List returns the caller's tasks, newest first. The result is never nil.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	if ownerID == "" {
		return nil, ErrNoCaller
	}

	if s.cache != nil {
		tasks, found, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			s.logger.Warn("Task list cache read failed", "ownerID", ownerID, "error", err)
		}
		if found {
			s.logger.Debug("Task list cache hit", "ownerID", ownerID)
			return tasks, nil
		}
	}

	gen := s.generation(ownerID)

	// Collapse concurrent misses for the same owner into one query.
	val, err, _ := s.sfGroup.Do(ownerID, func() (any, error) {
		return s.repo.ListByOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks, _ := val.([]domain.Task)
	if tasks == nil {
		tasks = []domain.Task{}
	}

	if s.cache != nil && s.generation(ownerID) == gen {
		if err := s.cache.Set(ctx, ownerID, tasks); err != nil {
			s.logger.Warn("Task list cache write failed", "ownerID", ownerID, "error", err)
		}
		// A write that landed during Set may have been deleted before it.
		if s.generation(ownerID) != gen {
			s.dropCached(ctx, ownerID)
		}
	}
	return tasks, nil
}

// Update replaces the provided fields of a task owned by the caller.
func (s *TaskService) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	if req.OwnerID == "" {
		return nil, ErrNoCaller
	}
	if req.TaskID == "" {
		return nil, ErrTaskNotFound
	}

	patch, err := buildPatch(req)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Update(ctx, req.TaskID, req.OwnerID, patch, s.now().UTC())
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidate(ctx, req.OwnerID)
	s.logger.Info("Task updated", "taskID", t.ID, "ownerID", req.OwnerID)
	return t, nil
}

// Delete permanently removes a task owned by the caller.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if ownerID == "" {
		return ErrNoCaller
	}
	if taskID == "" {
		return ErrTaskNotFound
	}

	if err := s.repo.Delete(ctx, taskID, ownerID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidate(ctx, ownerID)
	s.logger.Info("Task deleted", "taskID", taskID, "ownerID", ownerID)
	return nil
}

// Stats counts the caller's tasks per status.
func (s *TaskService) Stats(ctx context.Context, ownerID string) (*domain.Stats, error) {
	if ownerID == "" {
		return nil, ErrNoCaller
	}

	stats, err := s.repo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	return &stats, nil
}

// invalidate runs after every successful write, before it returns. It
// detaches any in-flight list query so later reads start a fresh one, bumps
// the owner's generation and drops the cached list. Forget must come first:
// a reader that sees the new generation must not join a pre-write query.
func (s *TaskService) invalidate(ctx context.Context, ownerID string) {
	s.sfGroup.Forget(ownerID)

	s.mu.Lock()
	s.generations[ownerID]++
	s.mu.Unlock()

	s.dropCached(ctx, ownerID)
}

func (s *TaskService) generation(ownerID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[ownerID]
}

func (s *TaskService) dropCached(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn("Task list cache invalidation failed", "ownerID", ownerID, "error", err)
	}
}

// buildPatch validates the allow-listed fields of req.
func buildPatch(req UpdateTaskRequest) (domain.Patch, error) {
	var patch domain.Patch

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return patch, ErrTitleRequired
		}
		patch.Title = req.Title
	}
	if req.Description != nil {
		patch.Description = req.Description
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.Valid() {
			return patch, ErrInvalidStatus
		}
		patch.Status = &status
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDueDate = true
		} else {
			d, err := domain.ParseDueDate(*req.DueDate)
			if err != nil {
				return patch, ErrInvalidDueDate
			}
			patch.DueDate = &d
		}
	}

	return patch, nil
}
