package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/Parasuram76/Task-Management-System/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names registered by the task module.
const (
	ServiceCreateTask = "create-task"
	ServiceListTasks  = "list-tasks"
	ServiceUpdateTask = "update-task"
	ServiceDeleteTask = "delete-task"
	ServiceTaskStats  = "task-stats"
)

// TaskPort defines the task operations other modules depend on.
type TaskPort interface {
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	Stats(ctx context.Context, ownerID string) (*domain.Stats, error)
}

// Compile-time interface checks.
var _ TaskPort = (*TaskAdapter)(nil)
var _ TaskPort = (*TaskService)(nil)

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{container: container}
}

// Create creates a task.
func (a *TaskAdapter) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	var resp domain.Task

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreateTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-task request failed: %w", err)
	}
	return &resp, nil
}

// List lists the owner's tasks.
func (a *TaskAdapter) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	req := ListTasksRequest{OwnerID: ownerID}
	var resp ListTasksResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTasks,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks request failed: %w", err)
	}

	if resp.Tasks == nil {
		resp.Tasks = []domain.Task{}
	}
	return resp.Tasks, nil
}

// Update updates an owned task.
func (a *TaskAdapter) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	var resp domain.Task

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdateTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("update-task request failed: %w", err)
	}
	return &resp, nil
}

// Delete deletes an owned task.
func (a *TaskAdapter) Delete(ctx context.Context, ownerID, taskID string) error {
	req := DeleteTaskRequest{OwnerID: ownerID, TaskID: taskID}
	var resp DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDeleteTask,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("delete-task request failed: %w", err)
	}
	return nil
}

// Stats counts the owner's tasks per status.
func (a *TaskAdapter) Stats(ctx context.Context, ownerID string) (*domain.Stats, error) {
	req := TaskStatsRequest{OwnerID: ownerID}
	var resp domain.Stats

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceTaskStats,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("task-stats request failed: %w", err)
	}
	return &resp, nil
}
