package task

import (
	domain "github.com/Parasuram76/Task-Management-System/domain/task"
)

// CreateTaskRequest creates a task owned by OwnerID. Status and DueDate are
// optional.
type CreateTaskRequest struct {
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// ListTasksRequest lists the tasks owned by OwnerID.
type ListTasksRequest struct {
	OwnerID string `json:"owner_id"`
}

// ListTasksResponse carries an owner's tasks, newest first.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// UpdateTaskRequest changes the provided fields of an owned task. Nil fields
// are left unchanged; an empty DueDate clears it.
type UpdateTaskRequest struct {
	OwnerID     string  `json:"owner_id"`
	TaskID      string  `json:"task_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// DeleteTaskRequest deletes an owned task.
type DeleteTaskRequest struct {
	OwnerID string `json:"owner_id"`
	TaskID  string `json:"task_id"`
}

// DeleteTaskResponse acknowledges a deletion.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// TaskStatsRequest counts the tasks owned by OwnerID.
type TaskStatsRequest struct {
	OwnerID string `json:"owner_id"`
}
