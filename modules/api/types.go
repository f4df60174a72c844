package api

import (
	"time"

	"github.com/Parasuram76/Task-Management-System/domain/admin"
	domain "github.com/Parasuram76/Task-Management-System/domain/task"
)

// RegisterRequest represents an administrator registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// UpdateTaskRequest holds the fields a client may change. Anything else in
// the body (owner, id, timestamps) is ignored.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}

// AdminResponse is the public view of an administrator.
type AdminResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newAdminResponse(a *admin.Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AuthResponse is returned by register, login and check-auth.
type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    AdminResponse `json:"user"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Task    domain.Task `json:"task"`
}

// TaskListResponse wraps the caller's tasks.
type TaskListResponse struct {
	Success bool          `json:"success"`
	Tasks   []domain.Task `json:"tasks"`
}

// StatsResponse wraps the caller's per-status counts.
type StatsResponse struct {
	Success bool         `json:"success"`
	Stats   domain.Stats `json:"stats"`
}

// MessageResponse is a bare acknowledgment.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
