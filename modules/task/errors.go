package task

import "github.com/Parasuram76/Task-Management-System/domain/apperr"

var (
	// ErrTitleRequired is returned when a task has no title.
	ErrTitleRequired = apperr.Validation("Title is required")
	// ErrInvalidStatus is returned for a status outside the enumeration.
	ErrInvalidStatus = apperr.Validation("Status must be one of pending, in-progress, completed")
	// ErrInvalidDueDate is returned when the due date cannot be parsed.
	ErrInvalidDueDate = apperr.Validation("Due date must be a date in YYYY-MM-DD format")
	// ErrTaskNotFound is returned when no task with the id is owned by the caller.
	ErrTaskNotFound = apperr.NotFound("Task not found")
	// ErrNoCaller is returned when an operation runs without an identity.
	ErrNoCaller = apperr.Unauthorized("Not authenticated")
)
