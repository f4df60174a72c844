package api

import (
	"context"

	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	"github.com/Parasuram76/Task-Management-System/modules/auth"
	"github.com/Parasuram76/Task-Management-System/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth    auth.AuthPort
	tasks   task.TaskPort
	store   Pinger
	cookies CookieConfig
	logger  types.Logger
}

// NewHandlers creates a new Handlers instance. store may be nil.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort, store Pinger, cookies CookieConfig, logger types.Logger) *Handlers {
	return &Handlers{
		auth:    authPort,
		tasks:   taskPort,
		store:   store,
		cookies: cookies,
		logger:  logger,
	}
}

// Register handles administrator registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}

	session, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return h.writeError(c, err)
	}

	c.Cookie(h.cookies.session(session.Token, session.ExpiresAt))
	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Success: true,
		Message: "Administrator created successfully",
		User:    newAdminResponse(session.Admin),
	})
}

// Login handles administrator login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.writeError(c, err)
	}

	c.Cookie(h.cookies.session(session.Token, session.ExpiresAt))
	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    newAdminResponse(session.Admin),
	})
}

// Logout clears the session cookie. It succeeds with or without a session.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	c.Cookie(h.cookies.cleared())
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Success: true,
		Message: "Logout successful",
	})
}

// CheckAuth returns the administrator behind the session.
func (h *Handlers) CheckAuth(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return h.writeError(c, task.ErrNoCaller)
	}

	a, err := h.auth.GetAdmin(c.UserContext(), claims.AdminID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Success: true,
		User:    newAdminResponse(a),
	})
}

// CreateTask creates a task owned by the caller.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return h.writeError(c, task.ErrNoCaller)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badBody(c)
	}

	t, err := h.tasks.Create(c.UserContext(), task.CreateTaskRequest{
		OwnerID:     claims.AdminID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskResponse{
		Success: true,
		Message: "Task created successfully",
		Task:    *t,
	})
}

// ListTasks returns the caller's tasks, newest first.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return h.writeError(c, task.ErrNoCaller)
	}

	tasks, err := h.tasks.List(c.UserContext(), claims.AdminID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskListResponse{
		Success: true,
		Tasks:   tasks,
	})
}

// UpdateTask applies the allow-listed fields to a task owned by the caller.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return h.writeError(c, task.ErrNoCaller)
	}

	var req UpdateTaskRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.badBody(c)
		}
	}

	t, err := h.tasks.Update(c.UserContext(), task.UpdateTaskRequest{
		OwnerID:     claims.AdminID,
		TaskID:      c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskResponse{
		Success: true,
		Message: "Task updated successfully",
		Task:    *t,
	})
}

// DeleteTask removes a task owned by the caller.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return h.writeError(c, task.ErrNoCaller)
	}

	if err := h.tasks.Delete(c.UserContext(), claims.AdminID, c.Params("id")); err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

// TaskStats returns per-status counts of the caller's tasks.
func (h *Handlers) TaskStats(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return h.writeError(c, task.ErrNoCaller)
	}

	stats, err := h.tasks.Stats(c.UserContext(), claims.AdminID)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(StatsResponse{
		Success: true,
		Stats:   *stats,
	})
}

// Health reports API liveness and, when configured, store reachability.
func (h *Handlers) Health(c *fiber.Ctx) error {
	if h.store != nil {
		if err := h.store.Ping(c.UserContext()); err != nil {
			h.logger.Warn("Health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"store":  "unreachable",
			})
		}
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"module": "api",
	})
}

func (h *Handlers) badBody(c *fiber.Ctx) error {
	return h.writeError(c, apperr.Validation("Invalid request body"))
}

// writeError renders err as the JSON error envelope. Internal causes are
// logged and replaced with a generic message.
func (h *Handlers) writeError(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		h.logger.Error("Request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err)
	}

	return c.Status(apperr.HTTPStatus(kind)).JSON(ErrorResponse{
		Error:   string(kind),
		Message: apperr.MessageOf(err),
	})
}
