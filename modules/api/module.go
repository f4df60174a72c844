// Package api serves the HTTP interface over the auth and task modules.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	"github.com/Parasuram76/Task-Management-System/modules/auth"
	"github.com/Parasuram76/Task-Management-System/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config holds the HTTP server settings.
type Config struct {
	Port       int
	CORSOrigin string
	Cookie     CookieConfig
}

// APIModule is the HTTP API module.
type APIModule struct {
	config      Config
	store       Pinger
	logger      types.Logger
	app         *fiber.App
	authAdapter auth.AuthPort
	taskAdapter task.TaskPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule. store backs the /health endpoint and may be nil.
func NewModule(config Config, store Pinger, logger types.Logger) *APIModule {
	return &APIModule{
		config: config,
		store:  store,
		logger: logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskAdapter = task.NewTaskAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskAdapter == nil {
		return fmt.Errorf("task dependency not set")
	}

	handlers := NewHandlers(m.authAdapter, m.taskAdapter, m.store, m.config.Cookie, m.logger)
	m.app = NewApp(handlers, m.authAdapter, m.config.CORSOrigin)

	addr := fmt.Sprintf(":%d", m.config.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.config.Port,
		},
	}
}

// NewApp builds the Fiber application with middleware and routes.
func NewApp(handlers *Handlers, authPort auth.AuthPort, corsOrigin string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigin,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", handlers.Health)

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/admin-register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/admin-login", handlers.Login)
	authRoutes.Post("/logout", handlers.Logout)
	authRoutes.Get("/check-auth", AuthMiddleware(authPort), handlers.CheckAuth)

	taskRoutes := app.Group("/tasks", AuthMiddleware(authPort))
	taskRoutes.Post("/create", handlers.CreateTask)
	taskRoutes.Get("/get", handlers.ListTasks)
	taskRoutes.Put("/update/:id", handlers.UpdateTask)
	taskRoutes.Delete("/delete/:id", handlers.DeleteTask)
	taskRoutes.Get("/stats", handlers.TaskStats)

	return app
}

// customErrorHandler renders Fiber errors and recovered panics with the
// standard error envelope.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	kind := apperr.KindInternal
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
		switch code {
		case fiber.StatusNotFound:
			kind = apperr.KindNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			kind = apperr.KindValidation
		}
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   string(kind),
		Message: message,
	})
}
