// Package task provides owner-scoped task management as a mono module.
package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Parasuram76/Task-Management-System/database"
	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	domain "github.com/Parasuram76/Task-Management-System/domain/task"
	"github.com/Parasuram76/Task-Management-System/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// TaskModule provides task services.
type TaskModule struct {
	db      *database.DB
	plugin  *cache.PluginModule
	cache   *ListCache
	service *TaskService
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)
var _ mono.UsePluginModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule. List caching is enabled when a "cache"
// plugin is registered.
func NewModule(db *database.DB, logger types.Logger) *TaskModule {
	return &TaskModule{
		db:     db,
		logger: logger,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// SetPlugin receives the cache plugin from the framework.
// This is called before Start() when the module implements UsePluginModule.
func (m *TaskModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "cache" {
		return
	}
	p, ok := plugin.(*cache.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for cache",
			"alias", alias,
			"expected", "*cache.PluginModule")
		return
	}
	m.plugin = p
	m.logger.Info("Received cache plugin", "alias", alias)
}

// Start wires the repository and service.
func (m *TaskModule) Start(_ context.Context) error {
	if m.cache == nil && m.plugin != nil {
		store := m.plugin.Port()
		if store == nil {
			return fmt.Errorf("cache plugin not started")
		}
		m.cache = NewListCache(store, DefaultCachePrefix, m.plugin.TTL())
	}

	repo, err := NewRepository(m.db)
	if err != nil {
		return fmt.Errorf("failed to create task repository: %w", err)
	}
	m.service = NewTaskService(repo, m.cache, m.logger)

	m.logger.Info("Task module started",
		"driver", m.db.Driver(),
		"cache", m.cache != nil)
	return nil
}

// Stop shuts down the module. The database is owned by main and the Redis
// connection by the cache plugin.
func (m *TaskModule) Stop(_ context.Context) error {
	m.logger.Info("Task module stopped")
	return nil
}

// Health pings the task store and, when enabled, the list cache.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil || m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "module not initialized",
		}
	}

	if err := m.db.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"driver":   m.db.Driver(),
		"database": m.db.Target(),
		"cache":    "disabled",
	}
	if m.cache != nil {
		details["cache"] = "ok"
		if err := m.cache.Ping(ctx); err != nil {
			// A cache outage does not make the module unhealthy.
			details["cache"] = err.Error()
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreateTask, json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreateTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTasks, json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTasks, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateTask, json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeleteTask, json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeleteTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceTaskStats, json.Unmarshal, json.Marshal, m.handleStats,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceTaskStats, err)
	}

	m.logger.Info("Registered task services",
		"services", []string{ServiceCreateTask, ServiceListTasks, ServiceUpdateTask, ServiceDeleteTask, ServiceTaskStats})
	return nil
}

func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Create(ctx, req)
	if err != nil {
		m.logFailure(ServiceCreateTask, err)
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, req.OwnerID)
	if err != nil {
		m.logFailure(ServiceListTasks, err)
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks}, nil
}

func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Update(ctx, req)
	if err != nil {
		m.logFailure(ServiceUpdateTask, err)
		return domain.Task{}, err
	}
	return *t, nil
}

func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.OwnerID, req.TaskID); err != nil {
		m.logFailure(ServiceDeleteTask, err)
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

func (m *TaskModule) handleStats(ctx context.Context, req TaskStatsRequest, _ *mono.Msg) (domain.Stats, error) {
	stats, err := m.service.Stats(ctx, req.OwnerID)
	if err != nil {
		m.logFailure(ServiceTaskStats, err)
		return domain.Stats{}, err
	}
	return *stats, nil
}

func (m *TaskModule) logFailure(op string, err error) {
	if apperr.KindOf(err) != apperr.KindInternal {
		m.logger.Debug("Task request rejected", "operation", op, "reason", err.Error())
		return
	}
	m.logger.Error("Task request failed", "operation", op, "error", err)
}
