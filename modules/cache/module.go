// Package cache provides the Redis connection behind the task-list cache as a
// mono plugin module.
package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/storage"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/storage/redis/v3"
)

// dialTimeout bounds the reachability check made before connecting.
const dialTimeout = 2 * time.Second

// PluginModule owns the Redis storage. Plugins start before regular modules
// and stop after them.
type PluginModule struct {
	container types.ServiceContainer
	storage   storage.Storage
	redisAddr string
	ttl       time.Duration
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a cache plugin for the Redis server at redisAddr
// ("host:port"). ttl is the lifetime consumers should give their entries.
func NewPluginModule(redisAddr string, ttl time.Duration, logger types.Logger) *PluginModule {
	return &PluginModule{
		redisAddr: redisAddr,
		ttl:       ttl,
		logger:    logger,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "cache"
}

// Start connects to Redis. The storage driver panics when the server cannot be
// reached, so reachability is checked first and reported as an error.
func (m *PluginModule) Start(_ context.Context) error {
	conn, err := net.DialTimeout("tcp", m.redisAddr, dialTimeout)
	if err != nil {
		return fmt.Errorf("redis not reachable at %s: %w", m.redisAddr, err)
	}
	_ = conn.Close()

	host, port := parseRedisAddr(m.redisAddr)
	m.storage = redis.New(redis.Config{
		Host:     host,
		Port:     port,
		PoolSize: 50,
	})

	m.logger.Info("Cache plugin started",
		"redis_addr", m.redisAddr,
		"ttl", m.ttl.String())
	return nil
}

// Stop closes the Redis connection.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.storage != nil {
		if err := m.storage.Close(); err != nil {
			return fmt.Errorf("failed to close redis connection: %w", err)
		}
		m.storage = nil
	}
	m.logger.Info("Cache plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Port returns the Redis storage, or nil before Start.
func (m *PluginModule) Port() storage.Storage {
	return m.storage
}

// TTL returns the configured entry lifetime.
func (m *PluginModule) TTL() time.Duration {
	return m.ttl
}

// Health reads a key that never exists to check the connection.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.storage == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "storage not initialized",
		}
	}

	if _, err := m.storage.GetWithContext(ctx, "__health_check__"); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("health check failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis_addr": m.redisAddr,
			"ttl":        m.ttl.String(),
		},
	}
}

// parseRedisAddr parses "host:port" into host and port.
// Returns defaults (127.0.0.1:6379) for invalid or missing values.
func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, defaultPort
	}
	return host, port
}
