package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Parasuram76/Task-Management-System/database"
	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Config configures the auth module.
type Config struct {
	JWT        JWTConfig
	BcryptCost int
}

// AuthModule provides authentication services.
type AuthModule struct {
	db      *database.DB
	config  Config
	service *AuthService
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule backed by db.
func NewModule(db *database.DB, config Config, logger types.Logger) *AuthModule {
	return &AuthModule{
		db:     db,
		config: config,
		logger: logger,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start wires the repository, hasher and token manager.
func (m *AuthModule) Start(_ context.Context) error {
	repo, err := NewAdminRepository(m.db)
	if err != nil {
		return fmt.Errorf("failed to create admin repository: %w", err)
	}

	m.service = NewAuthService(repo, NewPasswordHasher(m.config.BcryptCost), NewJWTManager(m.config.JWT))

	m.logger.Info("Auth module started",
		"driver", m.db.Driver(),
		"sessionTTL", m.config.JWT.TTL.String())
	return nil
}

// Stop shuts down the module. The database handle is owned by main.
func (m *AuthModule) Stop(_ context.Context) error {
	m.logger.Info("Auth module stopped")
	return nil
}

// Health pings the credential store.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
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

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver":   m.db.Driver(),
			"database": m.db.Target(),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceRegister,
		json.Unmarshal,
		json.Marshal,
		m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceRegister, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceLogin,
		json.Unmarshal,
		json.Marshal,
		m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceLogin, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceValidateToken,
		json.Unmarshal,
		json.Marshal,
		m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceValidateToken, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceGetAdmin,
		json.Unmarshal,
		json.Marshal,
		m.handleGetAdmin,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetAdmin, err)
	}

	m.logger.Info("Registered auth services",
		"services", []string{ServiceRegister, ServiceLogin, ServiceValidateToken, ServiceGetAdmin})
	return nil
}

func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (SessionResponse, error) {
	session, err := m.service.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		m.logFailure(ServiceRegister, err)
		return SessionResponse{}, err
	}

	m.logger.Info("Administrator registered", "adminID", session.Admin.ID)
	return newSessionResponse(session), nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (SessionResponse, error) {
	session, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		m.logFailure(ServiceLogin, err)
		return SessionResponse{}, err
	}

	m.logger.Info("Administrator logged in", "adminID", session.Admin.ID)
	return newSessionResponse(session), nil
}

// handleValidateToken reports invalid tokens in the response body rather
// than as a service error.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := ErrInvalidToken.Message
		if errors.Is(err, ErrExpiredToken) {
			errMsg = ErrExpiredToken.Message
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil
	}

	return ValidateTokenResponse{
		Valid:     true,
		AdminID:   claims.AdminID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (m *AuthModule) handleGetAdmin(ctx context.Context, req GetAdminRequest, _ *mono.Msg) (AdminInfo, error) {
	a, err := m.service.GetAdmin(ctx, req.AdminID)
	if err != nil {
		m.logFailure(ServiceGetAdmin, err)
		return AdminInfo{}, err
	}
	return newAdminInfo(a), nil
}

// logFailure logs expected rejections at debug level and everything else as errors.
func (m *AuthModule) logFailure(op string, err error) {
	if apperr.KindOf(err) != apperr.KindInternal {
		m.logger.Debug("Auth request rejected", "operation", op, "reason", err.Error())
		return
	}
	m.logger.Error("Auth request failed", "operation", op, "error", err)
}
