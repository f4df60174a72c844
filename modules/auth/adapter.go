package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Parasuram76/Task-Management-System/domain/admin"
	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Service names registered by the auth module.
const (
	ServiceRegister      = "register"
	ServiceLogin         = "login"
	ServiceValidateToken = "validate-token"
	ServiceGetAdmin      = "get-admin"
)

// AuthPort defines the authentication operations other modules depend on.
type AuthPort interface {
	Register(ctx context.Context, name, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	ValidateToken(ctx context.Context, token string) (*admin.Claims, error)
	GetAdmin(ctx context.Context, adminID string) (*admin.Admin, error)
}

// Compile-time interface checks.
var _ AuthPort = (*AuthAdapter)(nil)
var _ AuthPort = (*AuthService)(nil)

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates an administrator and returns its session.
func (a *AuthAdapter) Register(ctx context.Context, name, email, password string) (*Session, error) {
	req := RegisterRequest{Name: name, Email: email, Password: password}
	var resp SessionResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceRegister,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return resp.toSession(), nil
}

// Login authenticates an administrator and returns its session.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*Session, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp SessionResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceLogin,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return resp.toSession(), nil
}

// ValidateToken validates a session token and returns its identity.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*admin.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceValidateToken,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, apperr.Unauthorized(resp.Error)
	}

	return &admin.Claims{
		AdminID:   resp.AdminID,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// GetAdmin retrieves an administrator by ID.
func (a *AuthAdapter) GetAdmin(ctx context.Context, adminID string) (*admin.Admin, error) {
	req := GetAdminRequest{AdminID: adminID}
	var resp AdminInfo

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetAdmin,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-admin request failed: %w", err)
	}
	return resp.toAdmin(), nil
}
