package auth

import (
	"time"

	"github.com/Parasuram76/Task-Management-System/domain/admin"
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

// AdminInfo is the sanitized administrator carried over the service bus.
type AdminInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionResponse is returned by the register and login services.
type SessionResponse struct {
	Admin     AdminInfo `json:"admin"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateTokenRequest represents a token validation request.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse represents a token validation response.
type ValidateTokenResponse struct {
	Valid     bool      `json:"valid"`
	AdminID   string    `json:"admin_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// GetAdminRequest represents a get administrator request.
type GetAdminRequest struct {
	AdminID string `json:"admin_id"`
}

func newAdminInfo(a *admin.Admin) AdminInfo {
	return AdminInfo{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (i AdminInfo) toAdmin() *admin.Admin {
	return &admin.Admin{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func newSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		Admin:     newAdminInfo(s.Admin),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

func (r SessionResponse) toSession() *Session {
	return &Session{
		Admin:     r.Admin.toAdmin(),
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
	}
}
