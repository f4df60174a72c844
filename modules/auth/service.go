package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Parasuram76/Task-Management-System/domain/admin"
	"github.com/google/uuid"
)

// Session is the result of a successful register or login. Admin never
// carries the password hash.
type Session struct {
	Admin     *admin.Admin
	Token     string
	ExpiresAt time.Time
}

// AuthService handles authentication business logic.
type AuthService struct {
	repo   AdminRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	now    func() time.Time

	// dummyHash is compared against when the email is unknown so that both
	// login failure paths cost one bcrypt comparison.
	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo AdminRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
		now:    time.Now,
	}
}

// Register creates an administrator account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	a := &admin.Admin{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index still guards against a concurrent registration that
	// passed the existence check.
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create administrator: %w", err)
	}

	return s.openSession(a)
}

// Login authenticates an administrator and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	a, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			s.hasher.Verify(password, s.unknownUserHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find administrator: %w", err)
	}

	if !s.hasher.Verify(password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(a)
}

// ValidateToken verifies a session token and returns its identity.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*admin.Claims, error) {
	return s.jwt.Validate(token)
}

// GetAdmin resolves an identity to its sanitized administrator record.
func (s *AuthService) GetAdmin(ctx context.Context, adminID string) (*admin.Admin, error) {
	a, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find administrator: %w", err)
	}
	return sanitize(a), nil
}

func (s *AuthService) openSession(a *admin.Admin) (*Session, error) {
	token, expiresAt, err := s.jwt.Generate(a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return &Session{
		Admin:     sanitize(a),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.New().String())
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

// sanitize returns a copy of a without the password hash.
func sanitize(a *admin.Admin) *admin.Admin {
	clean := *a
	clean.PasswordHash = ""
	return &clean
}
