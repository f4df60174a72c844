package auth

import (
	"errors"
	"time"

	"github.com/Parasuram76/Task-Management-System/domain/admin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds session token configuration.
type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// DefaultJWTConfig returns a development configuration with a 24 hour session.
// The secret key must be replaced outside development.
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey: "dev-secret-change-in-production",
		TTL:       24 * time.Hour,
		Issuer:    "task-management-system",
	}
}

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies session tokens.
type JWTManager struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTManager creates a new JWTManager with the given configuration.
func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{
		config: config,
		now:    time.Now,
	}
}

// Generate issues a signed token for adminID and returns it with its expiry.
func (m *JWTManager) Generate(adminID string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.TTL)
	claims := SessionClaims{
		UserID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   adminID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	// NumericDate truncates to seconds.
	return signed, claims.ExpiresAt.Time, nil
}

// Validate verifies signature, issuer and expiry, and returns the identity.
func (m *JWTManager) Validate(tokenString string) (*admin.Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(m.config.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &admin.Claims{
		AdminID:   claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
