package auth

import (
	"context"
	"testing"

	"github.com/Parasuram76/Task-Management-System/domain/apperr"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func startTestModule(t *testing.T) *AuthModule {
	t.Helper()

	m := NewModule(setupTestDB(t), Config{JWT: testJWTConfig(), BcryptCost: bcrypt.MinCost}, &mockLogger{})
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() { _ = m.Stop(context.Background()) })
	return m
}

func TestAuthModule_Name(t *testing.T) {
	assert.Equal(t, "auth", NewModule(nil, Config{}, &mockLogger{}).Name())
}

func TestAuthModule_StartWithoutDatabase(t *testing.T) {
	m := NewModule(nil, Config{JWT: testJWTConfig()}, &mockLogger{})
	assert.Error(t, m.Start(context.Background()))
}

func TestAuthModule_Health(t *testing.T) {
	m := NewModule(nil, Config{}, &mockLogger{})
	assert.False(t, m.Health(context.Background()).Healthy)

	m = startTestModule(t)
	status := m.Health(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, "sqlite", status.Details["driver"])
}

func TestAuthModule_Handlers(t *testing.T) {
	m := startTestModule(t)
	ctx := context.Background()

	registered, err := m.handleRegister(ctx, RegisterRequest{Name: "Alice", Email: "alice@x.io", Password: "pw1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", registered.Admin.Name)
	assert.NotEmpty(t, registered.Token)

	_, err = m.handleRegister(ctx, RegisterRequest{Name: "Alice", Email: "alice@x.io", Password: "pw1"}, nil)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	loggedIn, err := m.handleLogin(ctx, LoginRequest{Email: "alice@x.io", Password: "pw1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, registered.Admin.ID, loggedIn.Admin.ID)

	_, err = m.handleLogin(ctx, LoginRequest{Email: "alice@x.io", Password: "wrong"}, nil)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))

	valid, err := m.handleValidateToken(ctx, ValidateTokenRequest{Token: loggedIn.Token}, nil)
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, registered.Admin.ID, valid.AdminID)

	invalid, err := m.handleValidateToken(ctx, ValidateTokenRequest{Token: "garbage"}, nil)
	require.NoError(t, err, "invalid tokens are reported in the response")
	assert.False(t, invalid.Valid)
	assert.Equal(t, ErrInvalidToken.Message, invalid.Error)

	info, err := m.handleGetAdmin(ctx, GetAdminRequest{AdminID: registered.Admin.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.io", info.Email)

	_, err = m.handleGetAdmin(ctx, GetAdminRequest{AdminID: "missing"}, nil)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
