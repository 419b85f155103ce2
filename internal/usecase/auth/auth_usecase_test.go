package auth

import (
	"context"
	"testing"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestUseCase() *AuthUseCase {
	return NewAuthUseCase(memory.NewUserRepository(), memory.NewTokenDenylist(), testSecret, 7*24*time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	reg, err := uc.Register(ctx, &RegisterRequest{Email: "Ana@Example.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.True(t, reg.IsNewUser)
	assert.Equal(t, "ana@example.com", reg.User.Email)
	assert.NotEqual(t, "segredo123", reg.User.PasswordHash)

	userID, err := uc.VerifyToken(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)

	login, err := uc.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.False(t, login.IsNewUser)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = uc.Register(ctx, &RegisterRequest{Email: "ana@example.com", Password: "outra-senha"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()
	_, err := uc.Register(ctx, &RegisterRequest{Email: "ana@example.com", Password: "segredo123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, &LoginRequest{Email: "ninguem@example.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()
	reg, err := uc.Register(ctx, &RegisterRequest{Email: "ana@example.com", Password: "segredo123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, reg.Token))

	_, err = uc.VerifyToken(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestVerifyTokenRejectsExpiredAndForeign(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()
	reg, err := uc.Register(ctx, &RegisterRequest{Email: "ana@example.com", Password: "segredo123"})
	require.NoError(t, err)

	uc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	_, err = uc.VerifyToken(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	other := NewAuthUseCase(memory.NewUserRepository(), memory.NewTokenDenylist(), "ffffffffffffffffffffffffffffffff", time.Hour)
	_, err = other.VerifyToken(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.VerifyToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
