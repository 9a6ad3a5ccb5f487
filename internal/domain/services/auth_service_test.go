package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatmoney-service/internal/error/apperr"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	reg, err := env.auth.Register(env.ctx, "Alice", " Alice@Example.com ", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.NotEqual(t, "s3cret", reg.User.Password)

	login, err := env.auth.Login(env.ctx, "ALICE@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	me, err := env.auth.CurrentUser(env.ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.Name)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(env.ctx, "A", "a@example.com", "pw")
	require.NoError(t, err)

	_, err = env.auth.Register(env.ctx, "B", "A@EXAMPLE.COM", "pw")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(env.ctx, "", "a@example.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = env.auth.Register(env.ctx, "A", "a@example.com", strings.Repeat("x", 80))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.Register(env.ctx, "A", "a@example.com", "right")
	require.NoError(t, err)

	_, err = env.auth.Login(env.ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(env.ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
