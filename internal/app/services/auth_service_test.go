package services

import (
	"context"
	"testing"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, fakeTokens{}, zerolog.Nop())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "ana@example.com", Password: "s3cretpass", FullName: " Ana Ruiz ", CollegeName: "City College",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz", reg.User.FullName)
	assert.Equal(t, "Bearer", reg.Token.TokenType)
	assert.NotEqual(t, "s3cretpass", users.byEmail["ana@example.com"].PasswordHash)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	me, err := svc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "City College", me.CollegeName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUsers(), fakeTokens{}, zerolog.Nop())
	req := &dto.RegisterRequest{Email: "a@b.co", Password: "password1", FullName: "A"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginWrongPasswordOrUnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUsers(), fakeTokens{}, zerolog.Nop())
	ctx := context.Background()
	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.co", Password: "password1", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "a@b.co", Password: "wrong-one"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@b.co", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestEmailsAreCaseInsensitive(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, fakeTokens{}, zerolog.Nop())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: " Ana@Example.COM ", Password: "password1", FullName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", reg.User.Email)
	assert.Contains(t, users.byEmail, "ana@example.com")

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "ana@example.com", Password: "password1", FullName: "Ana Two"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Len(t, users.byEmail, 1)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "ANA@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}
