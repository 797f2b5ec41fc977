package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	existing  map[string]bool
	created   []*models.User
	createErr error
	existsErr error
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	return f.existing[email], f.existsErr
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, u)
	return nil
}

func TestCreateDefaultDataCreatesDemoUser(t *testing.T) {
	users := &fakeUsers{}

	require.NoError(t, CreateDefaultData(context.Background(), users, zerolog.Nop()))

	require.Len(t, users.created, 1)
	u := users.created[0]
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, DemoEmail, u.Email)
	assert.Equal(t, DemoFullName, u.FullName)
	assert.Equal(t, DemoCollegeName, u.CollegeName)
	assert.False(t, u.CreatedAt.IsZero())
	assert.True(t, auth.CheckPassword(u.PasswordHash, DemoPassword))
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	users := &fakeUsers{existing: map[string]bool{DemoEmail: true}}

	require.NoError(t, CreateDefaultData(context.Background(), users, zerolog.Nop()))
	assert.Empty(t, users.created)
}

func TestCreateDefaultDataToleratesConcurrentSeed(t *testing.T) {
	users := &fakeUsers{createErr: apperrors.ErrEmailAlreadyExists}

	assert.NoError(t, CreateDefaultData(context.Background(), users, zerolog.Nop()))
}

func TestCreateDefaultDataSurfacesStoreErrors(t *testing.T) {
	users := &fakeUsers{existsErr: errors.New("db down")}

	err := CreateDefaultData(context.Background(), users, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
