package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Demo account created outside production so a fresh install can log in.
const (
	DemoEmail       = "antonio.flores@citycollege.edu"
	DemoPassword    = "findyourpeers"
	DemoFullName    = "Antonio Flores"
	DemoCollegeName = "City College"
)

// UserStore is the subset of the user repository the seeder needs.
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// CreateDefaultData creates the demo user if it does not exist yet.
func CreateDefaultData(ctx context.Context, users UserStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (demo user)...")

	exists, err := users.EmailExists(ctx, DemoEmail)
	if err != nil {
		return fmt.Errorf("checking demo user: %w", err)
	}
	if exists {
		lgr.Info().Msg("Demo user already exists, skipping creation")
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	demo := &models.User{
		ID:           uuid.New(),
		Email:        DemoEmail,
		PasswordHash: hash,
		FullName:     DemoFullName,
		CollegeName:  DemoCollegeName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(ctx, demo); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("creating demo user: %w", err)
	}

	lgr.Info().Str("userID", demo.ID.String()).Str("email", DemoEmail).Msg("Demo user created")
	return nil
}
