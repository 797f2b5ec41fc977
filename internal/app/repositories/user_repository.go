package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/db"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const usersEmailConstraint = "users_email_key"

var userColumns = []string{"id", "email", "password_hash", "full_name", "college_name", "created_at"}

// UserRepository handles database operations for users
type UserRepository struct {
	db db.Querier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{db: q}
}

// Create inserts a user. Emails are stored lower-cased.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)

	sql, args, err := psql.Insert("users").
		Columns("id", "email", "password_hash", "full_name", "college_name", "created_at").
		Values(user.ID, user.Email, user.PasswordHash, user.FullName, user.CollegeName, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": models.NormalizeEmail(email)})
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(squirrel.Eq{"email": models.NormalizeEmail(email)}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var u models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CollegeName, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &u, nil
}
