package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/findyourpeers/peers/internal/db"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/dberrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FavoriteRepository stores per-user follow markers.
type FavoriteRepository struct {
	db db.Querier
	tx db.TxStarter
}

// NewFavoriteRepository creates a new FavoriteRepository. tx is used by
// Toggle and may be nil when Toggle is never called.
func NewFavoriteRepository(q db.Querier, tx db.TxStarter) *FavoriteRepository {
	return &FavoriteRepository{db: q, tx: tx}
}

// IsFavorited reports whether the (user, group) pair exists.
func (r *FavoriteRepository) IsFavorited(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	return isFavorited(ctx, r.db, userID, groupID)
}

// Add creates the pair. Adding an existing pair is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, groupID uuid.UUID) error {
	return addFavorite(ctx, r.db, userID, groupID)
}

// Remove deletes the pair. Removing a missing pair is a no-op.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, groupID uuid.UUID) error {
	return removeFavorite(ctx, r.db, userID, groupID)
}

// Toggle flips the pair inside one transaction and returns the new state.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, groupID uuid.UUID) (bool, error) {
	if r.tx == nil {
		return false, fmt.Errorf("favorite repository has no transaction starter")
	}

	var favorited bool
	err := db.RunInTx(ctx, r.tx, func(ctx context.Context, tx pgx.Tx) error {
		// Lock the group row so concurrent toggles for the same pair serialize.
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM groups WHERE id = $1 FOR UPDATE`, groupID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrGroupNotFound
			}
			return fmt.Errorf("error locking group: %w", err)
		}

		current, err := isFavorited(ctx, tx, userID, groupID)
		if err != nil {
			return err
		}
		if current {
			err = removeFavorite(ctx, tx, userID, groupID)
		} else {
			err = addFavorite(ctx, tx, userID, groupID)
		}
		if err != nil {
			return err
		}
		favorited = !current
		return nil
	})
	return favorited, err
}

func isFavorited(ctx context.Context, q db.Querier, userID, groupID uuid.UUID) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM group_favorites WHERE user_id = $1 AND group_id = $2)`,
		userID, groupID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return exists, nil
}

func addFavorite(ctx context.Context, q db.Querier, userID, groupID uuid.UUID) error {
	sql, args, err := psql.Insert("group_favorites").
		Columns("user_id", "group_id", "created_at").
		Values(userID, groupID, time.Now().UTC()).
		Suffix("ON CONFLICT (user_id, group_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrGroupNotFound
		}
		return fmt.Errorf("error adding favorite: %w", err)
	}
	return nil
}

func removeFavorite(ctx context.Context, q db.Querier, userID, groupID uuid.UUID) error {
	sql, args, err := psql.Delete("group_favorites").
		Where(squirrel.Eq{"user_id": userID, "group_id": groupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error removing favorite: %w", err)
	}
	return nil
}
