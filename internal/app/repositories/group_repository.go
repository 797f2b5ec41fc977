package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/db"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var groupColumns = []string{
	"g.id", "g.group_name", "g.topic", "g.description", "g.category",
	"g.college_name", "g.created_by", "g.creator_id", "g.date_created", "g.group_photo_url",
}

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db db.Querier
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(q db.Querier) *GroupRepository {
	return &GroupRepository{db: q}
}

// Create inserts a group record. The id and photo URL must already be set.
func (r *GroupRepository) Create(ctx context.Context, g *models.Group) error {
	sql, args, err := psql.Insert("groups").
		Columns("id", "group_name", "topic", "description", "category",
			"college_name", "created_by", "creator_id", "date_created", "group_photo_url").
		Values(g.ID, g.GroupName, g.Topic, g.Description, string(g.Category),
			g.CollegeName, g.CreatedBy, g.CreatorID, g.DateCreated, g.GroupPhotoURL).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	sql, args, err := psql.Select(groupColumns...).
		From("groups g").
		Where(squirrel.Eq{"g.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	g, err := scanGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return g, nil
}

// Exists reports whether a group with id exists.
func (r *GroupRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking group: %w", err)
	}
	return exists, nil
}

// List returns groups newest first, optionally restricted to one category,
// together with the total number of matching groups.
func (r *GroupRepository) List(ctx context.Context, category models.Category, offset, limit uint64) ([]models.Group, int64, error) {
	query := psql.Select(groupColumns...).From("groups g")
	count := psql.Select("COUNT(*)").From("groups g")
	if category != "" {
		query = query.Where(squirrel.Eq{"g.category": string(category)})
		count = count.Where(squirrel.Eq{"g.category": string(category)})
	}

	countSQL, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting groups: %w", err)
	}

	sql, args, err := query.
		OrderBy("g.date_created DESC", "g.id").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	groups, err := r.queryGroups(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// ListFavoritedBy returns every group userID has favorited, most recently
// favorited first.
func (r *GroupRepository) ListFavoritedBy(ctx context.Context, userID uuid.UUID) ([]models.Group, error) {
	sql, args, err := psql.Select(groupColumns...).
		From("groups g").
		Join("group_favorites f ON f.group_id = g.id").
		Where(squirrel.Eq{"f.user_id": userID}).
		OrderBy("f.created_at DESC", "g.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.queryGroups(ctx, sql, args...)
}

func (r *GroupRepository) queryGroups(ctx context.Context, sql string, args ...interface{}) ([]models.Group, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return groups, nil
}

func scanGroup(row pgx.Row) (*models.Group, error) {
	var g models.Group
	var category string
	err := row.Scan(
		&g.ID, &g.GroupName, &g.Topic, &g.Description, &category,
		&g.CollegeName, &g.CreatedBy, &g.CreatorID, &g.DateCreated, &g.GroupPhotoURL,
	)
	if err != nil {
		return nil, err
	}
	g.Category = models.Category(category)
	return &g, nil
}
