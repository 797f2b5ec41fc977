package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/db"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/dberrors"
	"github.com/google/uuid"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db db.Querier
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(q db.Querier) *PostRepository {
	return &PostRepository{db: q}
}

// Create appends a post to its group.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	sql, args, err := psql.Insert("posts").
		Columns("id", "group_id", "user_id", "user_name", "time_posted", "post_text").
		Values(p.ID, p.GroupID, p.UserID, p.UserName, p.TimePosted, p.PostText).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrGroupNotFound
		}
		return fmt.Errorf("error inserting post: %w", err)
	}
	return nil
}

// ListByGroup returns all posts of a group, oldest first.
func (r *PostRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Post, error) {
	sql, args, err := psql.Select("id", "group_id", "user_id", "user_name", "time_posted", "post_text").
		From("posts").
		Where(squirrel.Eq{"group_id": groupID}).
		OrderBy("time_posted ASC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.GroupID, &p.UserID, &p.UserName, &p.TimePosted, &p.PostText); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return posts, nil
}
