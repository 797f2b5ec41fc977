package services

import (
	"context"
	"io"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/google/uuid"
)

// Services defined in this package:
// - AuthService: registration and login
// - GroupService: group creation, the directory and followed groups
// - FavoriteService: per-user follow markers
// - PostService: group comments and their live feed

// UserStore is the persistence used by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// GroupStore is the persistence for groups.
type GroupStore interface {
	Create(ctx context.Context, g *models.Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, category models.Category, offset, limit uint64) ([]models.Group, int64, error)
	ListFavoritedBy(ctx context.Context, userID uuid.UUID) ([]models.Group, error)
}

// PostStore is the persistence for posts.
type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]models.Post, error)
}

// FavoriteStore is the persistence for favorites.
type FavoriteStore interface {
	IsFavorited(ctx context.Context, userID, groupID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, groupID uuid.UUID) error
	Remove(ctx context.Context, userID, groupID uuid.UUID) error
	Toggle(ctx context.Context, userID, groupID uuid.UUID) (bool, error)
}

// BlobStore receives group photos.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// Publisher pushes events to live subscribers of a group.
type Publisher interface {
	Publish(groupID uuid.UUID, eventType string, payload interface{})
}
