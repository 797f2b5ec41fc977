package controllers

import (
	"context"
	"io"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/google/uuid"
)

// AuthService is implemented by services.AuthService.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

// GroupService is implemented by services.GroupService.
type GroupService interface {
	CreateGroup(ctx context.Context, creator auth.Principal, req *dto.CreateGroupRequest, photo io.Reader) (*dto.GroupResponse, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, filter *dto.GroupFilterRequest) (*dto.GroupListResponse, error)
	ListFollowedGroups(ctx context.Context, userID uuid.UUID, category string) (*dto.FollowedGroupsResponse, error)
}

// FavoriteService is implemented by services.FavoriteService.
type FavoriteService interface {
	IsFavorited(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error)
	AddFavorite(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error)
	RemoveFavorite(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error)
	ToggleFavorite(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error)
}

// PostService is implemented by services.PostService.
type PostService interface {
	ListPosts(ctx context.Context, groupID uuid.UUID) (*dto.PostListResponse, error)
	CreatePost(ctx context.Context, author auth.Principal, groupID uuid.UUID, text string) (*dto.PostResponse, error)
}
