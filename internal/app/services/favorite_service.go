package services

import (
	"context"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FavoriteService manages the per-user follow flag of groups
type FavoriteService struct {
	favorites FavoriteStore
	groups    GroupStore
	logger    zerolog.Logger
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favorites FavoriteStore, groups GroupStore, logger zerolog.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, groups: groups, logger: logger}
}

// IsFavorited reports the caller's flag for a group.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}
	ok, err := s.favorites.IsFavorited(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return &dto.FavoriteStatusResponse{GroupID: groupID, Favorited: ok}, nil
}

// AddFavorite follows a group. Following twice is harmless.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.favorites.Add(ctx, userID, groupID); err != nil {
		s.logger.Error().Err(err).Str("groupID", groupID.String()).Msg("Add favorite failed")
		return nil, err
	}
	return &dto.FavoriteStatusResponse{GroupID: groupID, Favorited: true}, nil
}

// RemoveFavorite unfollows a group. Unfollowing twice is harmless.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	if err := s.requireGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.favorites.Remove(ctx, userID, groupID); err != nil {
		s.logger.Error().Err(err).Str("groupID", groupID.String()).Msg("Remove favorite failed")
		return nil, err
	}
	return &dto.FavoriteStatusResponse{GroupID: groupID, Favorited: false}, nil
}

// ToggleFavorite flips the flag atomically and returns the new state.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	ok, err := s.favorites.Toggle(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("groupID", groupID.String()).Bool("favorited", ok).Msg("Favorite toggled")
	return &dto.FavoriteStatusResponse{GroupID: groupID, Favorited: ok}, nil
}

func (s *FavoriteService) requireGroup(ctx context.Context, groupID uuid.UUID) error {
	exists, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrGroupNotFound
	}
	return nil
}
