package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/findyourpeers/peers/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PostService handles group comments
type PostService struct {
	posts     PostStore
	groups    GroupStore
	publisher Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPostService creates a new PostService. publisher may be nil.
func NewPostService(posts PostStore, groups GroupStore, publisher Publisher, logger zerolog.Logger) *PostService {
	return &PostService{
		posts:     posts,
		groups:    groups,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ListPosts returns every post of a group, oldest first.
func (s *PostService) ListPosts(ctx context.Context, groupID uuid.UUID) (*dto.PostListResponse, error) {
	exists, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrGroupNotFound
	}

	posts, err := s.posts.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error getting posts: %w", err)
	}
	return &dto.PostListResponse{GroupID: groupID, Posts: dto.FromPosts(posts)}, nil
}

// CreatePost appends a comment to a group and pushes it to live subscribers.
func (s *PostService) CreatePost(ctx context.Context, author auth.Principal, groupID uuid.UUID, text string) (*dto.PostResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyPost, "Post text cannot be empty")
	}
	if utf8.RuneCountInString(text) > validation.PostTextMaxLength {
		return nil, apperrors.NewValidationError("postText", fmt.Sprintf("Post must be at most %d characters", validation.PostTextMaxLength))
	}

	exists, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrGroupNotFound
	}

	post := &models.Post{
		ID:         uuid.New(),
		GroupID:    groupID,
		UserName:   author.FullName,
		UserID:     author.UserID,
		TimePosted: s.now().UTC(),
		PostText:   text,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	resp := dto.FromPost(post)
	if s.publisher != nil {
		s.publisher.Publish(groupID, dto.EventPostCreated, resp)
	}

	s.logger.Debug().Str("groupID", groupID.String()).Str("postID", post.ID.String()).Msg("Post created")
	return &resp, nil
}
