package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/findyourpeers/peers/internal/pkg/filestorage"
	"github.com/findyourpeers/peers/internal/pkg/helpers"
	"github.com/findyourpeers/peers/internal/pkg/imaging"
	"github.com/findyourpeers/peers/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MissingFieldsMessage is shown when the create form is incomplete.
const MissingFieldsMessage = "All fields are required along with a photo."

// PhotoLimits bounds uploaded and stored group photos. MaxBytes caps the
// upload itself; zero disables that check.
type PhotoLimits struct {
	MaxWidth  int
	MaxHeight int
	MaxPixels int
	MaxBytes  int64
}

// GroupService handles group creation and listing
type GroupService struct {
	groups GroupStore
	blobs  BlobStore
	photo  PhotoLimits
	logger zerolog.Logger
	now    func() time.Time
}

// NewGroupService creates a new GroupService
func NewGroupService(groups GroupStore, blobs BlobStore, photo PhotoLimits, logger zerolog.Logger) *GroupService {
	return &GroupService{
		groups: groups,
		blobs:  blobs,
		photo:  photo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateGroup validates the form, uploads the photo and then writes the
// group record. The two writes are not atomic: when the record write fails
// the uploaded photo stays in storage.
func (s *GroupService) CreateGroup(ctx context.Context, creator auth.Principal, req *dto.CreateGroupRequest, photo io.Reader) (*dto.GroupResponse, error) {
	name := validation.NewStringValidation(req.GroupName).WithMaxLength(validation.GroupNameMaxLength)
	topic := validation.NewStringValidation(req.Topic).WithMaxLength(validation.TopicMaxLength)
	description := validation.NewStringValidation(req.Description).WithMaxLength(validation.DescriptionMaxLength)

	if !name.Present() || !topic.Present() || !description.Present() || photo == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrMissingFields, MissingFieldsMessage)
	}

	category, err := validation.ResolveCategory(req.Category)
	if err != nil {
		return nil, err
	}

	switch {
	case !name.Validate():
		return nil, apperrors.NewValidationError("groupName", fmt.Sprintf("Group name must be at most %d characters", validation.GroupNameMaxLength))
	case !topic.Validate():
		return nil, apperrors.NewValidationError("topic", fmt.Sprintf("Topic must be at most %d characters", validation.TopicMaxLength))
	case !description.Validate():
		return nil, apperrors.NewValidationError("description", fmt.Sprintf("Description must be at most %d characters", validation.DescriptionMaxLength))
	}

	if s.photo.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(photo, s.photo.MaxBytes+1))
		if err != nil {
			return nil, apperrors.NewBadRequestError("Could not read photo upload")
		}
		if int64(len(data)) > s.photo.MaxBytes {
			return nil, apperrors.NewValidationError("photo", fmt.Sprintf("Photo must be at most %d bytes", s.photo.MaxBytes))
		}
		photo = bytes.NewReader(data)
	}

	resized, err := imaging.Downscale(photo, s.photo.MaxWidth, s.photo.MaxHeight, s.photo.MaxPixels)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		ID:          uuid.New(),
		GroupName:   name.Value,
		Topic:       topic.Value,
		Description: description.Value,
		Category:    category,
		CollegeName: creator.CollegeName,
		CreatedBy:   creator.FullName,
		CreatorID:   creator.UserID,
		DateCreated: s.now().UTC(),
	}

	key := filestorage.GroupPhotoKey(group.ID.String())
	url, err := s.blobs.Upload(ctx, key, imaging.ContentType, bytes.NewReader(resized))
	if err != nil {
		s.logger.Error().Err(err).Str("groupID", group.ID.String()).Msg("Group photo upload failed")
		return nil, fmt.Errorf("uploading group photo: %w", err)
	}
	group.GroupPhotoURL = url

	if err := s.groups.Create(ctx, group); err != nil {
		s.logger.Error().Err(err).
			Str("groupID", group.ID.String()).
			Str("photoKey", key).
			Msg("Group record write failed, uploaded photo left in storage")
		return nil, fmt.Errorf("saving group: %w", err)
	}

	s.logger.Info().
		Str("groupID", group.ID.String()).
		Str("category", string(group.Category)).
		Str("creatorID", creator.UserID.String()).
		Msg("Group created")

	resp := dto.FromGroup(group)
	return &resp, nil
}

// GetGroup returns one group.
func (s *GroupService) GetGroup(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromGroup(group)
	return &resp, nil
}

// ListGroups returns one page of the group directory, newest first.
func (s *GroupService) ListGroups(ctx context.Context, filter *dto.GroupFilterRequest) (*dto.GroupListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	groups, total, err := s.groups.List(ctx, filter.Category, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting groups: %w", err)
	}

	return &dto.GroupListResponse{
		Groups:         dto.FromGroups(groups),
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, int(limit)),
	}, nil
}

// ListFollowedGroups fetches every group the user follows and narrows the
// set to rawCategory. An empty category returns the whole set.
func (s *GroupService) ListFollowedGroups(ctx context.Context, userID uuid.UUID, rawCategory string) (*dto.FollowedGroupsResponse, error) {
	category, err := validation.OptionalCategory(rawCategory)
	if err != nil {
		return nil, err
	}

	followed, err := s.groups.ListFavoritedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting followed groups: %w", err)
	}

	visible := models.FilterByCategory(followed, category)

	s.logger.Debug().
		Str("userID", userID.String()).
		Str("category", string(category)).
		Int("followed", len(followed)).
		Int("visible", len(visible)).
		Msg("Followed groups listed")

	return &dto.FollowedGroupsResponse{
		Category: string(category),
		Groups:   dto.FromGroups(visible),
	}, nil
}
