package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var creator = auth.Principal{
	UserID:      uuid.New(),
	Email:       "antonio@example.com",
	FullName:    "Antonio Flores",
	CollegeName: "City College",
}

func photo(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 32))))
	return &buf
}

func validRequest() *dto.CreateGroupRequest {
	return &dto.CreateGroupRequest{
		GroupName:   "Calc Study",
		Topic:       "Calculus",
		Description: "Weekly problem sets",
	}
}

func newGroupService(groups *fakeGroups, blobs *fakeBlobs) *GroupService {
	return NewGroupService(groups, blobs, PhotoLimits{MaxWidth: 16, MaxHeight: 16}, zerolog.Nop())
}

func TestCreateGroupSuccess(t *testing.T) {
	groups, blobs := newFakeGroups(), newFakeBlobs()
	svc := newGroupService(groups, blobs)

	resp, err := svc.CreateGroup(context.Background(), creator, validRequest(), photo(t))
	require.NoError(t, err)

	assert.Equal(t, "Calc Study", resp.GroupName)
	assert.Equal(t, string(models.CategoryStudy), resp.Category)
	assert.Equal(t, "Antonio Flores", resp.CreatedBy)
	assert.Equal(t, "City College", resp.CollegeName)
	assert.Equal(t, creator.UserID, resp.CreatorID)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	key := "groups/" + resp.ID.String() + "/photo.jpg"
	assert.Equal(t, "https://blobs.test/"+key, resp.GroupPhotoURL)
	assert.Contains(t, blobs.uploads, key)
	require.Len(t, groups.groups, 1)
	assert.Equal(t, resp.ID, groups.groups[0].ID)
}

func TestCreateGroupMissingFieldsHasNoSideEffects(t *testing.T) {
	cases := map[string]func(r *dto.CreateGroupRequest){
		"name":        func(r *dto.CreateGroupRequest) { r.GroupName = "" },
		"topic":       func(r *dto.CreateGroupRequest) { r.Topic = "   " },
		"description": func(r *dto.CreateGroupRequest) { r.Description = "\n\t" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			groups, blobs := newFakeGroups(), newFakeBlobs()
			req := validRequest()
			mutate(req)

			_, err := newGroupService(groups, blobs).CreateGroup(context.Background(), creator, req, photo(t))

			assert.ErrorIs(t, err, apperrors.ErrMissingFields)
			assert.Equal(t, MissingFieldsMessage, err.Error())
			assert.Empty(t, blobs.uploads)
			assert.Zero(t, groups.creates)
		})
	}

	t.Run("photo", func(t *testing.T) {
		groups, blobs := newFakeGroups(), newFakeBlobs()
		_, err := newGroupService(groups, blobs).CreateGroup(context.Background(), creator, validRequest(), nil)
		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
		assert.Empty(t, blobs.uploads)
		assert.Zero(t, groups.creates)
	})
}

func TestCreateGroupInvalidCategory(t *testing.T) {
	groups, blobs := newFakeGroups(), newFakeBlobs()
	req := validRequest()
	req.Category = "party"

	_, err := newGroupService(groups, blobs).CreateGroup(context.Background(), creator, req, photo(t))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
	assert.Empty(t, blobs.uploads)
}

func TestCreateGroupInvalidImage(t *testing.T) {
	groups, blobs := newFakeGroups(), newFakeBlobs()

	_, err := newGroupService(groups, blobs).CreateGroup(context.Background(), creator, validRequest(), strings.NewReader("nope"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidImage)
	assert.Empty(t, blobs.uploads)
	assert.Zero(t, groups.creates)
}

func TestCreateGroupRejectsPhotoOverPixelBudget(t *testing.T) {
	groups, blobs := newFakeGroups(), newFakeBlobs()
	svc := NewGroupService(groups, blobs, PhotoLimits{MaxWidth: 16, MaxHeight: 16, MaxPixels: 1000}, zerolog.Nop())

	_, err := svc.CreateGroup(context.Background(), creator, validRequest(), photo(t))
	assert.ErrorIs(t, err, apperrors.ErrInvalidImage)
	assert.Empty(t, blobs.uploads)
	assert.Zero(t, groups.creates)
}

func TestCreateGroupPhotoTooLarge(t *testing.T) {
	oversized := func() *bytes.Reader { return bytes.NewReader(bytes.Repeat([]byte("a"), 2048)) }
	limits := PhotoLimits{MaxWidth: 16, MaxHeight: 16, MaxBytes: 1024}

	t.Run("complete form", func(t *testing.T) {
		groups, blobs := newFakeGroups(), newFakeBlobs()
		_, err := NewGroupService(groups, blobs, limits, zerolog.Nop()).
			CreateGroup(context.Background(), creator, validRequest(), oversized())

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Contains(t, err.Error(), "1024 bytes")
		assert.Empty(t, blobs.uploads)
		assert.Zero(t, groups.creates)
	})

	t.Run("missing fields win", func(t *testing.T) {
		groups, blobs := newFakeGroups(), newFakeBlobs()
		req := validRequest()
		req.GroupName = " "
		_, err := NewGroupService(groups, blobs, limits, zerolog.Nop()).
			CreateGroup(context.Background(), creator, req, oversized())

		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
		assert.Equal(t, MissingFieldsMessage, err.Error())
	})

	t.Run("within limit", func(t *testing.T) {
		groups, blobs := newFakeGroups(), newFakeBlobs()
		p := photo(t)
		limits := limits
		limits.MaxBytes = int64(p.Len())
		_, err := NewGroupService(groups, blobs, limits, zerolog.Nop()).
			CreateGroup(context.Background(), creator, validRequest(), p)
		require.NoError(t, err)
		assert.Len(t, blobs.uploads, 1)
	})
}

func TestCreateGroupUploadFailureWritesNoRecord(t *testing.T) {
	groups, blobs := newFakeGroups(), newFakeBlobs()
	blobs.err = apperrors.ErrExternalService

	_, err := newGroupService(groups, blobs).CreateGroup(context.Background(), creator, validRequest(), photo(t))
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.Zero(t, groups.creates)
}

func TestCreateGroupRecordFailureKeepsUpload(t *testing.T) {
	groups, blobs := newFakeGroups(), newFakeBlobs()
	groups.createErr = errBoom

	_, err := newGroupService(groups, blobs).CreateGroup(context.Background(), creator, validRequest(), photo(t))
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, blobs.uploads, 1)
	assert.Empty(t, groups.groups)
}

func TestCreateGroupKeepsCategoryAndTrims(t *testing.T) {
	groups, blobs := newFakeGroups(), newFakeBlobs()
	req := validRequest()
	req.GroupName = "  Chess  "
	req.Category = "Club"

	resp, err := newGroupService(groups, blobs).CreateGroup(context.Background(), creator, req, photo(t))
	require.NoError(t, err)
	assert.Equal(t, "Chess", resp.GroupName)
	assert.Equal(t, "club", resp.Category)
}

func followedFixture() (uuid.UUID, *fakeGroups) {
	user := uuid.New()
	groups := newFakeGroups()
	groups.followed[user] = []models.Group{
		{ID: uuid.New(), GroupName: "Calc", Category: models.CategoryStudy},
		{ID: uuid.New(), GroupName: "Chess", Category: models.CategoryClub},
		{ID: uuid.New(), GroupName: "Hack Night", Category: models.CategoryEvent},
		{ID: uuid.New(), GroupName: "Robotics", Category: models.CategoryClub},
	}
	return user, groups
}

func TestListFollowedGroupsFiltersExactSubset(t *testing.T) {
	user, groups := followedFixture()
	svc := newGroupService(groups, newFakeBlobs())

	resp, err := svc.ListFollowedGroups(context.Background(), user, "club")
	require.NoError(t, err)

	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "Chess", resp.Groups[0].GroupName)
	assert.Equal(t, "Robotics", resp.Groups[1].GroupName)
	assert.Equal(t, "club", resp.Category)

	// the full set is untouched, so a later filter still sees everything
	resp, err = svc.ListFollowedGroups(context.Background(), user, "study")
	require.NoError(t, err)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "Calc", resp.Groups[0].GroupName)
	assert.Len(t, groups.followed[user], 4)
}

func TestListFollowedGroupsNoCategoryReturnsAll(t *testing.T) {
	user, groups := followedFixture()

	resp, err := newGroupService(groups, newFakeBlobs()).ListFollowedGroups(context.Background(), user, "")
	require.NoError(t, err)
	assert.Len(t, resp.Groups, 4)
	assert.Empty(t, resp.Category)
}

func TestListFollowedGroupsInvalidCategory(t *testing.T) {
	user, groups := followedFixture()

	_, err := newGroupService(groups, newFakeBlobs()).ListFollowedGroups(context.Background(), user, "sports")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
}

func TestListFollowedGroupsEmpty(t *testing.T) {
	resp, err := newGroupService(newFakeGroups(), newFakeBlobs()).ListFollowedGroups(context.Background(), uuid.New(), "event")
	require.NoError(t, err)
	assert.NotNil(t, resp.Groups)
	assert.Empty(t, resp.Groups)
}

func TestListGroupsPaginates(t *testing.T) {
	groups := newFakeGroups(
		models.Group{ID: uuid.New(), Category: models.CategoryClub},
		models.Group{ID: uuid.New(), Category: models.CategoryClub},
		models.Group{ID: uuid.New(), Category: models.CategoryStudy},
	)
	svc := newGroupService(groups, newFakeBlobs())

	resp, err := svc.ListGroups(context.Background(), &dto.GroupFilterRequest{Category: models.CategoryClub, Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Groups, 1)
	assert.Equal(t, int64(2), resp.TotalItems)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
}

func TestGetGroupNotFound(t *testing.T) {
	_, err := newGroupService(newFakeGroups(), newFakeBlobs()).GetGroup(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrGroupNotFound)
}
