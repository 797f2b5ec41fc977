package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/middleware"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var caller = auth.Principal{UserID: uuid.New(), Email: "ana@example.com", FullName: "Ana", CollegeName: "City College"}

type stubGroups struct {
	gotPhoto    []byte
	gotReq      *dto.CreateGroupRequest
	gotCategory string
	gotFilter   *dto.GroupFilterRequest
}

func (s *stubGroups) CreateGroup(_ context.Context, creator auth.Principal, req *dto.CreateGroupRequest, photo io.Reader) (*dto.GroupResponse, error) {
	s.gotReq = req
	if photo == nil || strings.TrimSpace(req.GroupName) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrMissingFields, "All fields are required along with a photo.")
	}
	s.gotPhoto, _ = io.ReadAll(photo)
	return &dto.GroupResponse{ID: uuid.New(), GroupName: req.GroupName, CreatorID: creator.UserID}, nil
}

func (s *stubGroups) GetGroup(_ context.Context, id uuid.UUID) (*dto.GroupResponse, error) {
	return nil, apperrors.ErrGroupNotFound
}

func (s *stubGroups) ListGroups(_ context.Context, filter *dto.GroupFilterRequest) (*dto.GroupListResponse, error) {
	s.gotFilter = filter
	return &dto.GroupListResponse{Groups: []dto.GroupResponse{}}, nil
}

func (s *stubGroups) ListFollowedGroups(_ context.Context, _ uuid.UUID, category string) (*dto.FollowedGroupsResponse, error) {
	s.gotCategory = category
	return &dto.FollowedGroupsResponse{Category: category, Groups: []dto.GroupResponse{{GroupName: "Chess", Category: "club"}}}, nil
}

type stubFavorites struct{ state bool }

func (s *stubFavorites) IsFavorited(_ context.Context, _, g uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	return &dto.FavoriteStatusResponse{GroupID: g, Favorited: s.state}, nil
}
func (s *stubFavorites) AddFavorite(_ context.Context, _, g uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	s.state = true
	return &dto.FavoriteStatusResponse{GroupID: g, Favorited: true}, nil
}
func (s *stubFavorites) RemoveFavorite(_ context.Context, _, g uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	s.state = false
	return &dto.FavoriteStatusResponse{GroupID: g, Favorited: false}, nil
}
func (s *stubFavorites) ToggleFavorite(_ context.Context, _, g uuid.UUID) (*dto.FavoriteStatusResponse, error) {
	s.state = !s.state
	return &dto.FavoriteStatusResponse{GroupID: g, Favorited: s.state}, nil
}

type stubPosts struct{}

func (stubPosts) ListPosts(_ context.Context, g uuid.UUID) (*dto.PostListResponse, error) {
	return &dto.PostListResponse{GroupID: g, Posts: []dto.PostResponse{}}, nil
}

func (stubPosts) CreatePost(_ context.Context, author auth.Principal, g uuid.UUID, text string) (*dto.PostResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyPost, "Post text cannot be empty")
	}
	return &dto.PostResponse{ID: uuid.New(), GroupID: g, UserName: author.FullName, PostText: text}, nil
}

func testRouter(groups *stubGroups, favs *stubFavorites) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, caller.UserID)
		c.Set(middleware.ContextPrincipal, caller)
		c.Next()
	})

	gc := NewGroupController(groups)
	fc := NewFavoriteController(favs)
	pc := NewPostController(stubPosts{})

	r.POST("/groups", gc.CreateGroup)
	r.GET("/groups", gc.ListGroups)
	r.GET("/groups/:id", gc.GetGroup)
	r.GET("/me/groups", gc.ListFollowedGroups)
	r.GET("/groups/:id/favorite", fc.GetStatus)
	r.PUT("/groups/:id/favorite", fc.Add)
	r.DELETE("/groups/:id/favorite", fc.Remove)
	r.POST("/groups/:id/favorite/toggle", fc.Toggle)
	r.GET("/groups/:id/posts", pc.ListPosts)
	r.POST("/groups/:id/posts", pc.CreatePost)
	return r
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		part, err := w.CreateFormFile("photo", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func do(r *gin.Engine, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestCreateGroupMultipart(t *testing.T) {
	groups := &stubGroups{}
	r := testRouter(groups, &stubFavorites{})

	body, ct := multipartBody(t, map[string]string{
		"groupName": "Chess", "topic": "Openings", "description": "Weekly", "category": "club",
	}, []byte("png-bytes"))
	w := do(r, http.MethodPost, "/groups", body, ct)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "png-bytes", string(groups.gotPhoto))
	assert.Equal(t, "club", groups.gotReq.Category)
	assert.Contains(t, w.Body.String(), caller.UserID.String())
}

func TestCreateGroupWithoutPhoto(t *testing.T) {
	r := testRouter(&stubGroups{}, &stubFavorites{})

	body, ct := multipartBody(t, map[string]string{"groupName": "Chess", "topic": "x", "description": "y"}, nil)
	w := do(r, http.MethodPost, "/groups", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeMissingFields, errorCode(t, w))
	assert.Contains(t, w.Body.String(), "All fields are required along with a photo.")
}

func TestListGroupsCategoryAndPaging(t *testing.T) {
	groups := &stubGroups{}
	r := testRouter(groups, &stubFavorites{})

	w := do(r, http.MethodGet, "/groups?category=event&page=2&size=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.CategoryEvent, groups.gotFilter.Category)
	assert.Equal(t, 2, groups.gotFilter.Page)
	assert.Equal(t, 5, groups.gotFilter.PageSize)

	w = do(r, http.MethodGet, "/groups?category=sports", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidCategory, errorCode(t, w))
}

func TestGetGroupErrors(t *testing.T) {
	r := testRouter(&stubGroups{}, &stubFavorites{})

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/groups/123", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/groups/"+uuid.NewString(), nil, "").Code)
}

func TestListFollowedGroupsPassesCategory(t *testing.T) {
	groups := &stubGroups{}
	r := testRouter(groups, &stubFavorites{})

	w := do(r, http.MethodGet, "/me/groups?category=club", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "club", groups.gotCategory)
	assert.Contains(t, w.Body.String(), `"groupName":"Chess"`)
}

func TestFavoriteEndpoints(t *testing.T) {
	favs := &stubFavorites{}
	r := testRouter(&stubGroups{}, favs)
	path := "/groups/" + uuid.NewString() + "/favorite"

	w := do(r, http.MethodPut, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorited":true`)

	w = do(r, http.MethodPost, path+"/toggle", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorited":false`)

	w = do(r, http.MethodGet, path, nil, "")
	assert.Contains(t, w.Body.String(), `"favorited":false`)

	w = do(r, http.MethodDelete, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, favs.state)
}

func TestCreatePostEndpoint(t *testing.T) {
	r := testRouter(&stubGroups{}, &stubFavorites{})
	path := "/groups/" + uuid.NewString() + "/posts"

	w := do(r, http.MethodPost, path, strings.NewReader(`{"postText":"  hi all \n"}`), "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"postText":"hi all"`)

	w = do(r, http.MethodPost, path, strings.NewReader(`{"postText":"   "}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeEmptyPost, errorCode(t, w))

	w = do(r, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	padded := strings.Repeat("x", 4990) + strings.Repeat(`\n`, 20)
	w = do(r, http.MethodPost, path, strings.NewReader(`{"postText":"`+padded+`"}`), "application/json")
	assert.Equal(t, http.StatusCreated, w.Code, "length is judged on the trimmed text")
}

func TestCreateGroupLongPaddedFieldsReachService(t *testing.T) {
	groups := &stubGroups{}
	r := testRouter(groups, &stubFavorites{})

	body, ct := multipartBody(t, map[string]string{
		"groupName": strings.Repeat("n", 100) + "   ", "topic": "x", "description": "y",
	}, []byte("png-bytes"))
	w := do(r, http.MethodPost, "/groups", body, ct)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, groups.gotReq)
}

func TestCreateGroupOversizedPhotoWithBlankName(t *testing.T) {
	groups := &stubGroups{}
	r := testRouter(groups, &stubFavorites{})

	body, ct := multipartBody(t, map[string]string{"groupName": " ", "topic": "x", "description": "y"}, bytes.Repeat([]byte("a"), 64<<10))
	w := do(r, http.MethodPost, "/groups", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeMissingFields, errorCode(t, w))
}
