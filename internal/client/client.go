// Package client is a typed HTTP client for the findYourPeers API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/findyourpeers/peers/internal/app/models/dto"
)

const (
	dialTimeout    = 10 * time.Second
	fastReqTimeout = 30 * time.Second
	// Photo uploads can be several megabytes.
	slowReqTimeout = 2 * time.Minute
)

var netDialer = &net.Dialer{
	Timeout: dialTimeout,
}

// Client talks to one API host. It is safe for concurrent use once built.
type Client struct {
	baseURL    string
	token      string
	fastClient *http.Client
	slowClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces both underlying HTTP clients.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.fastClient = hc
		c.slowClient = hc
	}
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080". The /api/v1 prefix is added here.
func New(baseURL string, opts ...Option) *Client {
	transport := &http.Transport{DialContext: netDialer.DialContext}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		fastClient: &http.Client{Transport: transport, Timeout: fastReqTimeout},
		slowClient: &http.Client{Transport: transport, Timeout: slowReqTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use, if any.
func (c *Client) Token() string {
	return c.token
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    dto.ErrorCode
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// envelope mirrors dto.APIResponse with a typed payload.
type envelope[T any] struct {
	Success bool             `json:"success"`
	Data    T                `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

// request is one API call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	slow        bool
}

func jsonRequest(method, path string, payload interface{}) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("error encoding request: %w", err)
	}
	return request{method: method, path: path, body: bytes.NewReader(body), contentType: "application/json"}, nil
}

func do[T any](ctx context.Context, c *Client, r request) (T, error) {
	var zero T

	target := c.baseURL + "/api/v1" + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return zero, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	hc := c.fastClient
	if r.slow {
		hc = c.slowClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return zero, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return zero, handleAPIError(resp, body)
	}

	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("error decoding response: %w", err)
	}
	return env.Data, nil
}

// handleAPIError builds an APIError from an error envelope, falling back to
// the raw body for non-JSON answers such as proxy errors.
func handleAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var env envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	apiErr.Code = env.Error.Code
	apiErr.Message = env.Error.Message
	apiErr.Field = env.Error.Field
	return apiErr
}

// Register creates an account and returns its first access token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	r, err := jsonRequest(http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return do[*dto.AuthResponse](ctx, c, r)
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	r, err := jsonRequest(http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return do[*dto.AuthResponse](ctx, c, r)
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	return do[*dto.UserResponse](ctx, c, request{method: http.MethodGet, path: "/me"})
}

// ListGroups returns one page of the group directory. Zero page or size
// leaves the server defaults in place.
func (c *Client) ListGroups(ctx context.Context, category string, page, size int) (*dto.GroupListResponse, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return do[*dto.GroupListResponse](ctx, c, request{method: http.MethodGet, path: "/groups", query: q})
}

// GetGroup returns one group.
func (c *Client) GetGroup(ctx context.Context, id string) (*dto.GroupResponse, error) {
	return do[*dto.GroupResponse](ctx, c, request{method: http.MethodGet, path: "/groups/" + url.PathEscape(id)})
}

// CreateGroup submits the create-group form with the photo read from photo.
// A nil photo sends the form without one.
func (c *Client) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, photoName string, photo io.Reader) (*dto.GroupResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"groupName", req.GroupName},
		{"topic", req.Topic},
		{"description", req.Description},
		{"category", req.Category},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("error writing form field %s: %w", f.name, err)
		}
	}

	if photo != nil {
		part, err := w.CreateFormFile("photo", photoName)
		if err != nil {
			return nil, fmt.Errorf("error creating photo part: %w", err)
		}
		if _, err := io.Copy(part, photo); err != nil {
			return nil, fmt.Errorf("error reading photo: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("error closing form: %w", err)
	}

	return do[*dto.GroupResponse](ctx, c, request{
		method:      http.MethodPost,
		path:        "/groups",
		body:        &buf,
		contentType: w.FormDataContentType(),
		slow:        true,
	})
}

// ListFollowedGroups returns the groups the caller follows, narrowed to
// category when it is not empty.
func (c *Client) ListFollowedGroups(ctx context.Context, category string) (*dto.FollowedGroupsResponse, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	return do[*dto.FollowedGroupsResponse](ctx, c, request{method: http.MethodGet, path: "/me/groups", query: q})
}

func favoritePath(groupID string) string {
	return "/groups/" + url.PathEscape(groupID) + "/favorite"
}

// FavoriteStatus reports whether the caller follows the group.
func (c *Client) FavoriteStatus(ctx context.Context, groupID string) (*dto.FavoriteStatusResponse, error) {
	return do[*dto.FavoriteStatusResponse](ctx, c, request{method: http.MethodGet, path: favoritePath(groupID)})
}

// AddFavorite follows the group.
func (c *Client) AddFavorite(ctx context.Context, groupID string) (*dto.FavoriteStatusResponse, error) {
	return do[*dto.FavoriteStatusResponse](ctx, c, request{method: http.MethodPut, path: favoritePath(groupID)})
}

// RemoveFavorite unfollows the group.
func (c *Client) RemoveFavorite(ctx context.Context, groupID string) (*dto.FavoriteStatusResponse, error) {
	return do[*dto.FavoriteStatusResponse](ctx, c, request{method: http.MethodDelete, path: favoritePath(groupID)})
}

// ToggleFavorite flips the favorite flag server-side in one transaction.
func (c *Client) ToggleFavorite(ctx context.Context, groupID string) (*dto.FavoriteStatusResponse, error) {
	return do[*dto.FavoriteStatusResponse](ctx, c, request{method: http.MethodPost, path: favoritePath(groupID) + "/toggle"})
}

func postsPath(groupID string) string {
	return "/groups/" + url.PathEscape(groupID) + "/posts"
}

// ListPosts returns the group's posts, oldest first.
func (c *Client) ListPosts(ctx context.Context, groupID string) (*dto.PostListResponse, error) {
	return do[*dto.PostListResponse](ctx, c, request{method: http.MethodGet, path: postsPath(groupID)})
}

// CreatePost appends a post to the group.
func (c *Client) CreatePost(ctx context.Context, groupID, text string) (*dto.PostResponse, error) {
	r, err := jsonRequest(http.MethodPost, postsPath(groupID), dto.CreatePostRequest{PostText: text})
	if err != nil {
		return nil, err
	}
	return do[*dto.PostResponse](ctx, c, r)
}
