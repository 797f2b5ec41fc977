package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/findyourpeers/peers/internal/app/models"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/google/uuid"
)

type fakeUsers struct {
	byEmail map[string]*models.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]*models.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(u *models.User) (string, int64, error) {
	return "token-" + u.ID.String(), 3600, nil
}

type fakeGroups struct {
	groups    []models.Group
	followed  map[uuid.UUID][]models.Group
	createErr error
	creates   int
}

func newFakeGroups(groups ...models.Group) *fakeGroups {
	return &fakeGroups{groups: groups, followed: map[uuid.UUID][]models.Group{}}
}

func (f *fakeGroups) Create(_ context.Context, g *models.Group) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	f.groups = append(f.groups, *g)
	return nil
}

func (f *fakeGroups) GetByID(_ context.Context, id uuid.UUID) (*models.Group, error) {
	for i := range f.groups {
		if f.groups[i].ID == id {
			g := f.groups[i]
			return &g, nil
		}
	}
	return nil, apperrors.ErrGroupNotFound
}

func (f *fakeGroups) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := f.GetByID(ctx, id)
	return err == nil, nil
}

func (f *fakeGroups) List(_ context.Context, c models.Category, offset, limit uint64) ([]models.Group, int64, error) {
	all := models.FilterByCategory(f.groups, c)
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []models.Group{}, total, nil
	}
	end := offset + limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[offset:end], total, nil
}

func (f *fakeGroups) ListFavoritedBy(_ context.Context, userID uuid.UUID) ([]models.Group, error) {
	return f.followed[userID], nil
}

type fakeBlobs struct {
	uploads map[string][]byte
	err     error
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{uploads: map[string][]byte{}} }

func (f *fakeBlobs) Upload(_ context.Context, key, _ string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.uploads[key] = b
	return "https://blobs.test/" + key, nil
}

type favKey struct{ user, group uuid.UUID }

type fakeFavorites struct {
	set map[favKey]bool
	err error
}

func newFakeFavorites() *fakeFavorites { return &fakeFavorites{set: map[favKey]bool{}} }

func (f *fakeFavorites) IsFavorited(_ context.Context, u, g uuid.UUID) (bool, error) {
	return f.set[favKey{u, g}], f.err
}

func (f *fakeFavorites) Add(_ context.Context, u, g uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.set[favKey{u, g}] = true
	return nil
}

func (f *fakeFavorites) Remove(_ context.Context, u, g uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.set, favKey{u, g})
	return nil
}

func (f *fakeFavorites) Toggle(_ context.Context, u, g uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	k := favKey{u, g}
	if f.set[k] {
		delete(f.set, k)
		return false, nil
	}
	f.set[k] = true
	return true, nil
}

type fakePosts struct {
	posts []models.Post
	err   error
}

func (f *fakePosts) Create(_ context.Context, p *models.Post) error {
	if f.err != nil {
		return f.err
	}
	f.posts = append(f.posts, *p)
	return nil
}

func (f *fakePosts) ListByGroup(_ context.Context, groupID uuid.UUID) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range f.posts {
		if p.GroupID == groupID {
			out = append(out, p)
		}
	}
	return out, nil
}

type published struct {
	groupID   uuid.UUID
	eventType string
	payload   interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (f *fakePublisher) Publish(groupID uuid.UUID, eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, published{groupID, eventType, payload})
}

var errBoom = errors.New("boom")
