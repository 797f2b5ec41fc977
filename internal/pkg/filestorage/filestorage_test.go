package filestorage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage_go "github.com/supabase-community/storage-go"
)

func TestLocalStorageUploadOverwrites(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "http://localhost:8080/")
	require.NoError(t, err)

	key := GroupPhotoKey("abc")
	url, err := ls.Upload(context.Background(), key, "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/groups/abc/photo.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "groups", "abc", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	// overwrite keeps a single object
	_, err = ls.Upload(context.Background(), key, "image/jpeg", strings.NewReader("v2"))
	require.NoError(t, err)
	data, _ = os.ReadFile(filepath.Join(dir, "groups", "abc", "photo.jpg"))
	assert.Equal(t, "v2", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "groups", "abc"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = ls.Upload(context.Background(), "../escape.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestLocalStorageHonoursCancelledContext(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ls.Upload(ctx, "a.jpg", "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeSupabase struct {
	uploaded map[string]string
	options  storage_go.FileOptions
	fail     error
}

func (f *fakeSupabase) UploadFile(bucket, path string, data io.Reader, opts ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	if f.fail != nil {
		return storage_go.FileUploadResponse{}, f.fail
	}
	b, _ := io.ReadAll(data)
	f.uploaded[bucket+"/"+path] = string(b)
	if len(opts) > 0 {
		f.options = opts[0]
	}
	return storage_go.FileUploadResponse{Key: path}, nil
}

func (f *fakeSupabase) GetPublicUrl(bucket, path string, _ ...storage_go.UrlOptions) storage_go.SignedUrlResponse {
	return storage_go.SignedUrlResponse{SignedURL: "https://cdn.example/" + bucket + "/" + path}
}

func TestSupabaseStorageUpload(t *testing.T) {
	fake := &fakeSupabase{uploaded: map[string]string{}}
	s := &SupabaseStorage{client: fake, bucket: "group-photos"}

	url, err := s.Upload(context.Background(), "groups/1/photo.jpg", "image/jpeg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/group-photos/groups/1/photo.jpg", url)
	assert.Equal(t, "img", fake.uploaded["group-photos/groups/1/photo.jpg"])
	require.NotNil(t, fake.options.Upsert)
	assert.True(t, *fake.options.Upsert)
	assert.Equal(t, "image/jpeg", *fake.options.ContentType)
}

func TestSupabaseStorageUploadFailure(t *testing.T) {
	s := &SupabaseStorage{client: &fakeSupabase{fail: errors.New("503")}, bucket: "b"}

	_, err := s.Upload(context.Background(), "k", "image/jpeg", strings.NewReader("img"))
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
}
