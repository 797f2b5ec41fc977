package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/logger"
)

// PublicPrefix is the URL path under which the API serves local uploads.
const PublicPrefix = "/uploads"

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // Public base URL of the API, without trailing slash
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// Returned URLs have the form <baseURL>/uploads/<key>.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes r to <basePath>/<key> through a temp file and rename so
// readers never observe a partial photo.
func (ls *LocalStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dstPath, err := ls.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("%w: failed to create subdirectory: %v", apperrors.ErrExternalService, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: failed to create temp file: %v", apperrors.ErrExternalService, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return "", fmt.Errorf("%w: failed to save file content: %v", apperrors.ErrExternalService, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}
	if err := os.Rename(tmp.Name(), dstPath); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}

	url := ls.URL(key)
	logger.Info().Str("key", key).Str("content_type", contentType).Str("url", url).Msg("File saved successfully")
	return url, nil
}

// URL returns the public URL for key.
func (ls *LocalStorage) URL(key string) string {
	return ls.baseURL + PublicPrefix + "/" + strings.TrimLeft(key, "/")
}

// resolve maps key to a path inside basePath, rejecting traversal.
func (ls *LocalStorage) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(ls.basePath, clean), nil
}
