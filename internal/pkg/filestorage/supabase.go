package filestorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/logger"
	storage_go "github.com/supabase-community/storage-go"
)

// supabaseAPI is the subset of the storage-go client used here.
type supabaseAPI interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	GetPublicUrl(bucketID, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
}

// SupabaseStorage stores objects in a public Supabase Storage bucket.
type SupabaseStorage struct {
	client supabaseAPI
	bucket string
}

// NewSupabaseStorage connects to the storage API of the project at projectURL.
func NewSupabaseStorage(projectURL, apiKey, bucket string) *SupabaseStorage {
	endpoint := strings.TrimRight(projectURL, "/") + "/storage/v1"
	return &SupabaseStorage{
		client: storage_go.NewClient(endpoint, apiKey, nil),
		bucket: bucket,
	}
}

// Upload stores r under key, overwriting any earlier object.
func (s *SupabaseStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, r, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		logger.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("Supabase upload failed")
		return "", fmt.Errorf("%w: upload %s: %v", apperrors.ErrExternalService, key, err)
	}

	url := s.client.GetPublicUrl(s.bucket, key).SignedURL
	logger.Info().Str("bucket", s.bucket).Str("key", key).Msg("File uploaded to Supabase")
	return url, nil
}
