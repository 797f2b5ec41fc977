package filestorage

import (
	"context"
	"io"
)

// BlobStore stores binary objects under a key and exposes them by URL.
type BlobStore interface {
	// Upload writes r under key, replacing any existing object, and returns
	// the public URL of the stored object.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// GroupPhotoKey is the storage key of a group's photo.
func GroupPhotoKey(groupID string) string {
	return "groups/" + groupID + "/photo.jpg"
}
