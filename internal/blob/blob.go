// Package blob stores binary objects such as representative student photos.
package blob

import (
	"context"
	"errors"

	"github.com/kozaktomas/face-attendance/internal/config"
)

// ErrInvalidKey is returned for empty keys or keys escaping the store root.
var ErrInvalidKey = errors.New("invalid blob key")

// Store persists an object under a slash-separated key, replacing any
// previous object with the same key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// New returns the store selected by cfg: S3 when a bucket is configured,
// a local directory when Dir is set, or nil when neither is.
func New(cfg config.BlobConfig) (Store, error) {
	switch {
	case cfg.S3Bucket != "":
		return NewS3Store(cfg)
	case cfg.Dir != "":
		return NewDirStore(cfg.Dir)
	default:
		return nil, nil
	}
}
