package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// MediaStorage serves the program catalog artwork. Images are uploaded to
// the bucket out-of-band; the app only hands out temporary view URLs.
type MediaStorage interface {
	// ImageURL creates a temporary URL that allows GET requests for an
	// object directly from the storage provider.
	ImageURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}
