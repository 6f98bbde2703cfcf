package media

import (
	"context"
	"fmt"
	"log"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/google/uuid"
)

const DefaultMaxDimension = 1200

// Uploader resizes ad photos and writes them to a BlobStore under
// ads/{adID}/{random}.{ext}.
type Uploader struct {
	blobs  BlobStore
	maxDim int
	newID  func() string
}

func NewUploader(blobs BlobStore, maxDim int) *Uploader {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &Uploader{
		blobs:  blobs,
		maxDim: maxDim,
		newID:  func() string { return uuid.New().String() },
	}
}

// Upload returns the public URL of the stored photo. Every failure wraps
// common.ErrUpload.
func (u *Uploader) Upload(ctx context.Context, data []byte, adID string) (string, error) {
	img, name, err := decode(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUpload, err)
	}

	f := outputFormat(name)
	out, err := encode(Downscale(img, u.maxDim), f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUpload, err)
	}

	key := fmt.Sprintf("ads/%s/%s.%s", adID, u.newID(), f.ext)
	url, err := u.blobs.Put(ctx, key, f.contentType, out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUpload, err)
	}
	log.Printf("[media] stored %s (%d bytes, %s)", key, len(out), name)
	return url, nil
}
