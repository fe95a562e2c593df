package port

import (
	"context"
	"io"
)

// MediaUploader pushes an image to the CDN and returns its public URL.
// Image transformation is the CDN's job, not ours.
type MediaUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
