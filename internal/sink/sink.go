package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"gocloud.dev/blob"
)

// Sink copies local files into an object storage bucket.
type Sink struct {
	bucket *blob.Bucket
}

// Open connects to the bucket named by a gocloud URL. The caller must
// import the driver for the URL's scheme.
func Open(ctx context.Context, url string) (*Sink, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	return New(bucket), nil
}

// New wraps an already-open bucket. The sink takes ownership; Close closes
// the bucket.
func New(bucket *blob.Bucket) *Sink {
	return &Sink{bucket: bucket}
}

// Store copies the file at localPath to key in the bucket.
func (s *Sink) Store(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	w, err := s.bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}

	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying bucket connection.
func (s *Sink) Close() error {
	return s.bucket.Close()
}
