package storage

import (
	"context"
	"io"
)

// Uploader stores a resume file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}

// BucketAdmin is the one-shot bucket bootstrap surface.
type BucketAdmin interface {
	BucketExists(ctx context.Context, name string) (bool, error)
	CreateBucket(ctx context.Context, name string, opts BucketOptions) error
}

type BucketOptions struct {
	Public   bool
	Location string
}
