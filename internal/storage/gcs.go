package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/yoockh/careerly/internal/utils"
)

type GCS struct {
	client    *gcs.Client
	bucket    string
	projectID string
}

func NewGCS(ctx context.Context, bucket, projectID string) (*GCS, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCS{client: c, bucket: bucket, projectID: projectID}, nil
}

func (g *GCS) Close() error { return g.client.Close() }

func (g *GCS) Bucket() string { return g.bucket }

func (g *GCS) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	obj := g.client.Bucket(g.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", mapBucketErr(err)
	}
	if err := w.Close(); err != nil {
		return "", mapBucketErr(err)
	}

	return PublicURL(g.bucket, objectName), nil
}

func (g *GCS) BucketExists(ctx context.Context, name string) (bool, error) {
	_, err := g.client.Bucket(name).Attrs(ctx)
	if errors.Is(err, gcs.ErrBucketNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *GCS) CreateBucket(ctx context.Context, name string, opts BucketOptions) error {
	if g.projectID == "" {
		return errors.New("GCS_PROJECT_ID is required to create a bucket")
	}
	attrs := &gcs.BucketAttrs{
		Location: opts.Location,
		UniformBucketLevelAccess: gcs.UniformBucketLevelAccess{
			Enabled: true,
		},
	}
	b := g.client.Bucket(name)
	if err := b.Create(ctx, g.projectID, attrs); err != nil {
		return err
	}
	if !opts.Public {
		return nil
	}

	// objects become readable by anyone holding the URL
	policy, err := b.IAM().Policy(ctx)
	if err != nil {
		return err
	}
	policy.Add(string(gcs.AllUsers), "roles/storage.objectViewer")
	return b.IAM().SetPolicy(ctx, policy)
}

func PublicURL(bucket, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName)
}

func mapBucketErr(err error) error {
	if errors.Is(err, gcs.ErrBucketNotExist) {
		return utils.ErrBucketNotFound
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return utils.ErrBucketNotFound
	}
	return err
}
