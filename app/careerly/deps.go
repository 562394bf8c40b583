package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/config"
	"github.com/yoockh/careerly/internal/bootstrap"
	"github.com/yoockh/careerly/internal/storage"
)

// openBootstrap connects the elevated database pool and the bucket admin.
// Either may be missing; the steps that need it then fail on their own.
func openBootstrap(ctx context.Context, env config.Env, log *logrus.Logger) (*bootstrap.Service, func()) {
	var closers []func()

	var db bootstrap.DB
	if env.PostgresServiceURI != "" {
		pool, err := bootstrap.Connect(ctx, env.PostgresServiceURI)
		if err != nil {
			log.WithError(err).Warn("bootstrap database unavailable")
		} else {
			db = pool
			closers = append(closers, pool.Close)
		}
	}

	var buckets storage.BucketAdmin
	if gcs := openGCS(ctx, env, log); gcs != nil {
		buckets = gcs
		closers = append(closers, func() { _ = gcs.Close() })
	}

	svc := bootstrap.NewService(db, buckets, bootstrap.BucketConfig{
		Name:     env.GCSBucket,
		Location: env.GCSLocation,
		Public:   env.GCSBucketPublic,
	}, log)

	return svc, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

func openGCS(ctx context.Context, env config.Env, log *logrus.Logger) *storage.GCS {
	if env.GCSBucket == "" {
		return nil
	}
	gcs, err := storage.NewGCS(ctx, env.GCSBucket, env.GCSProjectID)
	if err != nil {
		log.WithError(err).Warn("object storage unavailable, uploads and bucket bootstrap disabled")
		return nil
	}
	return gcs
}
