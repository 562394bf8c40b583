package bootstrap

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/internal/storage"
	"github.com/yoockh/careerly/internal/utils"
)

var errNoDatabase = errors.New("POSTGRES_SERVICE_URI is not set")

// Service runs the one-shot setup steps. Either dependency may be nil;
// the steps that need it then answer NOT_CONFIGURED.
type Service struct {
	db      DB
	buckets storage.BucketAdmin
	bucket  BucketConfig
	log     *logrus.Logger
}

type BucketConfig struct {
	Name     string
	Location string
	Public   bool
}

func NewService(db DB, buckets storage.BucketAdmin, bucket BucketConfig, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{db: db, buckets: buckets, bucket: bucket, log: log}
}

type BucketResult struct {
	Success bool   `json:"success"`
	Bucket  string `json:"bucket"`
	Created bool   `json:"created"`
	Message string `json:"message"`
}

// EnsureBucket creates the resume bucket when it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context) (BucketResult, error) {
	const op = "Bootstrap.EnsureBucket"
	if s.buckets == nil {
		return BucketResult{}, utils.E(utils.CodeNotConfigured, op, "object storage is not configured", nil)
	}
	if s.bucket.Name == "" {
		return BucketResult{}, utils.E(utils.CodeInvalidArgument, op, "bucket name is empty", nil)
	}

	exists, err := s.buckets.BucketExists(ctx, s.bucket.Name)
	if err != nil {
		return BucketResult{}, utils.WithDetails(utils.CodeInternal, op, "failed to check bucket", err, err.Error())
	}
	if exists {
		return BucketResult{Success: true, Bucket: s.bucket.Name, Message: "bucket already exists"}, nil
	}

	opts := storage.BucketOptions{Public: s.bucket.Public, Location: s.bucket.Location}
	if err := s.buckets.CreateBucket(ctx, s.bucket.Name, opts); err != nil {
		return BucketResult{}, utils.WithDetails(utils.CodeInternal, op, "failed to create bucket", err, err.Error())
	}
	s.log.WithFields(logrus.Fields{"bucket": s.bucket.Name, "public": s.bucket.Public}).Info("bucket created")
	return BucketResult{Success: true, Bucket: s.bucket.Name, Created: true, Message: "bucket created"}, nil
}

type SchemaResult struct {
	Success    bool `json:"success"`
	Statements int  `json:"statements"`
}

func (s *Service) CreateSchema(ctx context.Context) (SchemaResult, error) {
	const op = "Bootstrap.CreateSchema"
	if s.db == nil {
		return SchemaResult{}, utils.E(utils.CodeNotConfigured, op, "database is not configured", errNoDatabase)
	}
	n, err := CreateSchema(ctx, s.db)
	if err != nil {
		return SchemaResult{Statements: n}, utils.WithDetails(utils.CodeInternal, op, "failed to create schema", err, err.Error())
	}
	s.log.WithField("statements", n).Info("schema ensured")
	return SchemaResult{Success: true, Statements: n}, nil
}

type SeedResult struct {
	Success bool         `json:"success"`
	Seeded  []SeedReport `json:"seeded"`
}

func (s *Service) Seed(ctx context.Context) (SeedResult, error) {
	const op = "Bootstrap.Seed"
	if s.db == nil {
		return SeedResult{}, utils.E(utils.CodeNotConfigured, op, "database is not configured", errNoDatabase)
	}
	reports, err := Runner{Seeders: DefaultSeeders()}.Run(ctx, s.db)
	if err != nil {
		return SeedResult{Seeded: reports}, utils.WithDetails(utils.CodeInternal, op, "failed to seed data", err, err.Error())
	}
	s.log.WithField("seeded", reports).Info("seed complete")
	return SeedResult{Success: true, Seeded: reports}, nil
}

type WaitlistStepResult struct {
	Success bool `json:"success"`
	WaitlistResult
}

func (s *Service) AddWaitlistStatus(ctx context.Context) (WaitlistStepResult, error) {
	const op = "Bootstrap.AddWaitlistStatus"
	if s.db == nil {
		return WaitlistStepResult{}, utils.E(utils.CodeNotConfigured, op, "database is not configured", errNoDatabase)
	}
	res, err := AddWaitlistStatus(ctx, s.db)
	if err != nil {
		return WaitlistStepResult{WaitlistResult: res}, utils.WithDetails(utils.CodeInternal, op, "failed to update status constraint", err, err.Error())
	}
	s.log.WithField("changed", res.Changed).Info("waitlist status ensured")
	return WaitlistStepResult{Success: true, WaitlistResult: res}, nil
}
