package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/internal/cache"
	"github.com/yoockh/careerly/internal/models"
)

const DefaultUserTypeTTL = time.Minute

type cachedUserService struct {
	UserService
	cache cache.Cache
	ttl   time.Duration
	log   *logrus.Logger
}

// NewCachedUserService memoizes UserType and drops the entry whenever the
// user's role changes. Cache errors fall through to inner.
func NewCachedUserService(inner UserService, c cache.Cache, ttl time.Duration, log *logrus.Logger) UserService {
	if c == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = DefaultUserTypeTTL
	}
	if log == nil {
		log = logrus.New()
	}
	return &cachedUserService{UserService: inner, cache: c, ttl: ttl, log: log}
}

func (s *cachedUserService) UserType(ctx context.Context, userID string) (models.UserType, error) {
	key := cache.UserTypeKey(userID)

	var t models.UserType
	hit, err := s.cache.GetJSON(ctx, key, &t)
	if err != nil {
		s.log.WithError(err).Debug("user_type cache read failed")
	}
	if hit && t.Valid() {
		return t, nil
	}

	t, err = s.UserService.UserType(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := s.cache.SetJSON(ctx, key, t, s.ttl); err != nil {
		s.log.WithError(err).Debug("user_type cache write failed")
	}
	return t, nil
}

func (s *cachedUserService) BecomeIndividual(ctx context.Context, userID, email string) (*models.User, error) {
	u, err := s.UserService.BecomeIndividual(ctx, userID, email)
	s.forget(ctx, userID)
	return u, err
}

func (s *cachedUserService) RegisterCompany(ctx context.Context, userID, email string, in CreateCompanyInput) (*models.Company, *models.User, error) {
	c, u, err := s.UserService.RegisterCompany(ctx, userID, email, in)
	s.forget(ctx, userID)
	return c, u, err
}

func (s *cachedUserService) forget(ctx context.Context, userID string) {
	if err := s.cache.Del(ctx, cache.UserTypeKey(userID)); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("user_type cache invalidation failed")
	}
}
