package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/careerly/internal/cache"
	"github.com/yoockh/careerly/internal/logger"
	"github.com/yoockh/careerly/internal/models"
)

type memCache struct {
	data map[string][]byte
}

func (m *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	m.data[key] = b
	return err
}

func (m *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type countingUsers struct {
	UserService
	lookups int
}

func (c *countingUsers) UserType(ctx context.Context, userID string) (models.UserType, error) {
	c.lookups++
	return c.UserService.UserType(ctx, userID)
}

func TestCachedUserService_MemoizesAndInvalidates(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(&models.User{ID: recruiter, UserType: models.UserTypeIndividual})
	inner := &countingUsers{UserService: NewUserService(users, &fakeCompanyRepo{})}
	mc := &memCache{data: map[string][]byte{}}
	svc := NewCachedUserService(inner, mc, time.Minute, logger.Discard())

	for i := 0; i < 3; i++ {
		got, err := svc.UserType(ctx, recruiter)
		require.NoError(t, err)
		assert.Equal(t, models.UserTypeIndividual, got)
	}
	assert.Equal(t, 1, inner.lookups)
	assert.Contains(t, mc.data, cache.UserTypeKey(recruiter))

	_, _, err := svc.RegisterCompany(ctx, recruiter, "r@example.com", CreateCompanyInput{Name: "Acme"})
	require.NoError(t, err)
	assert.NotContains(t, mc.data, cache.UserTypeKey(recruiter))

	got, err := svc.UserType(ctx, recruiter)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeCompany, got)
	assert.Equal(t, 2, inner.lookups)
}

func TestCachedUserService_ErrorsAreNotCached(t *testing.T) {
	inner := &countingUsers{UserService: NewUserService(newFakeUsers(), &fakeCompanyRepo{})}
	mc := &memCache{data: map[string][]byte{}}
	svc := NewCachedUserService(inner, mc, 0, logger.Discard())

	_, err := svc.UserType(context.Background(), "ghost")
	assert.Error(t, err)
	assert.Empty(t, mc.data)
}

func TestNewCachedUserService_NilCacheReturnsInner(t *testing.T) {
	inner := NewUserService(newFakeUsers(), &fakeCompanyRepo{})
	assert.Same(t, inner, NewCachedUserService(inner, nil, 0, nil))
}
