// Package queue pushes applications onto the match-scoring Redis stream.
package queue

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ScoreStream = "applications:score"
	ScoreGroup  = "match-workers"
)

type ScoreQueue interface {
	EnqueueScore(ctx context.Context, applicationID string) error
}

type RedisQueue struct {
	rdb    *redis.Client
	stream string
}

func NewRedisQueue(rdb *redis.Client) *RedisQueue {
	return &RedisQueue{rdb: rdb, stream: ScoreStream}
}

func (q *RedisQueue) EnqueueScore(ctx context.Context, applicationID string) error {
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{
			"application_id": applicationID,
			"ts_unix":        strconv.FormatInt(time.Now().UTC().Unix(), 10),
		},
	}).Err()
}

// Nop drops every message; used when Redis is not configured.
type Nop struct{}

func (Nop) EnqueueScore(context.Context, string) error { return nil }
