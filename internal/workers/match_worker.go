package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/careerly/internal/queue"
	"github.com/yoockh/careerly/internal/services"
)

// MatchWorkerPool consumes application ids from the score stream and
// writes matching_score for each.
type MatchWorkerPool struct {
	Redis      *redis.Client
	Matches    services.MatchService
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *MatchWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Matches == nil {
		return errors.New("MatchWorkerPool missing dependency: Redis/Matches must be set")
	}
	if p.Stream == "" {
		p.Stream = queue.ScoreStream
	}
	if p.Group == "" {
		p.Group = queue.ScoreGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *MatchWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("xreadgroup failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *MatchWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	appID, _ := msg.Values["application_id"].(string)
	if appID == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":       msg.ID,
		"application_id": appID,
	})

	start := time.Now()
	score, err := p.Matches.Score(ctx, appID)
	if err != nil {
		log.WithError(err).Error("match scoring failed")
		return
	}
	log.WithFields(logrus.Fields{
		"matching_score": score,
		"latency_ms":     time.Since(start).Milliseconds(),
	}).Info("application scored")
}
