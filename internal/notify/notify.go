// Package notify publishes application events on per-user and per-company
// Redis channels; the websocket handler forwards them to browsers.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type EventType string

const (
	EventApplicationCreated EventType = "application_created"
	EventApplicationStatus  EventType = "application_status"
	EventApplicationScored  EventType = "application_scored"
)

type Event struct {
	Type          EventType `json:"type"`
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id,omitempty"`
	JobTitle      string    `json:"job_title,omitempty"`
	Status        string    `json:"status,omitempty"`
	MatchingScore *float64  `json:"matching_score,omitempty"`
	At            time.Time `json:"at"`
}

type Notifier interface {
	NotifyUser(ctx context.Context, userID string, ev Event) error
	NotifyCompany(ctx context.Context, companyID string, ev Event) error
}

func UserChannel(userID string) string       { return "user:" + userID + ":notifications" }
func CompanyChannel(companyID string) string { return "company:" + companyID + ":notifications" }

type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) NotifyUser(ctx context.Context, userID string, ev Event) error {
	return n.publish(ctx, UserChannel(userID), ev)
}

func (n *RedisNotifier) NotifyCompany(ctx context.Context, companyID string, ev Event) error {
	return n.publish(ctx, CompanyChannel(companyID), ev)
}

func (n *RedisNotifier) publish(ctx context.Context, channel string, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, channel, b).Err()
}

type Nop struct{}

func (Nop) NotifyUser(context.Context, string, Event) error    { return nil }
func (Nop) NotifyCompany(context.Context, string, Event) error { return nil }
