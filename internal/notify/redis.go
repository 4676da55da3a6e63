// Package notify delivers persisted per-user notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/attendance-server/internal/model"
)

const keyPrefix = "notifications:user:"

type redisAPI interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

var _ model.NotificationSink = (*RedisSink)(nil)

// RedisSink keeps the most recent notifications of each user in a Redis list.
type RedisSink struct {
	api      redisAPI
	ttl      time.Duration
	maxItems int64
}

func NewRedisSink(client *redis.Client, ttl time.Duration, maxItems int64) *RedisSink {
	return newRedisSink(client, ttl, maxItems)
}

func newRedisSink(api redisAPI, ttl time.Duration, maxItems int64) *RedisSink {
	return &RedisSink{api: api, ttl: ttl, maxItems: maxItems}
}

// Key returns the list key holding the subject's notifications.
func Key(subjectID int64) string {
	return keyPrefix + strconv.FormatInt(subjectID, 10)
}

func (s *RedisSink) Notify(ctx context.Context, subjectID int64, notification model.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := Key(subjectID)
	if err := s.api.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	if s.maxItems > 0 {
		if err := s.api.LTrim(ctx, key, -s.maxItems, -1).Err(); err != nil {
			return fmt.Errorf("failed to trim notifications: %w", err)
		}
	}
	if s.ttl > 0 {
		if err := s.api.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set notification ttl: %w", err)
		}
	}
	return nil
}
