package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/repository"
	"github.com/redis/go-redis/v9"
)

type readingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReadingCache(client *redis.Client, ttl time.Duration) repository.ReadingCache {
	return &readingCache{client: client, ttl: ttl}
}

func readingsKey(userID string) string {
	return fmt.Sprintf("readings:%s", userID)
}

func readingsVersionKey(userID string) string {
	return fmt.Sprintf("readings:%s:version", userID)
}

func (c *readingCache) Get(ctx context.Context, userID string) ([]*domain.GlucoseReading, bool, error) {
	data, err := c.client.Get(ctx, readingsKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var readings []*domain.GlucoseReading
	if err := json.Unmarshal(data, &readings); err != nil {
		// A corrupt entry is a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return readings, true, nil
}

func (c *readingCache) Version(ctx context.Context, userID string) (int64, error) {
	return currentVersion(ctx, c.client, userID)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func currentVersion(ctx context.Context, g getter, userID string) (int64, error) {
	v, err := g.Get(ctx, readingsVersionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Set stores readings only while version is still current. The version key
// is watched, so an Invalidate racing the write aborts it.
func (c *readingCache) Set(ctx context.Context, userID string, version int64, readings []*domain.GlucoseReading) error {
	if readings == nil {
		readings = []*domain.GlucoseReading{}
	}
	data, err := json.Marshal(readings)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := currentVersion(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, readingsKey(userID), data, c.ttl)
			return nil
		})
		return err
	}, readingsVersionKey(userID))
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *readingCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, readingsVersionKey(userID))
		pipe.Del(ctx, readingsKey(userID))
		return nil
	})
	return err
}
