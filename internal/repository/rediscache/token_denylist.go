package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/glicosaude/internal/repository"
	"github.com/redis/go-redis/v9"
)

type tokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) repository.TokenDenylist {
	return &tokenDenylist{client: client}
}

func denylistKey(tokenID string) string {
	return fmt.Sprintf("token:revoked:%s", tokenID)
}

func (d *tokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKey(tokenID), 1, ttl).Err()
}

func (d *tokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
