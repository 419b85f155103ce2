package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/gdugdh24/glicosaude/internal/repository"
	"github.com/redis/go-redis/v9"
)

type draftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore keeps wizard drafts for ttl after their last change, so an
// abandoned onboarding cleans itself up.
func NewDraftStore(client *redis.Client, ttl time.Duration) repository.DraftStore {
	return &draftStore{client: client, ttl: ttl}
}

func draftKey(userID string) string {
	return fmt.Sprintf("user:%s:onboarding", userID)
}

func (s *draftStore) Get(ctx context.Context, userID string) (*onboarding.State, error) {
	data, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var state onboarding.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode onboarding draft: %w", err)
	}
	return &state, nil
}

func (s *draftStore) Save(ctx context.Context, userID string, state onboarding.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftKey(userID), data, s.ttl).Err()
}

func (s *draftStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, draftKey(userID)).Err()
}
