package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/drinkph/portal-go/workflow"
)

// RedisDraftStore keeps auto-saved drafts under a per-client key with a TTL,
// so abandoned drafts age out on their own.
type RedisDraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDraftStore(rdb *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{rdb: rdb, ttl: ttl}
}

func (s *RedisDraftStore) Get(ctx context.Context, key string) (*workflow.Draft, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var draft workflow.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *RedisDraftStore) Set(ctx context.Context, key string, d *workflow.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, s.ttl).Err()
}

func (s *RedisDraftStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
