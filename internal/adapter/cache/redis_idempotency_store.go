package cache

import (
	"context"
	"time"

	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisIdempotencyStore guards order materialization: the key is a checkout
// session ID (webhook path) or a client-supplied idempotency key (direct
// path), scoped per user. TryLock wins at most once per TTL; Remember maps
// the key to the created order so replays can return it.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	return s.rdb.SetNX(ctx, "order:idem:"+scope+":"+key, "1", s.ttl).Result()
}

func (s *RedisIdempotencyStore) Unlock(ctx context.Context, scope, key string) error {
	return s.rdb.Del(ctx, "order:idem:"+scope+":"+key).Err()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, scope, key, orderID string) error {
	return s.rdb.Set(ctx, "order:idem:map:"+scope+":"+key, orderID, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, "order:idem:map:"+scope+":"+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	return val, true, err
}

var _ usecase.IdempotencyStore = (*RedisIdempotencyStore)(nil)
