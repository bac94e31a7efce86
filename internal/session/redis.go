package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:session:"

type redisBackend struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client, keyPairs ...[]byte) *BackendStore {
	return newBackendStore(&redisBackend{client: client}, keyPairs...)
}

func (b *redisBackend) load(ctx context.Context, id string) ([]byte, error) {
	data, err := b.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errNoSession
	}
	return data, err
}

func (b *redisBackend) save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return b.client.Set(ctx, redisKeyPrefix+id, data, ttl).Err()
}

func (b *redisBackend) delete(ctx context.Context, id string) error {
	return b.client.Del(ctx, redisKeyPrefix+id).Err()
}
