package media

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps media in redis under Namespace with a TTL, so uploaded
// passes disappear once the channel has had time to fetch them.
type RedisStore struct {
	Client    redis.UniversalClient
	Namespace string
	TTL       time.Duration
}

func NewRedisStore(addr, password string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		}),
		Namespace: "media",
		TTL:       ttl,
	}
}

func (s *RedisStore) key(k string) string { return s.Namespace + ":" + k }

func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	return s.Client.Set(ctx, s.key(key), data, s.TTL).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !ValidKey(key) {
		return nil, ErrInvalidKey
	}
	data, err := s.Client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

// Ping checks the redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}
