package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type RedisKV struct {
	Client *redis.Client
	Prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{Client: client, Prefix: prefix}
}

func (s *RedisKV) key(k string) string {
	return s.Prefix + k
}

func (s *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.Client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *RedisKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range sortedKeys(entries) {
			pipe.Set(ctx, s.key(k), entries[k], 0)
		}
		return nil
	})
	return err
}
