// Package redisstore keeps the document under one fixed key in Redis,
// mirroring the original's single key-value storage slot.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"fokus/internal/store"
)

// DefaultKey is the storage slot the document lives under.
const DefaultKey = "fokus:document"

type Store struct {
	client *redis.Client
	key    string
}

// New connects to Redis at url (redis:// form, with a bare host:port
// fallback) and verifies the connection with a short ping.
func New(url, key string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		// Fallback to a plain address
		opt = &redis.Options{Addr: url}
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	if key == "" {
		key = DefaultKey
	}
	slog.Info("Connected to Redis document store", "key", key)
	return &Store{client: client, key: key}, nil
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("get document key: %w", err)
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, doc []byte) error {
	if err := s.client.Set(ctx, s.key, doc, 0).Err(); err != nil {
		return fmt.Errorf("set document key: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("delete document key: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
