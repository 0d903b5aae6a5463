// Package redis provides a slot store backed by Redis, for deployments that
// keep the console's durable state outside the sqlite file.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/store"
	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// DefaultPrefix namespaces slot keys.
const DefaultPrefix = "hoteladmin:slot:"

type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens a client and checks it with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Slots implements store.Slots with one string key per slot.
type Slots struct {
	client *redis.Client
	prefix string
}

var _ store.Slots = (*Slots)(nil)

func NewSlots(client *redis.Client, prefix string) *Slots {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Slots{client: client, prefix: prefix}
}

func (s *Slots) GetSlot(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get slot: %w", err)
	}
	return v, nil
}

func (s *Slots) PutSlot(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis put slot: %w", err)
	}
	return nil
}

func (s *Slots) DeleteSlot(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete slot: %w", err)
	}
	return nil
}

// Ping is used by the readiness probe.
func (s *Slots) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
