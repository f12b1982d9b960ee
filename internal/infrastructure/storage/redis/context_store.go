package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roseyco/agency-portal/internal/core/ports"
)

const defaultKeyPrefix = "portal:ctx:"

// ContextStore keeps each browser context's storage under its own key namespace:
//
//	<prefix><context_id>:<key>
//
// Keys expire after ttl of inactivity when ttl > 0; every write refreshes it.
type ContextStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewContextStore wraps client. An empty prefix uses "portal:ctx:".
func NewContextStore(client redis.UniversalClient, prefix string, ttl time.Duration) *ContextStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &ContextStore{client: client, prefix: prefix, ttl: ttl}
}

// ForContext returns the namespace of one browser context.
func (s *ContextStore) ForContext(contextID string) ports.KeyValueStore {
	return &contextNamespace{store: s, base: s.prefix + contextID + ":"}
}

type contextNamespace struct {
	store *ContextStore
	base  string
}

func (n *contextNamespace) key(k string) string {
	return n.base + k
}

func (n *contextNamespace) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := n.store.client.Get(ctx, n.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (n *contextNamespace) Set(ctx context.Context, key, value string) error {
	if err := n.store.client.Set(ctx, n.key(key), value, n.store.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (n *contextNamespace) Delete(ctx context.Context, key string) error {
	if err := n.store.client.Del(ctx, n.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
