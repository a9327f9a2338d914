package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bookhaven/bookhaven-backend/pkg/redis"
)

type redisBlobClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SnapshotKey(namespace string) string
}

// RedisStore persists snapshots as namespaced redis strings. Blobs carry no
// TTL: the cart and order history live until explicitly cleared, the same
// contract browser local storage gave the original storefront.
type RedisStore struct {
	notifier

	client redisBlobClient
}

// NewRedisStore wraps the shared redis client as a snapshot store.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client}, nil
}

// Load unmarshals the namespace blob into dest, reporting whether one existed.
func (r *RedisStore) Load(ctx context.Context, namespace string, dest any) (bool, error) {
	raw, err := r.client.Get(ctx, r.client.SnapshotKey(namespace))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("load snapshot %s: %w", namespace, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", namespace, err)
	}
	return true, nil
}

// Save marshals value and replaces the namespace blob.
func (r *RedisStore) Save(ctx context.Context, namespace string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", namespace, err)
	}
	if err := r.client.Set(ctx, r.client.SnapshotKey(namespace), raw, 0); err != nil {
		return fmt.Errorf("save snapshot %s: %w", namespace, err)
	}

	r.notify(namespace)
	return nil
}

// Delete drops the namespace blob.
func (r *RedisStore) Delete(ctx context.Context, namespace string) error {
	if err := r.client.Del(ctx, r.client.SnapshotKey(namespace)); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", namespace, err)
	}

	r.notify(namespace)
	return nil
}

// Subscribe registers fn to run after mutations of the namespace.
func (r *RedisStore) Subscribe(namespace string, fn func()) func() {
	return r.subscribe(namespace, fn)
}
