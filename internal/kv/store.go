// Package kv persists whole JSON documents under named keys, mirroring the
// original system's single key-value store: every write replaces the full
// document, so a key is always either fully updated or untouched.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store reads and writes JSON documents on Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore constructs a store. The prefix namespaces all keys (e.g. "pos").
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + ":" + name
}

// GetJSON unmarshals the document stored at key into dst. It reports whether
// the key existed.
func (s *Store) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if s == nil || s.client == nil || key == "" {
		return false, nil
	}
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON serialises v and replaces the document at key. Durable keys carry
// no expiry.
func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	return s.set(ctx, key, v, 0)
}

// SetJSONTTL behaves like SetJSON but lets the key expire; used for
// transaction-scoped documents such as carts.
func (s *Store) SetJSONTTL(ctx context.Context, key string, v any, ttl time.Duration) error {
	return s.set(ctx, key, v, ttl)
}

func (s *Store) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if s == nil || s.client == nil || key == "" {
		return fmt.Errorf("kv store not configured")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.client.Set(ctx, s.key(key), data, ttl).Err()
}

// Delete removes the document at key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.client == nil || key == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(key)).Err()
}

// Ping probes the underlying Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("kv store not configured")
	}
	return s.client.Ping(ctx).Err()
}
