package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/scormkit/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultNamespace is used when no storage session ID is given.
const DefaultNamespace = "default"

// Store implements ports.Storage using Redis.
// Each namespace is one hash; an index sorted set tracks namespaces by expiry.
type Store struct {
	client    *backend.Client
	prefix    string
	namespace string
	ttl       time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for a storage session, refreshed on every write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithNamespace selects the storage session.
func WithNamespace(namespace string) Option {
	return func(s *Store) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client:    client,
		prefix:    "scormkit:storage:",
		namespace: DefaultNamespace,
		ttl:       0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key() string {
	return s.prefix + s.namespace
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// GetItem reads key from the namespace hash.
func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	val, err := s.client.HGet(ctx, s.key(), key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrItemNotFound
		}
		return "", fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// SetItem writes key to the namespace hash and refreshes its expiry.
func (s *Store) SetItem(ctx context.Context, key, value string) error {
	pipe := s.client.TxPipeline()

	pipe.HSet(ctx, s.key(), key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(), s.ttl)
	}

	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: s.namespace,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// RemoveItem deletes key from the namespace hash.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.key(), key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.HKeys(ctx, s.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}

// Clear removes the namespace.
func (s *Store) Clear(ctx context.Context) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key())
	pipe.ZRem(ctx, s.indexKey(), s.namespace)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear redis storage: %w", err)
	}
	return nil
}

// Snapshot returns every item of the namespace.
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	items, err := s.client.HGetAll(ctx, s.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read redis storage: %w", err)
	}
	return items, nil
}

// Namespaces returns live storage sessions, pruning expired ones from the index.
func (s *Store) Namespaces(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired storage sessions: %w", err)
	}

	namespaces, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list storage sessions: %w", err)
	}
	return namespaces, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
