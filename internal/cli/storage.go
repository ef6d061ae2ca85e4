package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/scormkit/internal/config"
	"github.com/aretw0/scormkit/pkg/adapters/file"
	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/adapters/redis"
	"github.com/aretw0/scormkit/pkg/persistence/middleware"
	"github.com/aretw0/scormkit/pkg/ports"
	"github.com/google/uuid"
)

// Inventory is a storage backend that can enumerate and snapshot its namespaces.
type Inventory interface {
	Namespaces(ctx context.Context) ([]string, error)
}

// Backend is an opened fallback storage.
type Backend struct {
	Storage   ports.Storage
	Namespace string

	inventory Inventory
	close     func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Namespaces lists the storage sessions of the backend's driver.
func (b *Backend) Namespaces(ctx context.Context) ([]string, error) {
	if b.inventory == nil {
		return []string{b.Namespace}, nil
	}
	ns, err := b.inventory.Namespaces(ctx)
	if err != nil {
		return nil, err
	}
	slices.Sort(ns)
	return ns, nil
}

// StorageOptions tweak OpenStorage.
type StorageOptions struct {
	// Redact masks values of keys matching these patterns on read.
	Redact []string
}

// NewNamespace returns a fresh storage session ID.
func NewNamespace() string {
	return uuid.NewString()
}

// OpenStorage builds the fallback storage selected by cfg for namespace.
// An empty namespace falls back to cfg.Storage.Namespace, then to a fresh ID.
func OpenStorage(cfg config.Config, namespace string, opts StorageOptions) (*Backend, error) {
	if namespace == "" {
		namespace = cfg.Storage.Namespace
	}
	if namespace == "" {
		namespace = NewNamespace()
	}

	b := &Backend{Namespace: namespace}
	sc := cfg.Storage

	switch sc.Driver {
	case config.DriverMemory:
		b.Storage = memory.NewStore()
	case config.DriverFile:
		store := file.New(sc.Dir, namespace)
		b.Storage, b.inventory = store, store
	case config.DriverRedis:
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB,
			redis.WithPrefix(sc.Redis.Prefix),
			redis.WithNamespace(namespace),
			redis.WithTTL(sc.Redis.TTL),
		)
		b.Storage, b.inventory, b.close = store, store, store.Close
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, sc.Driver)
	}

	var mws []middleware.Middleware
	if len(opts.Redact) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(opts.Redact))
	}
	if sc.EncryptionKey != "" {
		key, err := sc.Key()
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	b.Storage = middleware.Chain(b.Storage, mws...)

	return b, nil
}

// Snapshot reads every item of the backend's namespace through its middlewares.
func Snapshot(ctx context.Context, store ports.Storage) ([]string, map[string]string, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return nil, nil, err
	}
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := store.GetItem(ctx, k)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %q: %w", k, err)
		}
		values[k] = v
	}
	return keys, values, nil
}
