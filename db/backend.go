package db

import (
	"errors"
	"fmt"
	"log"

	"sharebox/config"
)

// ErrClosed is returned by a backend used after Close.
var ErrClosed = errors.New("storage backend is closed")

// Backend is the catalog's durable key-value storage. Values are opaque strings,
// a missing key is reported as found == false with a nil error.
type Backend interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// BatchSetter is implemented by backends that can write several keys as one
// operation. The store prefers it so a notify costs a single write.
type BatchSetter interface {
	SetMany(values map[string]string) error
}

// SetAll writes values through SetMany when the backend supports it, and key by
// key otherwise. It stops at the first failing key.
func SetAll(b Backend, values map[string]string) error {
	if bs, ok := b.(BatchSetter); ok {
		return bs.SetMany(values)
	}
	for key, value := range values {
		if err := b.Set(key, value); err != nil {
			return fmt.Errorf("failed to set key '%s': %w", key, err)
		}
	}
	return nil
}

// Open creates the backend selected by cfg.StorageDriver.
func Open(cfg *config.Config) (Backend, error) {
	log.Printf("INFO: Opening %s storage backend", cfg.StorageDriver)
	switch cfg.StorageDriver {
	case config.StorageFile, "":
		return NewFileBackend(cfg)
	case config.StorageSQLite:
		return NewSQLiteBackend(cfg.SQLitePath)
	case config.StorageRedis:
		return NewRedisBackend(cfg.RedisAddr, cfg.RedisPrefix)
	case config.StorageMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver '%s'", cfg.StorageDriver)
	}
}
