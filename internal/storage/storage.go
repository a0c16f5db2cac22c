package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	cfg "github.com/templui/goaltracker/internal/config"
)

var ErrNotFound = errors.New("record not found")

// Storage is durable key-value storage for the tracker's records
type Storage interface {
	// Get returns the value stored at key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Put stores value at key, replacing any previous value
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New picks the backend named by STORAGE_DRIVER.
// db is only used by the SQL drivers and may be nil otherwise.
func New(c *cfg.Config, db *sqlx.DB) (Storage, error) {
	slog.Info("initializing storage", "driver", c.StorageDriver)

	switch c.StorageDriver {
	case cfg.DriverSQLite, cfg.DriverPostgres:
		if db == nil {
			return nil, fmt.Errorf("storage driver %q requires a database", c.StorageDriver)
		}
		return NewSQLStorage(db), nil
	case cfg.DriverFile:
		return NewFileStorage(c.DataDir)
	case cfg.DriverS3:
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
			Prefix:    c.S3Prefix,
		})
	case cfg.DriverMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
