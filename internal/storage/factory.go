package storage

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/nexus-docs/internal/db"
)

// Options configures New.
type Options struct {
	Driver    string
	DB        *db.DB
	RedisAddr string
	RedisDB   int
}

// New creates a KV for the given driver: "sqlite", "redis" or "memory".
func New(ctx context.Context, opts Options) (KV, error) {
	switch opts.Driver {
	case "sqlite", "":
		if opts.DB == nil {
			return nil, fmt.Errorf("sqlite driver requires a database")
		}
		return NewSQLite(opts.DB), nil
	case "redis":
		return NewRedis(ctx, opts.RedisAddr, opts.RedisDB)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", opts.Driver)
	}
}
