package kv

import (
	"context"
	"fmt"

	"github.com/lucysperfumery/admin/internal/config"
	"github.com/lucysperfumery/admin/internal/database"
)

// Open builds the store selected by cfg.Session.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Session.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Session.FilePath)
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg.Session.RedisURL)
	case config.BackendPostgres:
		db, err := database.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
