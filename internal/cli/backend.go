package cli

import (
	"context"
	"fmt"

	"github.com/bnema/bezier/internal/domain/repository"
	"github.com/bnema/bezier/internal/infrastructure/config"
	"github.com/bnema/bezier/internal/infrastructure/persistence/file"
	"github.com/bnema/bezier/internal/infrastructure/persistence/memory"
	"github.com/bnema/bezier/internal/infrastructure/persistence/redis"
	"github.com/bnema/bezier/internal/infrastructure/persistence/sqlite"
)

// OpenRepository opens the state backend selected in cfg.
func OpenRepository(ctx context.Context, cfg config.StorageConfig) (repository.StateRepository, error) {
	switch cfg.Backend {
	case config.StorageSQLite, "":
		return sqlite.OpenStateRepository(ctx, cfg.SQLitePath)
	case config.StorageRedis:
		return redis.Open(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.StorageFile:
		return file.NewStateRepository(cfg.FileDir)
	case config.StorageMemory:
		return memory.NewStateRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
