// Package store opens the draft store selected by configuration.
package store

import (
	"fmt"

	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/persistence/badger"
	"github.com/verifywire/verifywire-go/pkg/persistence/memory"
	"github.com/verifywire/verifywire-go/pkg/persistence/redis"
	"go.uber.org/zap"
)

// Open validates cfg and returns the matching IDraftStore.
func Open(cfg *config.StoreConfig, logger *zap.Logger) (persistence.IDraftStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case config.StoreType_Memory:
		return memory.NewMemoryPersistence(), nil
	case config.StoreType_Badger:
		return badger.NewBadgerPersistence(cfg.Path, logger)
	case config.StoreType_Redis:
		return redis.NewRedisPersistence(&redis.RedisConfig{
			Address:   cfg.RedisAddress,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
