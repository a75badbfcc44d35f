package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/types"
	"go.uber.org/zap"
)

const (
	defaultNamespace = "vwire:"
	opTimeout        = 5 * time.Second
)

// RedisPersistence keeps drafts in Redis so several operator workstations
// can share one onboarding session.
type RedisPersistence struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	mu        sync.RWMutex
	closed    bool
}

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string
	// Password is the optional Redis password
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// KeyPrefix is prepended to every key, e.g. "bank-a:" gives
	// "bank-a:vwire:draft:claim".
	KeyPrefix string
}

// NewRedisPersistence connects to Redis and initializes the schema marker.
func NewRedisPersistence(cfg *RedisConfig, logger *zap.Logger) (*RedisPersistence, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}

	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	rp := &RedisPersistence{
		client:    client,
		logger:    logger,
		keyPrefix: cfg.KeyPrefix,
	}

	if err := rp.initSchema(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Sugar().Debugw("Redis draft store connected", "address", cfg.Address, "db", cfg.DB, "key_prefix", cfg.KeyPrefix)

	return rp, nil
}

func (r *RedisPersistence) prefixKey(key string) string {
	return r.keyPrefix + defaultNamespace + key
}

func (r *RedisPersistence) initSchema(ctx context.Context) error {
	schemaKey := r.prefixKey(persistence.KeySchemaVersion)

	existingVersion, err := r.client.Get(ctx, schemaKey).Result()
	if err == redis.Nil {
		return r.client.Set(ctx, schemaKey, persistence.CurrentSchemaVersion, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if existingVersion != persistence.CurrentSchemaVersion {
		return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, persistence.CurrentSchemaVersion)
	}
	return nil
}

func save[T any](r *RedisPersistence, key, name string, v *T) error {
	data, err := persistence.Marshal(v, name)
	if err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefixKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to Redis: %w", name, err)
	}
	return nil
}

func load[T any](r *RedisPersistence, key, name string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.prefixKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s from Redis: %w", name, err)
	}
	return persistence.Unmarshal[T](data, name)
}

func (r *RedisPersistence) SaveClaimDraft(draft *types.ClaimDraft) error {
	return save(r, persistence.KeyClaimDraft, "ClaimDraft", draft)
}

func (r *RedisPersistence) LoadClaimDraft() (*types.ClaimDraft, error) {
	return load[types.ClaimDraft](r, persistence.KeyClaimDraft, "ClaimDraft")
}

func (r *RedisPersistence) SaveRailsDraft(draft *types.RailsDraft) error {
	return save(r, persistence.KeyRailsDraft, "RailsDraft", draft)
}

func (r *RedisPersistence) LoadRailsDraft() (*types.RailsDraft, error) {
	return load[types.RailsDraft](r, persistence.KeyRailsDraft, "RailsDraft")
}

func (r *RedisPersistence) SaveReceipt(receipt *types.SignedAttestation) error {
	return save(r, persistence.KeyReceipt, "SignedAttestation", receipt)
}

func (r *RedisPersistence) LoadReceipt() (*types.SignedAttestation, error) {
	return load[types.SignedAttestation](r, persistence.KeyReceipt, "SignedAttestation")
}

func (r *RedisPersistence) SaveWalletIdentity(identity *types.WalletIdentity) error {
	return save(r, persistence.KeyWalletIdentity, "WalletIdentity", identity)
}

func (r *RedisPersistence) LoadWalletIdentity() (*types.WalletIdentity, error) {
	return load[types.WalletIdentity](r, persistence.KeyWalletIdentity, "WalletIdentity")
}

func (r *RedisPersistence) ClearWalletIdentity() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefixKey(persistence.KeyWalletIdentity)).Err(); err != nil {
		return fmt.Errorf("failed to clear wallet identity: %w", err)
	}
	return nil
}

// Close shuts down the Redis client. Idempotent.
func (r *RedisPersistence) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}

	r.logger.Sugar().Debug("Redis draft store closed")
	return nil
}

// HealthCheck pings Redis and verifies the schema marker exists.
func (r *RedisPersistence) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return persistence.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	_, err := r.client.Get(ctx, r.prefixKey(persistence.KeySchemaVersion)).Result()
	if err == redis.Nil {
		return fmt.Errorf("schema version not found - database may not be properly initialized")
	}
	if err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	return nil
}
