package badger

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/types"
	"go.uber.org/zap"
)

// BadgerPersistence is a disk-backed draft store using Badger.
// It is the default store of the CLI so drafts survive restarts.
type BadgerPersistence struct {
	db       *badgerdb.DB
	logger   *zap.Logger
	gcCancel context.CancelFunc
	gcWg     sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
}

// NewBadgerPersistence opens (or creates) a Badger database at dataPath.
// SyncWrites is enabled and a background goroutine runs value log GC.
func NewBadgerPersistence(dataPath string, logger *zap.Logger) (*BadgerPersistence, error) {
	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	opts := badgerdb.DefaultOptions(absPath)
	opts.Logger = newZapBadgerLogger(logger)
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	opts.NumVersionsToKeep = 1

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", absPath, err)
	}

	bp := &BadgerPersistence{
		db:     db,
		logger: logger,
	}

	if err := bp.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bp.gcCancel = cancel
	bp.gcWg.Add(1)
	go bp.runGC(ctx)

	logger.Sugar().Debugw("Badger draft store opened", "path", absPath)

	return bp, nil
}

func (b *BadgerPersistence) initSchema() error {
	return b.db.Update(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(persistence.KeySchemaVersion))
		if err == badgerdb.ErrKeyNotFound {
			return txn.Set([]byte(persistence.KeySchemaVersion), []byte(persistence.CurrentSchemaVersion))
		}
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		var existingVersion string
		err = item.Value(func(val []byte) error {
			existingVersion = string(val)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to read schema version value: %w", err)
		}

		if existingVersion != persistence.CurrentSchemaVersion {
			return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, persistence.CurrentSchemaVersion)
		}
		return nil
	})
}

func (b *BadgerPersistence) runGC(ctx context.Context) {
	defer b.gcWg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := b.db.RunValueLogGC(0.5)
			if err != nil && err != badgerdb.ErrNoRewrite {
				b.logger.Sugar().Warnw("Badger GC error", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *BadgerPersistence) put(key string, data []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return persistence.ErrClosed
	}

	err := b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// get returns nil, nil when the key is absent.
func (b *BadgerPersistence) get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, persistence.ErrClosed
	}

	var data []byte
	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (b *BadgerPersistence) delete(key string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return persistence.ErrClosed
	}

	err := b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func save[T any](b *BadgerPersistence, key, name string, v *T) error {
	data, err := persistence.Marshal(v, name)
	if err != nil {
		return err
	}
	return b.put(key, data)
}

func load[T any](b *BadgerPersistence, key, name string) (*T, error) {
	data, err := b.get(key)
	if err != nil || data == nil {
		return nil, err
	}
	return persistence.Unmarshal[T](data, name)
}

func (b *BadgerPersistence) SaveClaimDraft(draft *types.ClaimDraft) error {
	return save(b, persistence.KeyClaimDraft, "ClaimDraft", draft)
}

func (b *BadgerPersistence) LoadClaimDraft() (*types.ClaimDraft, error) {
	return load[types.ClaimDraft](b, persistence.KeyClaimDraft, "ClaimDraft")
}

func (b *BadgerPersistence) SaveRailsDraft(draft *types.RailsDraft) error {
	return save(b, persistence.KeyRailsDraft, "RailsDraft", draft)
}

func (b *BadgerPersistence) LoadRailsDraft() (*types.RailsDraft, error) {
	return load[types.RailsDraft](b, persistence.KeyRailsDraft, "RailsDraft")
}

func (b *BadgerPersistence) SaveReceipt(receipt *types.SignedAttestation) error {
	return save(b, persistence.KeyReceipt, "SignedAttestation", receipt)
}

func (b *BadgerPersistence) LoadReceipt() (*types.SignedAttestation, error) {
	return load[types.SignedAttestation](b, persistence.KeyReceipt, "SignedAttestation")
}

func (b *BadgerPersistence) SaveWalletIdentity(identity *types.WalletIdentity) error {
	return save(b, persistence.KeyWalletIdentity, "WalletIdentity", identity)
}

func (b *BadgerPersistence) LoadWalletIdentity() (*types.WalletIdentity, error) {
	return load[types.WalletIdentity](b, persistence.KeyWalletIdentity, "WalletIdentity")
}

func (b *BadgerPersistence) ClearWalletIdentity() error {
	return b.delete(persistence.KeyWalletIdentity)
}

// Close stops GC and closes the database. Idempotent.
func (b *BadgerPersistence) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	if b.gcCancel != nil {
		b.gcCancel()
	}
	b.gcWg.Wait()

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger database: %w", err)
	}

	b.logger.Sugar().Debug("Badger draft store closed")
	return nil
}

// HealthCheck verifies the database is readable and carries a schema version.
func (b *BadgerPersistence) HealthCheck() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return persistence.ErrClosed
	}

	return b.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get([]byte(persistence.KeySchemaVersion))
		if err == badgerdb.ErrKeyNotFound {
			return fmt.Errorf("schema version not found - database may be corrupted")
		}
		return err
	})
}
