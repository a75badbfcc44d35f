package memory

import (
	"sync"

	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/types"
)

// MemoryPersistence is an in-memory draft store. Everything is lost when the
// process exits, so it suits tests and one-shot checks.
//
// Records are held in their serialized form which keeps callers from mutating
// stored values through the pointers they passed in.
type MemoryPersistence struct {
	mu      sync.RWMutex
	records map[string][]byte
	closed  bool
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{
		records: make(map[string][]byte),
	}
}

func save[T any](m *MemoryPersistence, key, name string, v *T) error {
	data, err := persistence.Marshal(v, name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return persistence.ErrClosed
	}
	m.records[key] = data
	return nil
}

func load[T any](m *MemoryPersistence, key, name string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, persistence.ErrClosed
	}

	data, exists := m.records[key]
	if !exists {
		return nil, nil
	}
	return persistence.Unmarshal[T](data, name)
}

func (m *MemoryPersistence) SaveClaimDraft(draft *types.ClaimDraft) error {
	return save(m, persistence.KeyClaimDraft, "ClaimDraft", draft)
}

func (m *MemoryPersistence) LoadClaimDraft() (*types.ClaimDraft, error) {
	return load[types.ClaimDraft](m, persistence.KeyClaimDraft, "ClaimDraft")
}

func (m *MemoryPersistence) SaveRailsDraft(draft *types.RailsDraft) error {
	return save(m, persistence.KeyRailsDraft, "RailsDraft", draft)
}

func (m *MemoryPersistence) LoadRailsDraft() (*types.RailsDraft, error) {
	return load[types.RailsDraft](m, persistence.KeyRailsDraft, "RailsDraft")
}

func (m *MemoryPersistence) SaveReceipt(receipt *types.SignedAttestation) error {
	return save(m, persistence.KeyReceipt, "SignedAttestation", receipt)
}

func (m *MemoryPersistence) LoadReceipt() (*types.SignedAttestation, error) {
	return load[types.SignedAttestation](m, persistence.KeyReceipt, "SignedAttestation")
}

func (m *MemoryPersistence) SaveWalletIdentity(identity *types.WalletIdentity) error {
	return save(m, persistence.KeyWalletIdentity, "WalletIdentity", identity)
}

func (m *MemoryPersistence) LoadWalletIdentity() (*types.WalletIdentity, error) {
	return load[types.WalletIdentity](m, persistence.KeyWalletIdentity, "WalletIdentity")
}

func (m *MemoryPersistence) ClearWalletIdentity() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return persistence.ErrClosed
	}
	delete(m.records, persistence.KeyWalletIdentity)
	return nil
}

// Close drops all records. Idempotent.
func (m *MemoryPersistence) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.records = nil
	return nil
}

func (m *MemoryPersistence) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return persistence.ErrClosed
	}
	return nil
}
