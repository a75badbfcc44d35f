package contractCaller

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
)

// RegistryStub is an in-memory IContractCaller for tests. PublishRails
// stores the commitments under the normalized short code owned by Owner.
type RegistryStub struct {
	mu sync.Mutex

	Address    common.Address
	Owner      common.Address
	GetErr     error
	PublishErr error

	records   map[string]*types.OnChainRecord
	Publishes int
	Reads     int
}

var _ IContractCaller = (*RegistryStub)(nil)

func NewRegistryStub() *RegistryStub {
	return &RegistryStub{
		Address: common.HexToAddress("0x00000000000000000000000000000000000d0a11"),
		Owner:   common.HexToAddress("0x00000000000000000000000000000000000b0a11"),
		records: make(map[string]*types.OnChainRecord),
	}
}

// SetRecord installs rec for shortCode as if it had been published.
func (r *RegistryStub) SetRecord(shortCode string, rec *types.OnChainRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records[normalize.NormalizeShortCode(shortCode)] = &cp
}

func (r *RegistryStub) GetRecord(ctx context.Context, shortCode string) (*types.OnChainRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Reads++
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	rec, ok := r.records[normalize.NormalizeShortCode(shortCode)]
	if !ok {
		return &types.OnChainRecord{}, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *RegistryStub) PublishRails(ctx context.Context, shortCode string, commitments types.RailCommitments) (*ethTypes.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.PublishErr != nil {
		return nil, r.PublishErr
	}
	r.Publishes++

	code := normalize.NormalizeShortCode(shortCode)
	version := uint32(1)
	if prev, ok := r.records[code]; ok {
		version = prev.Version + 1
	}
	r.records[code] = &types.OnChainRecord{
		Owner:           r.Owner,
		UpdatedAt:       1_700_000_000,
		Version:         version,
		RailCommitments: commitments,
	}

	txHash := common.BigToHash(big.NewInt(int64(r.Publishes)))
	return &ethTypes.Receipt{
		Status:      ethTypes.ReceiptStatusSuccessful,
		TxHash:      txHash,
		BlockNumber: big.NewInt(int64(r.Publishes)),
	}, nil
}

func (r *RegistryStub) RegistryAddress() common.Address {
	return r.Address
}
