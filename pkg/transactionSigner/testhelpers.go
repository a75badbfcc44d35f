package transactionSigner

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// FakeChainClient is an in-memory ChainClient for tests. Sent transactions
// are mined immediately with ReceiptStatus.
type FakeChainClient struct {
	mu sync.Mutex

	ChainIDValue  *big.Int
	ChainIDErr    error
	ChainIDCalls  int
	BaseFee       *big.Int
	TipCap        *big.Int
	TipCapErr     error
	GasEstimate   uint64
	Nonce         uint64
	ReceiptStatus uint64
	SendErr       error

	Sent []*types.Transaction
}

var _ ChainClient = (*FakeChainClient)(nil)

func NewFakeChainClient(chainID uint64) *FakeChainClient {
	return &FakeChainClient{
		ChainIDValue:  new(big.Int).SetUint64(chainID),
		BaseFee:       big.NewInt(1_000),
		TipCap:        big.NewInt(100),
		GasEstimate:   100_000,
		ReceiptStatus: types.ReceiptStatusSuccessful,
	}
}

func (f *FakeChainClient) ChainID(ctx context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ChainIDCalls++
	if f.ChainIDErr != nil {
		return nil, f.ChainIDErr
	}
	return f.ChainIDValue, nil
}

func (f *FakeChainClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	if f.TipCapErr != nil {
		return nil, f.TipCapErr
	}
	return f.TipCap, nil
}

func (f *FakeChainClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: f.BaseFee}, nil
}

func (f *FakeChainClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return f.GasEstimate, nil
}

func (f *FakeChainClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return f.Nonce, nil
}

func (f *FakeChainClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, tx)
	return nil
}

func (f *FakeChainClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tx := range f.Sent {
		if tx.Hash() == txHash {
			return &types.Receipt{
				Status:      f.ReceiptStatus,
				TxHash:      txHash,
				GasUsed:     tx.Gas(),
				BlockNumber: big.NewInt(1),
			}, nil
		}
	}
	return nil, ethereum.NotFound
}

func (f *FakeChainClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}
