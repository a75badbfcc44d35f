package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/verifywire/verifywire-go/pkg/config"
)

// LocalWallet is an in-process wallet holding a single key. It behaves like a
// browser wallet (it must be asked for accounts, only switches to chains it
// knows and reports changes as events) and is meant for devnet use and tests.
type LocalWallet struct {
	mu        sync.Mutex
	key       *ecdsa.PrivateKey
	address   common.Address
	chainId   config.ChainId
	known     map[config.ChainId]bool
	connected bool
	closed    bool
	events    chan Event
}

// NewLocalWallet starts on chainId, which is the only chain it knows.
func NewLocalWallet(key *ecdsa.PrivateKey, chainId config.ChainId) *LocalWallet {
	return &LocalWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainId: chainId,
		known:   map[config.ChainId]bool{chainId: true},
		events:  make(chan Event, 16),
	}
}

func NewLocalWalletFromHex(hexKey string, chainId config.ChainId) (*LocalWallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid wallet key: %w", err)
	}
	return NewLocalWallet(key, chainId), nil
}

func (w *LocalWallet) Address() common.Address {
	return w.address
}

func (w *LocalWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	w.connected = true
	return []common.Address{w.address}, nil
}

func (w *LocalWallet) Accounts(ctx context.Context) ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	if !w.connected {
		return []common.Address{}, nil
	}
	return []common.Address{w.address}, nil
}

func (w *LocalWallet) ChainID(ctx context.Context) (config.ChainId, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return 0, err
	}
	return w.chainId, nil
}

func (w *LocalWallet) SwitchChain(ctx context.Context, chainId config.ChainId) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return err
	}
	if !w.known[chainId] {
		return fmt.Errorf("%w: %s", ErrUnrecognizedChain, chainId.Hex())
	}
	w.setChainLocked(chainId)
	return nil
}

// AddChain registers the chain and switches to it, as browser wallets do.
func (w *LocalWallet) AddChain(ctx context.Context, params *config.ChainParams) error {
	if params == nil {
		return fmt.Errorf("chain params cannot be nil")
	}
	id, err := hexutil.DecodeUint64(params.ChainID)
	if err != nil {
		return fmt.Errorf("invalid chain id %q: %w", params.ChainID, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return err
	}
	w.known[config.ChainId(id)] = true
	w.setChainLocked(config.ChainId(id))
	return nil
}

// SetChain simulates the user changing networks from the wallet itself.
func (w *LocalWallet) SetChain(chainId config.ChainId) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.known[chainId] = true
	w.setChainLocked(chainId)
}

// Revoke simulates the user disconnecting the site from the wallet.
func (w *LocalWallet) Revoke() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.connected {
		return
	}
	w.connected = false
	w.emitLocked(Event{Kind: EventAccountsChanged, Accounts: []common.Address{}, ChainID: w.chainId})
}

func (w *LocalWallet) setChainLocked(chainId config.ChainId) {
	if w.chainId == chainId {
		return
	}
	w.chainId = chainId
	w.emitLocked(Event{Kind: EventChainChanged, ChainID: chainId})
}

// emitLocked drops the event when nobody keeps up with the channel.
func (w *LocalWallet) emitLocked(ev Event) {
	if w.closed {
		return
	}
	select {
	case w.events <- ev:
	default:
	}
}

func (w *LocalWallet) PersonalSign(ctx context.Context, message string, account common.Address) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	if !w.connected || account != w.address {
		return nil, fmt.Errorf("account %s is not exposed by this wallet", account.Hex())
	}

	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), w.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

func (w *LocalWallet) SignTransaction(ctx context.Context, from common.Address, tx *ethTypes.Transaction) (*ethTypes.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return nil, err
	}
	if !w.connected || from != w.address {
		return nil, fmt.Errorf("account %s is not exposed by this wallet", from.Hex())
	}

	chainId := tx.ChainId()
	if chainId == nil || chainId.Sign() == 0 {
		chainId = new(big.Int).SetUint64(uint64(w.chainId))
	}
	signed, err := ethTypes.SignTx(tx, ethTypes.LatestSignerForChainID(chainId), w.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

func (w *LocalWallet) Events() <-chan Event {
	return w.events
}

func (w *LocalWallet) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	close(w.events)
}

func (w *LocalWallet) checkOpen() error {
	if w.closed {
		return fmt.Errorf("wallet is closed")
	}
	return nil
}
