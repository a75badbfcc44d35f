package wallet

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/verifywire/verifywire-go/pkg/clients/walletProvider"
	"github.com/verifywire/verifywire-go/pkg/config"
	"go.uber.org/zap"
)

const DefaultPollInterval = 2 * time.Second

// RPCWallet adapts a JSON-RPC wallet provider to IWallet. JSON-RPC has no
// push channel, so events are synthesized by polling eth_accounts and
// eth_chainId once Events is first called.
type RPCWallet struct {
	provider     walletProvider.IWalletProvider
	logger       *zap.Logger
	pollInterval time.Duration

	startOnce sync.Once
	closeOnce sync.Once
	cancel    context.CancelFunc
	events    chan Event
	done      chan struct{}
}

func NewRPCWallet(provider walletProvider.IWalletProvider, pollInterval time.Duration, logger *zap.Logger) *RPCWallet {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &RPCWallet{
		provider:     provider,
		logger:       logger,
		pollInterval: pollInterval,
		events:       make(chan Event, 8),
		done:         make(chan struct{}),
	}
}

func parseAccounts(raw []string) ([]common.Address, error) {
	accounts := make([]common.Address, 0, len(raw))
	for _, a := range raw {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("wallet returned malformed account %q", a)
		}
		accounts = append(accounts, common.HexToAddress(a))
	}
	return accounts, nil
}

func (w *RPCWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	raw, err := w.provider.EthRequestAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return parseAccounts(raw)
}

func (w *RPCWallet) Accounts(ctx context.Context) ([]common.Address, error) {
	raw, err := w.provider.EthAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return parseAccounts(raw)
}

func (w *RPCWallet) ChainID(ctx context.Context) (config.ChainId, error) {
	raw, err := w.provider.EthChainId(ctx)
	if err != nil {
		return 0, err
	}
	id, err := hexutil.DecodeUint64(raw)
	if err != nil {
		return 0, fmt.Errorf("wallet returned malformed chain id %q: %w", raw, err)
	}
	return config.ChainId(id), nil
}

func (w *RPCWallet) SwitchChain(ctx context.Context, chainId config.ChainId) error {
	return w.provider.WalletSwitchEthereumChain(ctx, chainId.Hex())
}

func (w *RPCWallet) AddChain(ctx context.Context, params *config.ChainParams) error {
	return w.provider.WalletAddEthereumChain(ctx, params)
}

func (w *RPCWallet) PersonalSign(ctx context.Context, message string, account common.Address) ([]byte, error) {
	raw, err := w.provider.PersonalSign(ctx, message, account.Hex())
	if err != nil {
		return nil, err
	}
	sig, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("wallet returned malformed signature: %w", err)
	}
	if len(sig) != 65 {
		return nil, fmt.Errorf("wallet returned a %d byte signature, expected 65", len(sig))
	}
	return sig, nil
}

func (w *RPCWallet) SignTransaction(ctx context.Context, from common.Address, tx *ethTypes.Transaction) (*ethTypes.Transaction, error) {
	raw, err := w.provider.EthSignTransaction(ctx, from.Hex(), TransactionToRequest(tx))
	if err != nil {
		return nil, err
	}
	rawBytes, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("wallet returned malformed transaction: %w", err)
	}

	signed := new(ethTypes.Transaction)
	if err := signed.UnmarshalBinary(rawBytes); err != nil {
		return nil, fmt.Errorf("failed to decode signed transaction: %w", err)
	}
	return signed, nil
}

// TransactionToRequest renders tx as an eth_signTransaction request object.
func TransactionToRequest(tx *ethTypes.Transaction) map[string]interface{} {
	req := map[string]interface{}{
		"nonce": hexutil.EncodeUint64(tx.Nonce()),
		"gas":   hexutil.EncodeUint64(tx.Gas()),
		"value": hexutil.EncodeBig(tx.Value()),
		"data":  hexutil.Encode(tx.Data()),
	}
	if tx.To() != nil {
		req["to"] = tx.To().Hex()
	}
	if tx.ChainId() != nil && tx.ChainId().Sign() > 0 {
		req["chainId"] = hexutil.EncodeBig(tx.ChainId())
	}
	if tx.Type() == ethTypes.DynamicFeeTxType {
		req["type"] = hexutil.EncodeUint64(uint64(tx.Type()))
		req["maxFeePerGas"] = hexutil.EncodeBig(tx.GasFeeCap())
		req["maxPriorityFeePerGas"] = hexutil.EncodeBig(tx.GasTipCap())
	} else {
		req["gasPrice"] = hexutil.EncodeBig(tx.GasPrice())
	}
	return req
}

func (w *RPCWallet) Events() <-chan Event {
	w.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		w.cancel = cancel
		go w.poll(ctx)
	})
	return w.events
}

func (w *RPCWallet) poll(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	var lastAccounts []common.Address
	var lastChain config.ChainId
	first := true

	for {
		accounts, aerr := w.Accounts(ctx)
		chain, cerr := w.ChainID(ctx)
		if aerr != nil || cerr != nil {
			w.logger.Sugar().Debugw("Wallet poll failed", "accountsError", aerr, "chainError", cerr)
		} else {
			if !first && !slices.Equal(accounts, lastAccounts) {
				if !w.emit(ctx, Event{Kind: EventAccountsChanged, Accounts: accounts, ChainID: chain}) {
					return
				}
			}
			if !first && chain != lastChain {
				if !w.emit(ctx, Event{Kind: EventChainChanged, Accounts: accounts, ChainID: chain}) {
					return
				}
			}
			lastAccounts, lastChain, first = accounts, chain, false
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *RPCWallet) emit(ctx context.Context, ev Event) bool {
	select {
	case w.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *RPCWallet) Close() {
	w.closeOnce.Do(func() {
		// Without a running poller there is nobody else to close the channel.
		w.startOnce.Do(func() { close(w.events) })
		if w.cancel != nil {
			w.cancel()
			<-w.done
		}
		w.provider.Close()
	})
}
