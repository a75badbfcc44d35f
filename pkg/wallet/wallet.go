// Package wallet models the external wallet a bank operator signs with.
//
// Wallet notifications are delivered as Events on a channel; callers that
// need the wallet's current condition take a State snapshot rather than
// querying the wallet ad hoc.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/clients/walletProvider"
	"github.com/verifywire/verifywire-go/pkg/config"
)

// IWallet is the subset of EIP-1193 VerifyWire relies on.
type IWallet interface {
	// RequestAccounts prompts the user to expose accounts.
	RequestAccounts(ctx context.Context) ([]common.Address, error)

	// Accounts lists the accounts already exposed, without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)

	ChainID(ctx context.Context) (config.ChainId, error)

	// SwitchChain fails with an error satisfying IsUnrecognizedChain when the
	// wallet does not know the chain.
	SwitchChain(ctx context.Context, chainId config.ChainId) error

	AddChain(ctx context.Context, params *config.ChainParams) error

	// PersonalSign returns the 65 byte EIP-191 signature over message.
	PersonalSign(ctx context.Context, message string, account common.Address) ([]byte, error)

	// SignTransaction signs tx as from without broadcasting it.
	SignTransaction(ctx context.Context, from common.Address, tx *ethTypes.Transaction) (*ethTypes.Transaction, error)

	// Events streams account and chain changes. The channel closes with the wallet.
	Events() <-chan Event

	Close()
}

type EventKind string

const (
	EventAccountsChanged EventKind = "accountsChanged"
	EventChainChanged    EventKind = "chainChanged"
)

type Event struct {
	Kind     EventKind
	Accounts []common.Address
	ChainID  config.ChainId
}

// State is a point-in-time view of the wallet used to gate signing.
type State struct {
	// Available is false when no wallet provider is configured at all.
	Available bool
	// Connected means the wallet currently exposes at least one account.
	Connected bool
	Account   common.Address
	ChainID   config.ChainId
	// StoredSigner is the identity remembered in the draft store, if any.
	StoredSigner *common.Address
}

func (s State) OnChain(chainId config.ChainId) bool {
	return s.Available && s.ChainID == chainId
}

var ErrUnrecognizedChain = errors.New("Unrecognized chain ID")

// IsUnrecognizedChain reports whether err is a wallet's "unknown chain" answer,
// either as the 4902 error code or by its message.
func IsUnrecognizedChain(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnrecognizedChain) {
		return true
	}
	if walletProvider.ErrorCode(err) == walletProvider.ErrorCodeUnrecognizedChain {
		return true
	}
	return strings.Contains(err.Error(), "Unrecognized chain ID")
}

// EnsureNetwork switches the wallet to chainId, registering the chain first
// when the wallet does not know it.
func EnsureNetwork(ctx context.Context, w IWallet, chainId config.ChainId) error {
	err := w.SwitchChain(ctx, chainId)
	if err == nil {
		return nil
	}
	if !IsUnrecognizedChain(err) {
		return apperrors.Network("The wallet could not switch networks.", err)
	}

	params, perr := config.GetChainParams(chainId)
	if perr != nil {
		return apperrors.Configuration(fmt.Sprintf("Chain %d cannot be added to the wallet.", chainId), perr)
	}
	if err := w.AddChain(ctx, params); err != nil {
		return apperrors.Network(fmt.Sprintf("The wallet could not add %s.", params.ChainName), err)
	}
	return nil
}
