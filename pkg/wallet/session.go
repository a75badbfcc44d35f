package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/types"
	"go.uber.org/zap"
)

// Session ties a wallet to the draft store: it remembers the connected
// identity and keeps the wallet on the registry network.
type Session struct {
	wallet  IWallet
	store   persistence.IDraftStore
	chainId config.ChainId
	logger  *zap.Logger
}

// NewSession accepts a nil wallet, which reports as unavailable.
func NewSession(w IWallet, store persistence.IDraftStore, chainId config.ChainId, logger *zap.Logger) *Session {
	return &Session{
		wallet:  w,
		store:   store,
		chainId: chainId,
		logger:  logger,
	}
}

func (s *Session) Wallet() IWallet {
	return s.wallet
}

func errNoWallet() error {
	return apperrors.Network("No wallet is available.", nil).
		WithNextStep("Start a wallet that exposes JSON-RPC, or set VWIRE_WALLET_URL, then reconnect.")
}

// Connect moves the wallet to the registry network, requests accounts and
// remembers the first one.
func (s *Session) Connect(ctx context.Context) (common.Address, error) {
	if s.wallet == nil {
		return common.Address{}, errNoWallet()
	}

	if err := EnsureNetwork(ctx, s.wallet, s.chainId); err != nil {
		return common.Address{}, err
	}

	accounts, err := s.wallet.RequestAccounts(ctx)
	if err != nil {
		return common.Address{}, apperrors.Network("The wallet did not share an account.", err).
			WithNextStep("Approve the connection request in your wallet, then reconnect.")
	}
	if len(accounts) == 0 {
		return common.Address{}, apperrors.Network("The wallet did not share an account.", nil).
			WithNextStep("Unlock your wallet, then reconnect.")
	}

	if ctx.Err() != nil {
		return common.Address{}, ctx.Err()
	}

	address := accounts[0]
	if err := s.store.SaveWalletIdentity(&types.WalletIdentity{Connected: true, Address: address}); err != nil {
		return common.Address{}, fmt.Errorf("failed to remember wallet: %w", err)
	}

	s.logger.Sugar().Infow("Wallet connected", "address", address.Hex(), "chainId", uint64(s.chainId))
	return address, nil
}

// Disconnect forgets the wallet identity. Drafts and receipts are kept.
func (s *Session) Disconnect() error {
	if err := s.store.ClearWalletIdentity(); err != nil {
		return fmt.Errorf("failed to forget wallet: %w", err)
	}
	s.logger.Sugar().Infow("Wallet disconnected")
	return nil
}

// State snapshots the wallet and the stored identity.
func (s *Session) State(ctx context.Context) (State, error) {
	var st State

	identity, err := s.store.LoadWalletIdentity()
	if err != nil {
		return st, fmt.Errorf("failed to load wallet identity: %w", err)
	}
	if identity != nil && identity.Connected {
		addr := identity.Address
		st.StoredSigner = &addr
	}

	if s.wallet == nil {
		return st, nil
	}
	st.Available = true

	accounts, err := s.wallet.Accounts(ctx)
	if err != nil {
		return st, apperrors.Network("The wallet could not be reached.", err)
	}
	if len(accounts) > 0 {
		st.Connected = true
		st.Account = accounts[0]
	}

	chainId, err := s.wallet.ChainID(ctx)
	if err != nil {
		return st, apperrors.Network("The wallet did not report its network.", err)
	}
	st.ChainID = chainId

	return st, nil
}

// Watch consumes wallet events until ctx is done or the wallet closes.
// Account changes update the stored identity; moving to another chain
// triggers a single silent attempt to switch back.
func (s *Session) Watch(ctx context.Context) error {
	if s.wallet == nil {
		return errNoWallet()
	}

	events := s.wallet.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.handleEvent(ctx, ev)
		}
	}
}

func (s *Session) handleEvent(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventAccountsChanged:
		if len(ev.Accounts) == 0 {
			if err := s.store.ClearWalletIdentity(); err != nil {
				s.logger.Sugar().Warnw("Failed to clear wallet identity", "error", err)
			}
			s.logger.Sugar().Infow("Wallet exposed no accounts, identity cleared")
			return
		}
		identity := &types.WalletIdentity{Connected: true, Address: ev.Accounts[0]}
		if err := s.store.SaveWalletIdentity(identity); err != nil {
			s.logger.Sugar().Warnw("Failed to update wallet identity", "error", err)
			return
		}
		s.logger.Sugar().Infow("Wallet account changed", "address", ev.Accounts[0].Hex())

	case EventChainChanged:
		if ev.ChainID == s.chainId {
			return
		}
		s.logger.Sugar().Infow("Wallet left the registry network, switching back",
			"chainId", uint64(ev.ChainID),
			"expected", uint64(s.chainId),
		)
		if err := s.wallet.SwitchChain(ctx, s.chainId); err != nil {
			s.logger.Sugar().Warnw("Switch back to registry network failed", "error", err)
		}
	}
}
