package attestation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/persistence/memory"
	"github.com/verifywire/verifywire-go/pkg/persistence/persistencetest"
	"github.com/verifywire/verifywire-go/pkg/wallet"
	"go.uber.org/zap/zaptest"
)

const anvilKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var fixedNow = time.Unix(1_700_000_000, 0)

type harness struct {
	wallet    *wallet.LocalWallet
	registry  *contractCaller.RegistryStub
	store     *memory.MemoryPersistence
	network   *config.NetworkConfig
	publisher *Publisher
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	w, err := wallet.NewLocalWalletFromHex(anvilKey, config.ChainId_DomaTestnet)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	_, err = w.RequestAccounts(context.Background())
	require.NoError(t, err)

	network := config.DefaultNetworkConfig()
	network.RegistryAddress = "0x00000000000000000000000000000000000d0a11"

	h := &harness{
		wallet:   w,
		registry: contractCaller.NewRegistryStub(),
		store:    memory.NewMemoryPersistence(),
		network:  network,
	}
	h.publisher = NewPublisher(h.wallet, h.registry, h.store, h.network, zaptest.NewLogger(t))
	h.publisher.now = func() time.Time { return fixedNow }
	return h
}

// seed stores the sample drafts.
func (h *harness) seed(t *testing.T) {
	t.Helper()
	require.NoError(t, h.store.SaveClaimDraft(persistencetest.SampleClaimDraft()))
	require.NoError(t, h.store.SaveRailsDraft(persistencetest.SampleRailsDraft()))
}

// readyState is a connected wallet on the registry chain with its address stored.
func (h *harness) readyState() wallet.State {
	addr := h.wallet.Address()
	return wallet.State{
		Available:    true,
		Connected:    true,
		Account:      addr,
		ChainID:      h.network.ChainID,
		StoredSigner: &addr,
	}
}

// countingWallet records how many signature requests reach the wallet.
type countingWallet struct {
	wallet.IWallet
	signs atomic.Int32
}

func (w *countingWallet) PersonalSign(ctx context.Context, message string, account common.Address) ([]byte, error) {
	w.signs.Add(1)
	return w.IWallet.PersonalSign(ctx, message, account)
}
