package wallet

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/config"
)

func newTestLocalWallet(t *testing.T, chainId config.ChainId) *LocalWallet {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	w := NewLocalWallet(key, chainId)
	t.Cleanup(w.Close)
	return w
}

func TestLocalWallet_AccountsRequireConnect(t *testing.T) {
	ctx := context.Background()
	w := newTestLocalWallet(t, config.ChainId_DomaTestnet)

	accts, err := w.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accts)

	accts, err = w.RequestAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{w.Address()}, accts)

	accts, err = w.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accts, 1)
}

func TestLocalWallet_PersonalSignRecoversSigner(t *testing.T) {
	ctx := context.Background()
	w := newTestLocalWallet(t, config.ChainId_DomaTestnet)

	_, err := w.PersonalSign(ctx, "hello", w.Address())
	require.Error(t, err, "signing before connect must fail")

	_, err = w.RequestAccounts(ctx)
	require.NoError(t, err)

	sig, err := w.PersonalSign(ctx, "hello", w.Address())
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.True(t, sig[64] == 27 || sig[64] == 28)

	sig[64] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash([]byte("hello")), sig)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), crypto.PubkeyToAddress(*pub))
}

func TestLocalWallet_SwitchUnknownChain(t *testing.T) {
	ctx := context.Background()
	w := newTestLocalWallet(t, config.ChainId_EthereumAnvil)

	err := w.SwitchChain(ctx, config.ChainId_DomaTestnet)
	require.Error(t, err)
	assert.True(t, IsUnrecognizedChain(err))

	chainId, err := w.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.ChainId_EthereumAnvil, chainId)
}

func TestLocalWallet_SignTransaction(t *testing.T) {
	ctx := context.Background()
	w := newTestLocalWallet(t, config.ChainId_EthereumAnvil)
	_, err := w.RequestAccounts(ctx)
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	tx := ethTypes.NewTx(&ethTypes.DynamicFeeTx{
		ChainID:   big.NewInt(int64(config.ChainId_EthereumAnvil)),
		Nonce:     3,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(10),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(0),
	})

	signed, err := w.SignTransaction(ctx, w.Address(), tx)
	require.NoError(t, err)

	sender, err := ethTypes.Sender(ethTypes.LatestSignerForChainID(signed.ChainId()), signed)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), sender)
	assert.Equal(t, uint64(3), signed.Nonce())
}

func TestLocalWallet_EmitsEvents(t *testing.T) {
	ctx := context.Background()
	w := newTestLocalWallet(t, config.ChainId_DomaTestnet)
	_, err := w.RequestAccounts(ctx)
	require.NoError(t, err)

	w.SetChain(config.ChainId_EthereumAnvil)
	ev := <-w.Events()
	assert.Equal(t, EventChainChanged, ev.Kind)
	assert.Equal(t, config.ChainId_EthereumAnvil, ev.ChainID)

	w.Revoke()
	ev = <-w.Events()
	assert.Equal(t, EventAccountsChanged, ev.Kind)
	assert.Empty(t, ev.Accounts)
}

func TestLocalWallet_ClosedWalletFails(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	w := NewLocalWallet(key, config.ChainId_DomaTestnet)
	w.Close()
	w.Close()

	_, err = w.ChainID(context.Background())
	assert.Error(t, err)

	_, open := <-w.Events()
	assert.False(t, open)
}
