package wallet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/config"
	"go.uber.org/zap/zaptest"
)

type codeError struct {
	code int
	msg  string
}

func (e *codeError) Error() string  { return e.msg }
func (e *codeError) ErrorCode() int { return e.code }

func TestIsUnrecognizedChain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", fmt.Errorf("switch: %w", ErrUnrecognizedChain), true},
		{"code 4902", fmt.Errorf("wallet_switchEthereumChain failed: %w", &codeError{code: 4902, msg: "unknown"}), true},
		{"message only", errors.New("Unrecognized chain ID \"0x17cc4\". Try adding the chain"), true},
		{"user rejected", &codeError{code: 4001, msg: "User rejected the request."}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnrecognizedChain(tt.err))
		})
	}
}

func TestEnsureNetwork_AddsUnknownChain(t *testing.T) {
	ctx := context.Background()
	w := newTestLocalWallet(t, config.ChainId_EthereumAnvil)

	require.NoError(t, EnsureNetwork(ctx, w, config.ChainId_DomaTestnet))

	chainId, err := w.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.ChainId_DomaTestnet, chainId)
}

func TestEnsureNetwork_AlreadyKnown(t *testing.T) {
	ctx := context.Background()
	w := newTestLocalWallet(t, config.ChainId_DomaTestnet)

	require.NoError(t, EnsureNetwork(ctx, w, config.ChainId_DomaTestnet))
}

func TestEnsureNetwork_OtherErrorsAreNetworkErrors(t *testing.T) {
	p := newFakeProvider()
	p.switchErr = &codeError{code: 4001, msg: "User rejected the request."}
	w := NewRPCWallet(p, 0, zaptest.NewLogger(t))

	err := EnsureNetwork(context.Background(), w, config.ChainId_DomaTestnet)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
	assert.Empty(t, p.added)
}

func TestEnsureNetwork_UnknownChainParams(t *testing.T) {
	w := newTestLocalWallet(t, config.ChainId_EthereumAnvil)

	err := EnsureNetwork(context.Background(), w, config.ChainId(1))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
}

func TestState_OnChain(t *testing.T) {
	st := State{Available: true, ChainID: config.ChainId_DomaTestnet}
	assert.True(t, st.OnChain(config.ChainId_DomaTestnet))
	assert.False(t, st.OnChain(config.ChainId_EthereumAnvil))
	assert.False(t, State{ChainID: config.ChainId_DomaTestnet}.OnChain(config.ChainId_DomaTestnet))
}
