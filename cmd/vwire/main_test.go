package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/attestation"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/persistence/memory"
	"github.com/verifywire/verifywire-go/pkg/persistence/persistencetest"
	"github.com/verifywire/verifywire-go/pkg/wallet"
	"go.uber.org/zap/zaptest"
)

const anvilKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvStoreType, string(config.StoreType_Badger))
	t.Setenv(config.EnvStorePath, filepath.Join(t.TempDir(), "store"))
	t.Setenv(config.EnvRegistryAddress, "")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"vwire"}, args...))
	return out.String(), err
}

func TestCheck_RegistryNotConfigured(t *testing.T) {
	_, err := runApp(t, "check", "--example")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))
}

func TestClaimAndRails_SharedStore(t *testing.T) {
	t.Setenv(config.EnvStoreType, string(config.StoreType_Badger))
	path := filepath.Join(t.TempDir(), "store")
	t.Setenv(config.EnvStorePath, path)
	t.Setenv(config.EnvRegistryAddress, "")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out
		err := app.Run(append([]string{"vwire"}, args...))
		return out.String(), err
	}

	out, err := run("claim", "--legal-name", "Bank of America, N.A.", "--short-code", " BOA ", "--authorized")
	require.NoError(t, err)
	assert.Contains(t, out, "Claim saved for boa")

	_, err = run("rails", "--wire", "--wire-routing", "026009594", "--wire-account", "1234567890")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInput))

	out, err = run("rails", "--wire", "--wire-routing", "026009593", "--wire-account", "1234567890")
	require.NoError(t, err)
	assert.Contains(t, out, "Rails saved")
	assert.NotContains(t, out, "1234567890")

	out, err = run("review")
	require.NoError(t, err)
	assert.Contains(t, out, "Hash:         0x")
	assert.Contains(t, out, "Rails: US Wires")

	_, err = run("sign")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork), "no wallet configured")

	out, err = run("--wallet-key", anvilKey, "wallet", "connect")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected 0x")

	out, err = run("--wallet-key", anvilKey, "sign")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRegistryNotConfigured)
	assert.Contains(t, out, "no registry is configured")

	out, err = run("receipt", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Receipt verified")

	dir := t.TempDir()
	_, err = run("receipt", "export", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "boa-v1.json"))
	assert.FileExists(t, filepath.Join(dir, "boa-receipt.json"))

	out, err = run("receipt", "verify", filepath.Join(dir, "boa-receipt.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Receipt verified")

	_, err = run("wallet", "disconnect")
	require.NoError(t, err)
	out, err = run("wallet", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored signer")
}

func TestSign_KeepsSignatureWhenRegistryUnreachable(t *testing.T) {
	t.Setenv(config.EnvStoreType, string(config.StoreType_Badger))
	t.Setenv(config.EnvStorePath, filepath.Join(t.TempDir(), "store"))
	t.Setenv(config.EnvRegistryAddress, "")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out
		err := app.Run(append([]string{"vwire"}, args...))
		return out.String(), err
	}
	unreachable := []string{
		"--rpc-url", "http://127.0.0.1:1",
		"--registry-address", "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		"--wallet-key", anvilKey,
	}

	_, err := run("claim", "--legal-name", "Bank of America, N.A.", "--short-code", "boa", "--authorized")
	require.NoError(t, err)
	_, err = run("rails", "--wire", "--wire-routing", "026009593", "--wire-account", "1234567890")
	require.NoError(t, err)
	_, err = run("--wallet-key", anvilKey, "wallet", "connect")
	require.NoError(t, err)

	out, err := run(append(unreachable, "sign")...)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPublishPartial), "got %v", err)
	assert.Contains(t, apperrors.UserMessage(err), "vwire republish")
	assert.Contains(t, out, "publish failed")

	out, err = run("receipt", "show", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "publish_failed"`)

	out, err = run("receipt", "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Receipt verified")

	_, err = run(append(unreachable, "republish")...)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPublishPartial))
}

func TestWalletWatch(t *testing.T) {
	l := zaptest.NewLogger(t)
	w, err := wallet.NewLocalWalletFromHex(anvilKey, config.ChainId_DomaTestnet)
	require.NoError(t, err)
	defer w.Close()

	store := memory.NewMemoryPersistence()
	network := config.DefaultNetworkConfig()
	rt := &runtime{
		logger:  l,
		network: network,
		store:   store,
		wallet:  w,
		session: wallet.NewSession(w, store, network.ChainID, l),
	}

	_, err = rt.session.Connect(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- watchWallet(ctx, rt, &out) }()

	w.SetChain(config.ChainId_EthereumAnvil)
	assert.Eventually(t, func() bool {
		id, err := w.ChainID(context.Background())
		return err == nil && id == config.ChainId_DomaTestnet
	}, 2*time.Second, 10*time.Millisecond)

	w.Revoke()
	assert.Eventually(t, func() bool {
		identity, err := store.LoadWalletIdentity()
		return err == nil && identity == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, out.String(), "Stopped watching")
}

func TestWalletWatch_NoWallet(t *testing.T) {
	_, err := runApp(t, "wallet", "watch", "--duration", "10ms")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
}

func TestReceiptVerify_RejectsTamperedFile(t *testing.T) {
	w, err := wallet.NewLocalWalletFromHex(anvilKey, config.ChainId_DomaTestnet)
	require.NoError(t, err)
	defer w.Close()
	_, err = w.RequestAccounts(context.Background())
	require.NoError(t, err)

	store := memory.NewMemoryPersistence()
	require.NoError(t, store.SaveClaimDraft(persistencetest.SampleClaimDraft()))
	require.NoError(t, store.SaveRailsDraft(persistencetest.SampleRailsDraft()))

	p := attestation.NewPublisher(w, nil, store, config.DefaultNetworkConfig(), zaptest.NewLogger(t))
	addr := w.Address()
	receipt, _ := p.SignAndPublish(context.Background(), wallet.State{
		Available: true, Connected: true, Account: addr, ChainID: config.ChainId_DomaTestnet, StoredSigner: &addr,
	})
	require.NotNil(t, receipt)

	receipt.SignedAt = time.Now().Unix() + 1
	data, err := json.Marshal(receipt)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "receipt.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = runApp(t, "receipt", "verify", path)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInput))
}
