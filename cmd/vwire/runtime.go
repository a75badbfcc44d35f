package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/attestation"
	"github.com/verifywire/verifywire-go/pkg/clients/walletProvider"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/contractCaller/caller"
	"github.com/verifywire/verifywire-go/pkg/logger"
	"github.com/verifywire/verifywire-go/pkg/onboarding"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/persistence/store"
	"github.com/verifywire/verifywire-go/pkg/transactionSigner"
	"github.com/verifywire/verifywire-go/pkg/wallet"
	"go.uber.org/zap"
)

// runtime holds the collaborators of one command invocation.
type runtime struct {
	logger  *zap.Logger
	network *config.NetworkConfig
	store   persistence.IDraftStore
	wallet  wallet.IWallet
	session *wallet.Session

	eth *ethclient.Client
}

func networkFromFlags(c *cli.Context) *config.NetworkConfig {
	return &config.NetworkConfig{
		ChainID:         config.ChainId(c.Uint64("chain-id")),
		RpcUrl:          strings.TrimSpace(c.String("rpc-url")),
		RegistryAddress: strings.TrimSpace(c.String("registry-address")),
		ExplorerUrl:     strings.TrimSpace(c.String("explorer-url")),
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

// newRuntime opens the draft store and the wallet. Chain access is dialed
// lazily by the commands that need it.
func newRuntime(c *cli.Context) (*runtime, error) {
	l, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	storeCfg, err := config.LoadStoreConfig()
	if err != nil {
		return nil, apperrors.Configuration("Could not read the draft store settings.", err)
	}
	s, err := store.Open(storeCfg, l)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		logger:  l,
		network: networkFromFlags(c),
		store:   s,
	}

	rt.wallet, err = rt.openWallet(c)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.session = wallet.NewSession(rt.wallet, rt.store, rt.network.ChainID, l)
	return rt, nil
}

func (rt *runtime) openWallet(c *cli.Context) (wallet.IWallet, error) {
	if key := c.String("wallet-key"); key != "" {
		lw, err := wallet.NewLocalWalletFromHex(key, rt.network.ChainID)
		if err != nil {
			return nil, apperrors.Configuration("The devnet wallet key is invalid.", err)
		}
		// An in-process wallet has no memory between runs; restore the
		// connection the operator granted earlier.
		identity, err := rt.store.LoadWalletIdentity()
		if err != nil {
			return nil, err
		}
		if identity != nil && identity.Connected && identity.Address == lw.Address() {
			if _, err := lw.RequestAccounts(c.Context); err != nil {
				return nil, err
			}
		}
		return lw, nil
	}

	if url := c.String("wallet-url"); url != "" {
		cfg := walletProvider.DefaultConfig()
		cfg.BaseURL = url
		provider, err := walletProvider.NewClient(cfg, rt.logger)
		if err != nil {
			return nil, apperrors.Configuration("The wallet endpoint is invalid.", err)
		}
		return wallet.NewRPCWallet(provider, wallet.DefaultPollInterval, rt.logger), nil
	}

	return nil, nil
}

func (rt *runtime) close() {
	if rt.wallet != nil {
		rt.wallet.Close()
	}
	if rt.eth != nil {
		rt.eth.Close()
	}
	if rt.store != nil {
		_ = rt.store.Close()
	}
	_ = rt.logger.Sync()
}

func (rt *runtime) dial(ctx context.Context) (*ethclient.Client, error) {
	if rt.eth != nil {
		return rt.eth, nil
	}
	client, err := ethclient.DialContext(ctx, rt.network.RpcUrl)
	if err != nil {
		return nil, apperrors.Network("Could not reach registry RPC.", err)
	}
	rt.eth = client
	return client, nil
}

// registryReader returns nil when no registry address is configured.
func (rt *runtime) registryReader(ctx context.Context) (contractCaller.IRegistryReader, error) {
	if !rt.network.RegistryConfigured() {
		return nil, nil
	}
	return rt.registry(ctx, nil)
}

// registry binds the registry contract. A non-nil signer enables publishing
// from that address through the wallet.
func (rt *runtime) registry(ctx context.Context, signer *common.Address) (contractCaller.IContractCaller, error) {
	if err := rt.network.Validate(); err != nil {
		return nil, err
	}
	client, err := rt.dial(ctx)
	if err != nil {
		return nil, err
	}

	var txSigner transactionSigner.ITransactionSigner
	if signer != nil && rt.wallet != nil {
		txSigner = transactionSigner.NewWalletTransactionSigner(rt.wallet, *signer, client, rt.logger)
	}

	cc, err := caller.NewContractCaller(client, rt.network.Registry(), txSigner, rt.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract caller: %w", err)
	}
	return cc, nil
}

func (rt *runtime) onboarding(ctx context.Context) (*onboarding.Service, error) {
	reader, err := rt.registryReader(ctx)
	if err != nil {
		return nil, err
	}
	return onboarding.NewService(rt.store, reader, rt.logger), nil
}

// publisher wires the signer-backed registry when a registry is configured.
func (rt *runtime) publisher(ctx context.Context, st wallet.State) (*attestation.Publisher, error) {
	var registry contractCaller.IContractCaller
	if rt.network.RegistryConfigured() {
		var err error
		registry, err = rt.registry(ctx, st.StoredSigner)
		if err != nil {
			return nil, err
		}
	}
	return attestation.NewPublisher(rt.wallet, registry, rt.store, rt.network, rt.logger), nil
}

// withRuntime adapts a runtime-aware action to urfave/cli.
func withRuntime(action func(c *cli.Context, rt *runtime) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := newRuntime(c)
		if err != nil {
			return err
		}
		defer rt.close()
		return action(c, rt)
	}
}
