package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/config"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "vwire",
		Usage: "Verify pasted payment instructions and publish bank rail attestations",
		Description: `VerifyWire compares wire, ACH and international payment identifiers with
commitments a bank published to an on-chain registry. Raw identifiers never
leave this machine; only their hashes are compared or published.

Payers run "vwire check". Banks go through "claim", "rails", "wallet connect",
"review" and "sign".`,
		Version: "1.0.0",
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			checkCommand(),
			claimCommand(),
			railsCommand(),
			walletCommand(),
			reviewCommand(),
			signCommand(),
			republishCommand(),
			receiptCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	defaults := config.DefaultNetworkConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "rpc-url",
			Usage:   "Registry chain RPC URL",
			Value:   defaults.RpcUrl,
			EnvVars: []string{config.EnvRPCURL},
		},
		&cli.StringFlag{
			Name:    "registry-address",
			Usage:   "VerifyWire registry contract address",
			EnvVars: []string{config.EnvRegistryAddress},
		},
		&cli.Uint64Flag{
			Name:    "chain-id",
			Usage:   "Registry chain ID (97476 doma-testnet, 31337 devnet)",
			Value:   uint64(defaults.ChainID),
			EnvVars: []string{config.EnvChainID},
		},
		&cli.StringFlag{
			Name:    "explorer-url",
			Usage:   "Block explorer base URL used for transaction links",
			Value:   defaults.ExplorerUrl,
			EnvVars: []string{config.EnvExplorerURL},
		},
		&cli.StringFlag{
			Name:    "wallet-url",
			Usage:   "JSON-RPC endpoint of the external wallet",
			EnvVars: []string{config.EnvWalletURL},
		},
		&cli.StringFlag{
			Name:    "wallet-key",
			Usage:   "Hex private key for an in-process devnet wallet (testing only)",
			EnvVars: []string{config.EnvWalletKey},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "Enable debug logging",
			EnvVars: []string{config.EnvVerbose},
		},
	}
}
