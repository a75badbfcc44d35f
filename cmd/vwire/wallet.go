package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
)

func walletCommand() *cli.Command {
	return &cli.Command{
		Name:  "wallet",
		Usage: "Connect the wallet that signs attestations",
		Subcommands: []*cli.Command{
			{
				Name:   "connect",
				Usage:  "Switch the wallet to the registry network and remember its account",
				Action: withRuntime(runWalletConnect),
			},
			{
				Name:   "disconnect",
				Usage:  "Forget the connected account; drafts and receipts are kept",
				Action: withRuntime(runWalletDisconnect),
			},
			{
				Name:   "status",
				Usage:  "Show the wallet and stored signer",
				Action: withRuntime(runWalletStatus),
			},
			{
				Name:  "watch",
				Usage: "Follow wallet account and network changes until interrupted",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "duration", Usage: "Stop after this long (0 watches until interrupted)"},
				},
				Action: withRuntime(runWalletWatch),
			},
		},
	}
}

func runWalletConnect(c *cli.Context, rt *runtime) error {
	addr, err := rt.session.Connect(c.Context)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Connected %s on %s.\n", addr.Hex(), rt.network.ChainName())
	return nil
}

func runWalletDisconnect(c *cli.Context, rt *runtime) error {
	if err := rt.session.Disconnect(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.App.Writer, "Wallet disconnected.")
	return nil
}

func runWalletStatus(c *cli.Context, rt *runtime) error {
	st, err := rt.session.State(c.Context)
	if err != nil {
		return err
	}

	account, signer := "—", "—"
	if st.Connected {
		account = st.Account.Hex()
	}
	if st.StoredSigner != nil {
		signer = st.StoredSigner.Hex()
	}
	chain := "—"
	if st.Available {
		chain = fmt.Sprintf("%d", st.ChainID)
	}

	table, err := renderTable([]string{"Wallet", "Value"}, [][]string{
		{"Available", yesNo(st.Available)},
		{"Connected", yesNo(st.Connected)},
		{"Account", account},
		{"Chain", chain},
		{"On registry network", yesNo(st.OnChain(rt.network.ChainID))},
		{"Stored signer", signer},
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.App.Writer, table)
	return nil
}

func runWalletWatch(c *cli.Context, rt *runtime) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if d := c.Duration("duration"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return watchWallet(ctx, rt, c.App.Writer)
}

// watchWallet keeps the stored identity in step with the wallet and pulls it
// back to the registry network until ctx ends.
func watchWallet(ctx context.Context, rt *runtime, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "Watching the wallet on %s. Press Ctrl+C to stop.\n", rt.network.ChainName())
	started := time.Now()

	err := rt.session.Watch(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	_, _ = fmt.Fprintf(w, "Stopped watching after %s.\n", time.Since(started).Round(time.Second))
	return nil
}
