package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"github.com/verifywire/verifywire-go/pkg/attestation"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func reviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Preview the attestation payload before signing",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "payload", Usage: "Print the full canonical payload"},
		},
		Action: withRuntime(runReview),
	}
}

func runReview(c *cli.Context, rt *runtime) error {
	p := attestation.NewPublisher(rt.wallet, nil, rt.store, rt.network, rt.logger)
	review, err := p.Review()
	if err != nil {
		return err
	}

	w := c.App.Writer
	_, _ = fmt.Fprintf(w, "Organization: %s (%s)\n", review.Organization.LegalName, review.Organization.ShortCode)
	_, _ = fmt.Fprintf(w, "Schema:       %s\n", attestation.SchemaID)
	_, _ = fmt.Fprintf(w, "Hash:         %s\n", review.Commitment.Hex())
	_, _ = fmt.Fprintf(w, "CID:          %s\n", review.CID)
	renderList(w, "Rails", review.Rails)
	if c.Bool("payload") {
		_, _ = fmt.Fprintf(w, "\n%s\n", review.Pretty)
	}
	return nil
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:   "sign",
		Usage:  "Sign the reviewed attestation with your wallet and publish it",
		Action: withRuntime(runSign),
	}
}

func runSign(c *cli.Context, rt *runtime) error {
	st, err := rt.session.State(c.Context)
	if err != nil {
		return err
	}
	p, err := rt.publisher(c.Context, st)
	if err != nil {
		return err
	}

	receipt, err := p.SignAndPublish(c.Context, st)
	if receipt != nil {
		printReceiptSummary(c.App.Writer, rt.network, receipt)
	}
	return err
}

func republishCommand() *cli.Command {
	return &cli.Command{
		Name:   "republish",
		Usage:  "Retry publishing the last signed attestation without signing again",
		Action: withRuntime(runRepublish),
	}
}

func runRepublish(c *cli.Context, rt *runtime) error {
	st, err := rt.session.State(c.Context)
	if err != nil {
		return err
	}
	p, err := rt.publisher(c.Context, st)
	if err != nil {
		return err
	}

	receipt, err := p.Republish(c.Context, st)
	if receipt != nil {
		printReceiptSummary(c.App.Writer, rt.network, receipt)
	}
	return err
}

func statusLine(receipt *types.SignedAttestation) string {
	switch receipt.Status {
	case types.PublishStatusPublished:
		return "Signed and published."
	case types.PublishStatusFailed:
		return "Signed, but publish failed. Retry with: vwire republish"
	case types.PublishStatusRegistryNotConfigured:
		return "Signed, but no registry is configured; nothing was published."
	default:
		return "Signed."
	}
}

func printReceiptSummary(w io.Writer, network *config.NetworkConfig, receipt *types.SignedAttestation) {
	_, _ = fmt.Fprintln(w, statusLine(receipt))
	_, _ = fmt.Fprintf(w, "Org:     %s\n", receipt.OrganizationShortCode)
	_, _ = fmt.Fprintf(w, "Hash:    %s\n", receipt.PayloadCommitment.Hex())
	_, _ = fmt.Fprintf(w, "Signer:  %s\n", receipt.SignerAddress.Hex())
	_, _ = fmt.Fprintf(w, "Network: %s\n", receipt.Network)
	if receipt.TransactionRef != nil {
		_, _ = fmt.Fprintf(w, "Tx:      %s\n", receipt.TransactionRef.Hex())
		if link := network.ExplorerTxURL(*receipt.TransactionRef); link != "" {
			_, _ = fmt.Fprintf(w, "View:    %s\n", link)
		}
	}
}
