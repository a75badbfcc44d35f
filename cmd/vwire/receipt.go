package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/attestation"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func receiptCommand() *cli.Command {
	return &cli.Command{
		Name:  "receipt",
		Usage: "Inspect, export or verify the last signed attestation",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the receipt",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Print the raw receipt JSON"},
				},
				Action: withRuntime(runReceiptShow),
			},
			{
				Name:  "export",
				Usage: "Write the payload and receipt files",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Usage: "Output directory", Value: "."},
				},
				Action: withRuntime(runReceiptExport),
			},
			{
				Name:      "verify",
				Usage:     "Check a receipt's payload hash, message and signature",
				ArgsUsage: "[receipt.json]",
				Action:    runReceiptVerify,
			},
		},
	}
}

func loadReceipt(rt *runtime) (*types.SignedAttestation, error) {
	receipt, err := rt.store.LoadReceipt()
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperrors.Input("No signed attestation found.", nil).
			WithNextStep("Review and sign with `vwire sign` first.")
	}
	return receipt, nil
}

func runReceiptShow(c *cli.Context, rt *runtime) error {
	receipt, err := loadReceipt(rt)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		data, err := json.MarshalIndent(receipt, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal receipt: %w", err)
		}
		_, _ = fmt.Fprintln(c.App.Writer, string(data))
		return nil
	}
	printReceiptSummary(c.App.Writer, rt.network, receipt)
	_, _ = fmt.Fprintf(c.App.Writer, "CID:     %s\n", receipt.CID)
	renderList(c.App.Writer, "Rails", attestation.IncludedRails(receipt.Payload))
	return nil
}

func runReceiptExport(c *cli.Context, rt *runtime) error {
	receipt, err := loadReceipt(rt)
	if err != nil {
		return err
	}
	dir := c.String("dir")

	payloadPath, err := attestation.ExportPayload(dir, receipt.Payload)
	if err != nil {
		return err
	}
	receiptPath, err := attestation.ExportReceipt(dir, receipt)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Wrote %s\nWrote %s\n", payloadPath, receiptPath)
	return nil
}

// runReceiptVerify checks a receipt file, or the stored receipt when no file
// is given.
func runReceiptVerify(c *cli.Context) error {
	var receipt *types.SignedAttestation
	if c.Args().Len() > 0 {
		r, err := readReceiptFile(c.Args().First())
		if err != nil {
			return err
		}
		receipt = r
	} else {
		rt, err := newRuntime(c)
		if err != nil {
			return err
		}
		defer rt.close()
		if receipt, err = loadReceipt(rt); err != nil {
			return err
		}
	}

	if err := attestation.VerifyReceipt(receipt); err != nil {
		return apperrors.Input("The receipt does not verify.", err).
			WithNextStep("Do not trust this receipt; ask the bank for a fresh export.")
	}
	_, _ = fmt.Fprintf(c.App.Writer, "Receipt verified: %s signed %s for %s.\n",
		receipt.SignerAddress.Hex(), receipt.PayloadCommitment.Hex(), receipt.OrganizationShortCode)
	return nil
}
