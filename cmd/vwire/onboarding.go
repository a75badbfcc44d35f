package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/onboarding"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func claimCommand() *cli.Command {
	return &cli.Command{
		Name:  "claim",
		Usage: "Claim a short code for your organization",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "legal-name", Usage: "Registered legal name"},
			&cli.StringFlag{Name: "brand-name", Usage: "Name customers know you by"},
			&cli.StringFlag{Name: "short-code", Usage: "Lowercase short code payers will type, e.g. boa"},
			&cli.BoolFlag{Name: "authorized", Usage: "Confirm you are authorized to act for the organization"},
			&cli.BoolFlag{Name: "draft", Usage: "Save without validating"},
			&cli.BoolFlag{Name: "check", Usage: "Only report whether the short code is available"},
		},
		Action: withRuntime(runClaim),
	}
}

// mergeClaim overlays the flags that were given on the stored draft.
func mergeClaim(c *cli.Context, d *types.ClaimDraft) *types.ClaimDraft {
	out := types.ClaimDraft{}
	if d != nil {
		out = *d
	}
	if c.IsSet("legal-name") {
		out.LegalName = c.String("legal-name")
	}
	if c.IsSet("brand-name") {
		out.BrandName = c.String("brand-name")
	}
	if c.IsSet("short-code") {
		out.ShortCode = c.String("short-code")
	}
	if c.IsSet("authorized") {
		out.Authorized = c.Bool("authorized")
	}
	return &out
}

func runClaim(c *cli.Context, rt *runtime) error {
	svc, err := rt.onboarding(c.Context)
	if err != nil {
		return err
	}
	stored, _, err := svc.Drafts()
	if err != nil {
		return err
	}
	draft := mergeClaim(c, stored)

	st, err := rt.session.State(c.Context)
	if err != nil {
		return err
	}

	if c.Bool("check") {
		availability, err := svc.CheckAvailability(c.Context, draft.ShortCode, st.StoredSigner)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.App.Writer, "%s: %s\n", normalize.NormalizeShortCode(draft.ShortCode), availability)
		return nil
	}

	if c.Bool("draft") {
		if err := svc.SaveClaimDraft(draft); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(c.App.Writer, "Claim draft saved.")
		return nil
	}

	availability, err := svc.SubmitClaim(c.Context, draft, st.StoredSigner)
	if err != nil {
		return err
	}
	code := normalize.NormalizeShortCode(draft.ShortCode)
	if availability == onboarding.AvailabilityOwned {
		_, _ = fmt.Fprintf(c.App.Writer, "Claim saved. You already publish %s; signing again updates its rails.\n", code)
	} else {
		_, _ = fmt.Fprintf(c.App.Writer, "Claim saved for %s. Next: vwire rails\n", code)
	}
	return nil
}

func railsCommand() *cli.Command {
	return &cli.Command{
		Name:  "rails",
		Usage: "Describe the payment rails to attest",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "wire", Usage: "Attest US wires"},
			&cli.StringFlag{Name: "wire-routing", Usage: "Wire ABA routing number"},
			&cli.StringFlag{Name: "wire-account", Usage: "Wire account number"},
			&cli.StringFlag{Name: "wire-notes", Usage: "Notes shown with the wire rail"},
			&cli.BoolFlag{Name: "ach", Usage: "Attest ACH"},
			&cli.StringFlag{Name: "ach-routing", Usage: "ACH ABA routing number"},
			&cli.StringFlag{Name: "ach-account", Usage: "ACH account number"},
			&cli.StringFlag{Name: "ach-notes", Usage: "Notes shown with the ACH rail"},
			&cli.BoolFlag{Name: "intl", Usage: "Attest international transfers"},
			&cli.StringFlag{Name: "iban", Usage: "IBAN"},
			&cli.StringFlag{Name: "bic", Usage: "BIC / SWIFT code"},
			&cli.StringFlag{Name: "intl-notes", Usage: "Notes shown with the international rail"},
			&cli.BoolFlag{Name: "draft", Usage: "Save without validating"},
		},
		Action: withRuntime(runRails),
	}
}

func setIf(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func mergeRails(c *cli.Context, d *types.RailsDraft) *types.RailsDraft {
	out := types.RailsDraft{}
	if d != nil {
		out = *d
	}
	if c.IsSet("wire") {
		out.EnableWire = c.Bool("wire")
	}
	if c.IsSet("ach") {
		out.EnableACH = c.Bool("ach")
	}
	if c.IsSet("intl") {
		out.EnableIntl = c.Bool("intl")
	}
	setIf(c, "wire-routing", &out.Wire.Routing)
	setIf(c, "wire-account", &out.Wire.Account)
	setIf(c, "wire-notes", &out.Wire.Notes)
	setIf(c, "ach-routing", &out.ACH.Routing)
	setIf(c, "ach-account", &out.ACH.Account)
	setIf(c, "ach-notes", &out.ACH.Notes)
	setIf(c, "iban", &out.Intl.IBAN)
	setIf(c, "bic", &out.Intl.BIC)
	setIf(c, "intl-notes", &out.Intl.Notes)
	return &out
}

func runRails(c *cli.Context, rt *runtime) error {
	svc := onboarding.NewService(rt.store, nil, rt.logger)
	_, stored, err := svc.Drafts()
	if err != nil {
		return err
	}
	draft := mergeRails(c, stored)

	if c.Bool("draft") {
		if err := svc.SaveRailsDraft(draft); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(c.App.Writer, "Rails draft saved.")
		return nil
	}

	snap, err := svc.SubmitRails(draft)
	if err != nil {
		return err
	}

	table, err := renderTable([]string{"Rail", "Attested", "Routing", "Account / IBAN", "BIC"}, [][]string{
		{types.RailNameWire, yesNo(snap.EnableWire), orDash(snap.Wire.Routing), normalize.MaskAccount(snap.Wire.Account), "—"},
		{types.RailNameACH, yesNo(snap.EnableACH), orDash(snap.ACH.Routing), normalize.MaskAccount(snap.ACH.Account), "—"},
		{types.RailNameInternational, yesNo(snap.EnableIntl), "—", normalize.MaskIBAN(snap.Intl.IBAN), orDash(snap.Intl.BIC)},
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.App.Writer, table)
	_, _ = fmt.Fprintln(c.App.Writer, "Rails saved. Next: vwire wallet connect, then vwire review")
	return nil
}
