// Package onboarding implements the bank side of the flow before signing:
// claiming a short code and describing the payment rails to attest.
package onboarding

import (
	"strings"

	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// SnapshotClaim trims the names and normalizes the short code.
func SnapshotClaim(d *types.ClaimDraft) *types.ClaimDraft {
	if d == nil {
		return nil
	}
	return &types.ClaimDraft{
		LegalName:  strings.TrimSpace(d.LegalName),
		BrandName:  strings.TrimSpace(d.BrandName),
		ShortCode:  normalize.NormalizeShortCode(d.ShortCode),
		Authorized: d.Authorized,
	}
}

// SnapshotRails trims every field, strips whitespace from the IBAN and
// upper-cases the BIC. Values of disabled rails are kept.
func SnapshotRails(d *types.RailsDraft) *types.RailsDraft {
	if d == nil {
		return nil
	}
	return &types.RailsDraft{
		EnableWire: d.EnableWire,
		EnableACH:  d.EnableACH,
		EnableIntl: d.EnableIntl,
		Wire:       trimRail(d.Wire),
		ACH:        trimRail(d.ACH),
		Intl: types.IntlDetails{
			IBAN:  strings.Join(strings.Fields(d.Intl.IBAN), ""),
			BIC:   strings.ToUpper(strings.TrimSpace(d.Intl.BIC)),
			Notes: strings.TrimSpace(d.Intl.Notes),
		},
	}
}

func trimRail(r types.RailDetails) types.RailDetails {
	return types.RailDetails{
		Routing: strings.TrimSpace(r.Routing),
		Account: strings.TrimSpace(r.Account),
		Notes:   strings.TrimSpace(r.Notes),
	}
}

// ValidateClaim returns an input error listing every failing field.
func ValidateClaim(d *types.ClaimDraft) error {
	if d == nil {
		return apperrors.Input("Fill in the organization claim first.", nil)
	}

	var allErrors field.ErrorList
	if strings.TrimSpace(d.LegalName) == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("legalName"), "legal name is required"))
	}

	code := normalize.NormalizeShortCode(d.ShortCode)
	switch {
	case code == "":
		allErrors = append(allErrors, field.Required(field.NewPath("shortCode"), "short code is required"))
	case !normalize.IsValidShortCode(code):
		allErrors = append(allErrors, field.Invalid(field.NewPath("shortCode"), code,
			"use 1-30 lowercase letters, digits or hyphens, not starting or ending with a hyphen"))
	case normalize.IsReservedShortCode(code):
		allErrors = append(allErrors, field.Forbidden(field.NewPath("shortCode"), "short code "+code+" is reserved"))
	}

	if !d.Authorized {
		allErrors = append(allErrors, field.Required(field.NewPath("authorized"), "confirm you are authorized to act for this organization"))
	}

	if len(allErrors) > 0 {
		return apperrors.Input("The organization claim is incomplete.", allErrors.ToAggregate())
	}
	return nil
}

// ValidateRails requires at least one enabled rail and checks each enabled
// rail: ABA-valid routing plus an account for US rails, and a structurally
// valid IBAN or BIC (at least one) for international.
func ValidateRails(d *types.RailsDraft) error {
	if d == nil || !d.AnyEnabled() {
		return apperrors.Input("Select at least one rail (Wires, ACH, or International).", nil)
	}

	var allErrors field.ErrorList
	if d.EnableWire {
		allErrors = append(allErrors, validateUSRail(field.NewPath("wire"), d.Wire)...)
	}
	if d.EnableACH {
		allErrors = append(allErrors, validateUSRail(field.NewPath("ach"), d.ACH)...)
	}
	if d.EnableIntl {
		allErrors = append(allErrors, validateIntlRail(field.NewPath("intl"), d.Intl)...)
	}

	if len(allErrors) > 0 {
		return apperrors.Input("Some rail details are missing or malformed.", allErrors.ToAggregate())
	}
	return nil
}

func validateUSRail(path *field.Path, r types.RailDetails) field.ErrorList {
	var errs field.ErrorList
	if !normalize.IsValidABARouting(r.Routing) {
		errs = append(errs, field.Invalid(path.Child("routing"), normalize.MaskAccount(r.Routing), "not a valid 9 digit ABA routing number"))
	}
	if strings.TrimSpace(r.Account) == "" {
		errs = append(errs, field.Required(path.Child("account"), "account number is required"))
	}
	return errs
}

func validateIntlRail(path *field.Path, r types.IntlDetails) field.ErrorList {
	var errs field.ErrorList
	iban := strings.TrimSpace(r.IBAN)
	bic := strings.TrimSpace(r.BIC)

	if iban == "" && bic == "" {
		return append(errs, field.Required(path.Child("iban"), "provide IBAN or BIC"))
	}
	if iban != "" && !normalize.IsLikelyIBAN(iban) {
		errs = append(errs, field.Invalid(path.Child("iban"), normalize.MaskIBAN(iban), "IBAN looks malformed, e.g. GB33BUKB20201555555555"))
	}
	if bic != "" && !normalize.IsValidBIC(bic) {
		errs = append(errs, field.Invalid(path.Child("bic"), bic, "BIC must be 8 or 11 characters"))
	}
	return errs
}
