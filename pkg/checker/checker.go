// Package checker runs the payer side of VerifyWire: pasted payment
// instructions are reduced to field commitments and compared with the bank's
// on-chain record.
package checker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/extract"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
	"github.com/verifywire/verifywire-go/pkg/verdict"
	"go.uber.org/zap"
)

// ExampleInstructions is a sample paste for demos.
const ExampleInstructions = `Please wire the deposit to:
Bank: Bank of America
Routing: 026009593
Account: 000123456789
Reference: INV-1029`

// Extracted is the display form of the identifiers found in the paste.
// Accounts keep their last 4 digits and IBANs their last 6.
type Extracted struct {
	Routing string `json:"routing"`
	Account string `json:"account"`
	IBAN    string `json:"iban"`
	BIC     string `json:"bic"`
}

type Result struct {
	CheckID   uuid.UUID        `json:"checkId"`
	ShortCode string           `json:"shortCode"`
	Extracted Extracted        `json:"extracted"`
	Verdict   *verdict.Verdict `json:"verdict"`
	CheckedAt time.Time        `json:"checkedAt"`
}

type Checker struct {
	registry contractCaller.IRegistryReader
	logger   *zap.Logger
	now      func() time.Time
	busy     atomic.Bool
}

// NewChecker accepts a nil registry, in which case every check fails with a
// configuration error.
func NewChecker(registry contractCaller.IRegistryReader, logger *zap.Logger) *Checker {
	return &Checker{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// Mask renders extracted identifiers for display.
func Mask(ext types.ExtractedIdentifiers) Extracted {
	out := Extracted{Routing: ext.Routing, BIC: ext.BIC}
	if ext.Account != "" {
		out.Account = normalize.MaskAccount(ext.Account)
	}
	if ext.IBAN != "" {
		out.IBAN = normalize.MaskIBAN(normalize.UpperNoSpaces(ext.IBAN))
	}
	return out
}

// Check extracts identifiers from text, reads the record for shortCode and
// evaluates the verdict. Only one check runs at a time per Checker.
func (c *Checker) Check(ctx context.Context, shortCode string, text string) (*Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, apperrors.ErrActionInProgress
	}
	defer c.busy.Store(false)

	if c.registry == nil {
		return nil, apperrors.Configuration("Registry not configured.", apperrors.ErrRegistryNotConfigured).
			WithNextStep("Set VWIRE_REGISTRY_ADDRESS to the registry contract and try again.")
	}

	code := normalize.NormalizeShortCode(shortCode)
	if code == "" {
		return nil, apperrors.Input("Please enter the bank's short code (e.g., boa).", nil)
	}

	ext := extract.Extract(text)
	n := normalize.Identifiers(ext)

	rec, err := c.registry.GetRecord(ctx, code)
	if err != nil {
		return nil, apperrors.Network("Could not reach registry RPC.", err).
			WithNextStep("Check your network and VWIRE_REGISTRY_ADDRESS, then retry.")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	v := verdict.Evaluate(code, n, rec)
	result := &Result{
		CheckID:   uuid.New(),
		ShortCode: code,
		Extracted: Mask(ext),
		Verdict:   v,
		CheckedAt: c.now().UTC(),
	}

	c.logger.Sugar().Infow("Check completed",
		"checkId", result.CheckID.String(),
		"shortCode", code,
		"verdict", string(v.Kind),
		"identifiersPasted", n.Any(),
	)
	return result, nil
}
