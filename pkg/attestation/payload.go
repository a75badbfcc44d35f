// Package attestation builds, signs and publishes a bank's rail attestation.
//
// The payload is serialized canonically and hashed into a payload commitment.
// The commitment is bound into a human readable message the bank's wallet
// signs; separately, the six normalized rail fields are hashed and published
// to the registry.
package attestation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verifywire/verifywire-go/pkg/canonical"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
)

const (
	SchemaID = "vwire-rails-v1"

	signedMessageTitle = "VerifyWire Attestation"
	noRailsSelected    = "None selected"
)

// BuildPayload assembles the payload from the drafts. Only enabled rails are
// included; the others are null.
func BuildPayload(claim *types.ClaimDraft, rails *types.RailsDraft, createdAt time.Time, network string) *types.AttestationPayload {
	p := &types.AttestationPayload{
		Schema: SchemaID,
		Meta: types.PayloadMeta{
			CreatedAt:   createdAt.Unix(),
			NetworkHint: network,
		},
	}
	if claim != nil {
		p.Organization = types.Organization{
			ShortCode: claim.ShortCode,
			LegalName: claim.LegalName,
			BrandName: claim.BrandName,
		}
	}
	if rails == nil {
		return p
	}
	if rails.EnableACH {
		ach := rails.ACH
		p.Rails.ACH = &ach
	}
	if rails.EnableWire {
		wire := rails.Wire
		p.Rails.Wire = &wire
	}
	if rails.EnableIntl {
		intl := rails.Intl
		p.Rails.International = &intl
	}
	return p
}

// Prepared is a payload together with everything derived from it.
type Prepared struct {
	Payload    *types.AttestationPayload
	Canonical  canonical.Bytes
	Pretty     []byte
	Commitment commitment.PayloadCommitment
	CID        string
}

func Prepare(payload *types.AttestationPayload) (*Prepared, error) {
	if payload == nil {
		return nil, fmt.Errorf("payload cannot be nil")
	}

	compact, err := canonical.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize payload: %w", err)
	}
	pretty, err := canonical.MarshalIndent(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to format payload: %w", err)
	}
	cid, err := commitment.PayloadCID(compact)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		Payload:    payload,
		Canonical:  compact,
		Pretty:     pretty,
		Commitment: commitment.HashPayload(compact),
		CID:        cid,
	}, nil
}

// IncludedRails lists the display names of the payload's rails, or
// "None selected".
func IncludedRails(p *types.AttestationPayload) []string {
	var names []string
	if p != nil && p.Rails.Wire != nil {
		names = append(names, types.RailNameWire)
	}
	if p != nil && p.Rails.ACH != nil {
		names = append(names, types.RailNameACH)
	}
	if p != nil && p.Rails.International != nil {
		names = append(names, types.RailNameInternational)
	}
	if len(names) == 0 {
		return []string{noRailsSelected}
	}
	return names
}

// BuildSignedMessage renders the exact text the wallet signs. Verifiers
// rebuild it byte for byte, so the line order and labels are fixed.
func BuildSignedMessage(shortCode string, c commitment.PayloadCommitment, signedAt int64, network string) string {
	return strings.Join([]string{
		signedMessageTitle,
		"Schema: " + SchemaID,
		"Org: " + shortCode,
		"Hash: " + c.Hex(),
		"Time: " + strconv.FormatInt(signedAt, 10),
		"Network: " + network,
	}, "\n")
}

// RailCommitments hashes the payload's rails in the form the registry stores.
// Routing and account numbers keep digits only, IBAN and BIC are upper-cased
// without spaces, and absent rails hash the empty string.
func RailCommitments(p *types.AttestationPayload) types.RailCommitments {
	var wire, ach types.RailDetails
	var intl types.IntlDetails
	if p != nil && p.Rails.Wire != nil {
		wire = *p.Rails.Wire
	}
	if p != nil && p.Rails.ACH != nil {
		ach = *p.Rails.ACH
	}
	if p != nil && p.Rails.International != nil {
		intl = *p.Rails.International
	}

	return types.RailCommitments{
		WireRouting: commitment.HashField(normalize.DigitsOnly(wire.Routing)),
		WireAccount: commitment.HashField(normalize.DigitsOnly(wire.Account)),
		AchRouting:  commitment.HashField(normalize.DigitsOnly(ach.Routing)),
		AchAccount:  commitment.HashField(normalize.DigitsOnly(ach.Account)),
		IBAN:        commitment.HashField(normalize.UpperNoSpaces(intl.IBAN)),
		BIC:         commitment.HashField(normalize.UpperNoSpaces(intl.BIC)),
	}
}
