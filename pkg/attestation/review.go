package attestation

import (
	"time"

	"github.com/verifywire/verifywire-go/pkg/onboarding"
	"github.com/verifywire/verifywire-go/pkg/types"
)

// Review is what the bank inspects before signing.
type Review struct {
	*Prepared
	Organization types.Organization
	Rails        []string
}

// BuildReview validates both drafts and prepares the payload they produce.
func BuildReview(claim *types.ClaimDraft, rails *types.RailsDraft, now time.Time, network string) (*Review, error) {
	if err := onboarding.ValidateClaim(claim); err != nil {
		return nil, err
	}
	snap := onboarding.SnapshotRails(rails)
	if err := onboarding.ValidateRails(snap); err != nil {
		return nil, err
	}

	payload := BuildPayload(onboarding.SnapshotClaim(claim), snap, now, network)
	prepared, err := Prepare(payload)
	if err != nil {
		return nil, err
	}

	return &Review{
		Prepared:     prepared,
		Organization: payload.Organization,
		Rails:        IncludedRails(payload),
	}, nil
}
