package onboarding

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/types"
	"go.uber.org/zap"
)

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	// AvailabilityOwned means the code is already published by the connected
	// signer, so publishing again updates the record.
	AvailabilityOwned   Availability = "owned"
	AvailabilityTaken   Availability = "taken"
	AvailabilityInvalid Availability = "invalid"
)

// Service persists the claim and rails drafts and checks short code
// availability against the registry.
type Service struct {
	store    persistence.IDraftStore
	registry contractCaller.IRegistryReader
	logger   *zap.Logger
}

// NewService accepts a nil registry when none is configured; availability
// checks then fail with a configuration error.
func NewService(store persistence.IDraftStore, registry contractCaller.IRegistryReader, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// CheckAvailability classifies shortCode. signer is the connected wallet, if
// any, and decides between owned and taken for published codes.
func (s *Service) CheckAvailability(ctx context.Context, shortCode string, signer *common.Address) (Availability, error) {
	code := normalize.NormalizeShortCode(shortCode)
	if !normalize.IsValidShortCode(code) || normalize.IsReservedShortCode(code) {
		return AvailabilityInvalid, nil
	}
	if s.registry == nil {
		return "", apperrors.Configuration("Short code availability cannot be checked.", apperrors.ErrRegistryNotConfigured)
	}

	rec, err := s.registry.GetRecord(ctx, code)
	if err != nil {
		return "", apperrors.Network("The registry could not be reached.", err)
	}

	switch {
	case !rec.HasAttestation():
		return AvailabilityAvailable, nil
	case signer != nil && rec.Owner == *signer:
		return AvailabilityOwned, nil
	default:
		return AvailabilityTaken, nil
	}
}

// SaveClaimDraft stores the normalized claim without validating it.
func (s *Service) SaveClaimDraft(d *types.ClaimDraft) error {
	return s.store.SaveClaimDraft(SnapshotClaim(d))
}

// SubmitClaim validates the claim, refuses codes held by someone else and
// stores the normalized draft.
func (s *Service) SubmitClaim(ctx context.Context, d *types.ClaimDraft, signer *common.Address) (Availability, error) {
	if err := ValidateClaim(d); err != nil {
		return AvailabilityInvalid, err
	}
	claim := SnapshotClaim(d)

	availability := AvailabilityAvailable
	if s.registry != nil {
		var err error
		availability, err = s.CheckAvailability(ctx, claim.ShortCode, signer)
		if err != nil {
			return "", err
		}
		if availability == AvailabilityTaken {
			return availability, apperrors.Input(fmt.Sprintf("Short code %s is already published by another organization.", claim.ShortCode), nil).
				WithNextStep("Choose a different short code.")
		}
	} else {
		s.logger.Sugar().Warnw("Registry not configured, skipping availability check", "shortCode", claim.ShortCode)
	}

	if err := s.store.SaveClaimDraft(claim); err != nil {
		return "", fmt.Errorf("failed to save claim draft: %w", err)
	}
	s.logger.Sugar().Infow("Claim saved", "shortCode", claim.ShortCode, "availability", availability)
	return availability, nil
}

// SaveRailsDraft stores the trimmed rails without validating them.
func (s *Service) SaveRailsDraft(d *types.RailsDraft) error {
	if d == nil {
		return fmt.Errorf("rails draft cannot be nil")
	}
	return s.store.SaveRailsDraft(SnapshotRails(d))
}

// SubmitRails validates the rails and stores the normalized snapshot.
func (s *Service) SubmitRails(d *types.RailsDraft) (*types.RailsDraft, error) {
	snap := SnapshotRails(d)
	if err := ValidateRails(snap); err != nil {
		return nil, err
	}
	if err := s.store.SaveRailsDraft(snap); err != nil {
		return nil, fmt.Errorf("failed to save rails draft: %w", err)
	}
	s.logger.Sugar().Infow("Rails saved", "rails", snap.EnabledRailNames())
	return snap, nil
}

// Drafts loads both drafts; either may be nil when never saved.
func (s *Service) Drafts() (*types.ClaimDraft, *types.RailsDraft, error) {
	claim, err := s.store.LoadClaimDraft()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load claim draft: %w", err)
	}
	rails, err := s.store.LoadRailsDraft()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rails draft: %w", err)
	}
	return claim, rails, nil
}
