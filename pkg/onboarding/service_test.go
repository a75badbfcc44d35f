package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/persistence/memory"
	"github.com/verifywire/verifywire-go/pkg/types"
	"go.uber.org/zap/zaptest"
)

func publishedStub(owner common.Address) *contractCaller.RegistryStub {
	stub := contractCaller.NewRegistryStub()
	stub.SetRecord("boa", &types.OnChainRecord{
		Owner:   owner,
		Version: 1,
		RailCommitments: types.RailCommitments{
			WireRouting: commitment.HashField("026009593"),
		},
	})
	return stub
}

func TestService_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	owner := common.HexToAddress("0x00000000000000000000000000000000000000b0")
	other := common.HexToAddress("0x00000000000000000000000000000000000000c0")
	svc := NewService(memory.NewMemoryPersistence(), publishedStub(owner), zaptest.NewLogger(t))

	tests := []struct {
		name   string
		code   string
		signer *common.Address
		want   Availability
	}{
		{"unpublished", "acme", nil, AvailabilityAvailable},
		{"published by signer", "BOA", &owner, AvailabilityOwned},
		{"published by someone else", "boa", &other, AvailabilityTaken},
		{"published, no signer", "boa", nil, AvailabilityTaken},
		{"reserved", "api", nil, AvailabilityInvalid},
		{"malformed", "bank!", nil, AvailabilityInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CheckAvailability(ctx, tt.code, tt.signer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CheckAvailabilityErrors(t *testing.T) {
	ctx := context.Background()

	svc := NewService(memory.NewMemoryPersistence(), nil, zaptest.NewLogger(t))
	_, err := svc.CheckAvailability(ctx, "boa", nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfiguration))

	stub := contractCaller.NewRegistryStub()
	stub.GetErr = errors.New("dial tcp: connection refused")
	svc = NewService(memory.NewMemoryPersistence(), stub, zaptest.NewLogger(t))
	_, err = svc.CheckAvailability(ctx, "boa", nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
}

func TestService_SubmitClaim(t *testing.T) {
	ctx := context.Background()
	owner := common.HexToAddress("0x00000000000000000000000000000000000000b0")
	store := memory.NewMemoryPersistence()
	svc := NewService(store, publishedStub(owner), zaptest.NewLogger(t))

	t.Run("taken code is refused and not saved", func(t *testing.T) {
		availability, err := svc.SubmitClaim(ctx, validClaim(), nil)
		require.Error(t, err)
		assert.Equal(t, AvailabilityTaken, availability)

		saved, err := store.LoadClaimDraft()
		require.NoError(t, err)
		assert.Nil(t, saved)
	})

	t.Run("owner may republish", func(t *testing.T) {
		d := validClaim()
		d.ShortCode = " BoA "
		availability, err := svc.SubmitClaim(ctx, d, &owner)
		require.NoError(t, err)
		assert.Equal(t, AvailabilityOwned, availability)

		saved, err := store.LoadClaimDraft()
		require.NoError(t, err)
		assert.Equal(t, "boa", saved.ShortCode)
	})

	t.Run("invalid claim", func(t *testing.T) {
		_, err := svc.SubmitClaim(ctx, &types.ClaimDraft{}, nil)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInput))
	})

	t.Run("no registry still saves", func(t *testing.T) {
		offline := NewService(memory.NewMemoryPersistence(), nil, zaptest.NewLogger(t))
		availability, err := offline.SubmitClaim(ctx, validClaim(), nil)
		require.NoError(t, err)
		assert.Equal(t, AvailabilityAvailable, availability)
	})
}

func TestService_Rails(t *testing.T) {
	store := memory.NewMemoryPersistence()
	svc := NewService(store, nil, zaptest.NewLogger(t))

	broken := &types.RailsDraft{EnableWire: true, Wire: types.RailDetails{Routing: "12"}}
	require.NoError(t, svc.SaveRailsDraft(broken), "drafts save without validation")

	_, err := svc.SubmitRails(broken)
	require.Error(t, err)

	snap, err := svc.SubmitRails(validRails())
	require.NoError(t, err)
	assert.Equal(t, "BOFAUS3N", snap.Intl.BIC)

	require.NoError(t, svc.SaveClaimDraft(validClaim()))
	claim, rails, err := svc.Drafts()
	require.NoError(t, err)
	assert.Equal(t, "boa", claim.ShortCode)
	assert.Equal(t, snap, rails)
}
