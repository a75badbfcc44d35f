// Package persistencetest holds a behavioural test suite shared by every
// IDraftStore backend.
package persistencetest

import (
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/types"
)

// Run exercises a fresh store returned by newStore for every subtest.
// The suite closes the stores it opens.
func Run(t *testing.T, newStore func(t *testing.T) persistence.IDraftStore) {
	t.Run("LoadEmpty", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		claim, err := s.LoadClaimDraft()
		require.NoError(t, err)
		assert.Nil(t, claim)

		rails, err := s.LoadRailsDraft()
		require.NoError(t, err)
		assert.Nil(t, rails)

		receipt, err := s.LoadReceipt()
		require.NoError(t, err)
		assert.Nil(t, receipt)

		wallet, err := s.LoadWalletIdentity()
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("ClaimDraftRoundTrip", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		draft := SampleClaimDraft()
		require.NoError(t, s.SaveClaimDraft(draft))

		loaded, err := s.LoadClaimDraft()
		require.NoError(t, err)
		assert.Equal(t, draft, loaded)
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		first := SampleClaimDraft()
		require.NoError(t, s.SaveClaimDraft(first))

		second := SampleClaimDraft()
		second.BrandName = "Renamed"
		require.NoError(t, s.SaveClaimDraft(second))

		loaded, err := s.LoadClaimDraft()
		require.NoError(t, err)
		assert.Equal(t, "Renamed", loaded.BrandName)
	})

	t.Run("RailsDraftKeepsDisabledValues", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		draft := SampleRailsDraft()
		draft.EnableACH = false
		require.NoError(t, s.SaveRailsDraft(draft))

		loaded, err := s.LoadRailsDraft()
		require.NoError(t, err)
		assert.Equal(t, draft, loaded)
		assert.Equal(t, "000123456789", loaded.ACH.Account)
	})

	t.Run("StoredValueIsDetachedFromCaller", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		draft := SampleRailsDraft()
		require.NoError(t, s.SaveRailsDraft(draft))
		draft.Wire.Account = "mutated"

		loaded, err := s.LoadRailsDraft()
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", loaded.Wire.Account)
	})

	t.Run("ReceiptRoundTrip", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		receipt := SampleReceipt()
		require.NoError(t, s.SaveReceipt(receipt))

		loaded, err := s.LoadReceipt()
		require.NoError(t, err)
		assert.Equal(t, receipt, loaded)
		assert.True(t, loaded.Published())
	})

	t.Run("WalletIdentityClear", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		identity := &types.WalletIdentity{
			Connected: true,
			Address:   common.HexToAddress("0x1111111111111111111111111111111111111111"),
		}
		require.NoError(t, s.SaveWalletIdentity(identity))
		require.NoError(t, s.SaveClaimDraft(SampleClaimDraft()))

		loaded, err := s.LoadWalletIdentity()
		require.NoError(t, err)
		assert.Equal(t, identity, loaded)

		require.NoError(t, s.ClearWalletIdentity())
		require.NoError(t, s.ClearWalletIdentity())

		loaded, err = s.LoadWalletIdentity()
		require.NoError(t, err)
		assert.Nil(t, loaded)

		claim, err := s.LoadClaimDraft()
		require.NoError(t, err)
		assert.NotNil(t, claim)
	})

	t.Run("NilSaveRejected", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		assert.Error(t, s.SaveClaimDraft(nil))
		assert.Error(t, s.SaveReceipt(nil))
	})

	t.Run("ConcurrentSaves", func(t *testing.T) {
		s := newStore(t)
		defer func() { _ = s.Close() }()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.SaveRailsDraft(SampleRailsDraft()))
				_, err := s.LoadRailsDraft()
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		loaded, err := s.LoadRailsDraft()
		require.NoError(t, err)
		assert.Equal(t, SampleRailsDraft(), loaded)
	})

	t.Run("CloseIsIdempotent", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.HealthCheck())
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		assert.Error(t, s.HealthCheck())
		assert.Error(t, s.SaveClaimDraft(SampleClaimDraft()))
		_, err := s.LoadClaimDraft()
		assert.Error(t, err)
	})
}

func SampleClaimDraft() *types.ClaimDraft {
	return &types.ClaimDraft{
		LegalName:  "Bank of America, N.A.",
		BrandName:  "Bank of America",
		ShortCode:  "boa",
		Authorized: true,
	}
}

func SampleRailsDraft() *types.RailsDraft {
	return &types.RailsDraft{
		EnableWire: true,
		EnableACH:  true,
		EnableIntl: true,
		Wire:       types.RailDetails{Routing: "026009593", Account: "1234567890", Notes: "Fedwire only"},
		ACH:        types.RailDetails{Routing: "011000015", Account: "000123456789"},
		Intl:       types.IntlDetails{IBAN: "GB82WEST12345698765432", BIC: "BOFAUS3N"},
	}
}

func SampleReceipt() *types.SignedAttestation {
	txHash := common.HexToHash("0xabc")
	return &types.SignedAttestation{
		Schema:                "vwire-rails-v1",
		OrganizationShortCode: "boa",
		PayloadCommitment:     commitment.PayloadCommitment{0x01, 0x02},
		Signature:             []byte{0xde, 0xad, 0xbe, 0xef},
		SignerAddress:         common.HexToAddress("0x1111111111111111111111111111111111111111"),
		SignedMessage:         "VerifyWire Rails Attestation",
		SignedAt:              1700000000,
		Payload: &types.AttestationPayload{
			Schema:       "vwire-rails-v1",
			Organization: types.Organization{ShortCode: "boa", LegalName: "Bank of America, N.A.", BrandName: "Bank of America"},
			Rails: types.PayloadRails{
				Wire: &types.RailDetails{Routing: "026009593", Account: "1234567890"},
			},
			Meta: types.PayloadMeta{CreatedAt: 1700000000, NetworkHint: "doma-testnet"},
		},
		CID:            "bafkreitest",
		Network:        "doma-testnet",
		Status:         types.PublishStatusPublished,
		TransactionRef: &txHash,
	}
}
