package attestation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/persistence/persistencetest"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func TestBuildPayload_OnlyEnabledRails(t *testing.T) {
	rails := persistencetest.SampleRailsDraft()
	rails.EnableACH = false

	p := BuildPayload(persistencetest.SampleClaimDraft(), rails, fixedNow, "doma-testnet")

	assert.Equal(t, SchemaID, p.Schema)
	assert.Equal(t, "boa", p.Organization.ShortCode)
	assert.Equal(t, int64(1_700_000_000), p.Meta.CreatedAt)
	assert.Equal(t, "doma-testnet", p.Meta.NetworkHint)
	assert.NotNil(t, p.Rails.Wire)
	assert.Nil(t, p.Rails.ACH)
	assert.NotNil(t, p.Rails.International)
	assert.Equal(t, []string{types.RailNameWire, types.RailNameInternational}, IncludedRails(p))
}

func TestIncludedRails_None(t *testing.T) {
	p := BuildPayload(persistencetest.SampleClaimDraft(), &types.RailsDraft{}, fixedNow, "devnet")
	assert.Equal(t, []string{"None selected"}, IncludedRails(p))
}

func TestPrepare_Deterministic(t *testing.T) {
	p := BuildPayload(persistencetest.SampleClaimDraft(), persistencetest.SampleRailsDraft(), fixedNow, "doma-testnet")

	a, err := Prepare(p)
	require.NoError(t, err)
	b, err := Prepare(p)
	require.NoError(t, err)

	assert.Equal(t, a.Commitment, b.Commitment)
	assert.Equal(t, a.CID, b.CID)
	assert.True(t, strings.HasPrefix(a.CID, "bafkrei"))
	assert.Equal(t, commitment.HashPayload(a.Canonical), a.Commitment)
	assert.True(t, strings.HasPrefix(string(a.Canonical), `{"meta":`), "keys must be sorted")
}

func TestPrepare_NullRailsAreSerialized(t *testing.T) {
	p := BuildPayload(persistencetest.SampleClaimDraft(), &types.RailsDraft{EnableWire: true}, fixedNow, "devnet")
	prepared, err := Prepare(p)
	require.NoError(t, err)
	assert.Contains(t, string(prepared.Canonical), `"ach":null`)
	assert.Contains(t, string(prepared.Canonical), `"international":null`)
}

func TestBuildSignedMessage(t *testing.T) {
	var c commitment.PayloadCommitment
	c[31] = 0x01

	msg := BuildSignedMessage("boa", c, 1_700_000_000, "doma-testnet")

	expected := "VerifyWire Attestation\n" +
		"Schema: vwire-rails-v1\n" +
		"Org: boa\n" +
		"Hash: 0x0000000000000000000000000000000000000000000000000000000000000001\n" +
		"Time: 1700000000\n" +
		"Network: doma-testnet"
	assert.Equal(t, expected, msg)
}

func TestRailCommitments(t *testing.T) {
	rails := persistencetest.SampleRailsDraft()
	rails.EnableACH = false
	rails.Wire.Routing = "0260-09593"
	rails.Intl.IBAN = "gb82 west 1234 5698 7654 32"
	p := BuildPayload(persistencetest.SampleClaimDraft(), rails, fixedNow, "devnet")

	c := RailCommitments(p)

	assert.Equal(t, commitment.HashField("026009593"), c.WireRouting)
	assert.Equal(t, commitment.HashField("1234567890"), c.WireAccount)
	assert.Equal(t, commitment.EmptyFieldCommitment, c.AchRouting)
	assert.Equal(t, commitment.EmptyFieldCommitment, c.AchAccount)
	assert.Equal(t, commitment.HashField("GB82WEST12345698765432"), c.IBAN)
	assert.Equal(t, commitment.HashField("BOFAUS3N"), c.BIC)
	assert.True(t, c.AchRouting.IsUnset())
}
