package verdict

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/extract"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
)

var bankOwner = common.HexToAddress("0x00000000000000000000000000000000000000b0")

func usWireRecord() *types.OnChainRecord {
	return &types.OnChainRecord{
		Owner:     bankOwner,
		UpdatedAt: 1700000000,
		Version:   2,
		RailCommitments: types.RailCommitments{
			WireRouting: commitment.HashField("026009593"),
			WireAccount: commitment.HashField("000123456789"),
			AchRouting:  commitment.EmptyFieldCommitment,
			AchAccount:  commitment.EmptyFieldCommitment,
			IBAN:        commitment.EmptyFieldCommitment,
			BIC:         commitment.EmptyFieldCommitment,
		},
	}
}

func check(text string, rec *types.OnChainRecord) *Verdict {
	return Evaluate("boa", normalize.Identifiers(extract.Extract(text)), rec)
}

func TestEvaluate_MatchOnWireRouting(t *testing.T) {
	rec := usWireRecord()
	rec.WireAccount = commitment.EmptyFieldCommitment

	v := check("Routing: 026009593", rec)

	assert.Equal(t, KindMatch, v.Kind)
	assert.True(t, v.Matches.WireRouting)
	assert.False(t, v.Matches.AchRouting)
	info := v.Lines(ToneInfo)
	require.Len(t, info, 1)
	assert.Equal(t, "Routing `026009593` matches US Wires (attested).", info[0])
}

func TestEvaluate_MatchMasksAccount(t *testing.T) {
	v := check("Routing: 026009593 Account: 000123456789", usWireRecord())

	assert.Equal(t, KindMatch, v.Kind)
	assert.Contains(t, v.Lines(ToneInfo), "Account `•••6789` matches US Wires (attested).")
	for _, e := range v.Explanations {
		assert.NotContains(t, e.Text, "000123456789")
	}
}

func TestEvaluate_UnmatchedRouting(t *testing.T) {
	rec := usWireRecord()
	rec.WireAccount = commitment.EmptyFieldCommitment

	v := check("Routing: 021000021", rec)

	assert.Equal(t, KindUnmatched, v.Kind)
	assert.Equal(t, []string{"Routing `021000021` did not match attested US rails."}, v.Lines(ToneError))
	assert.Empty(t, v.Lines(ToneWarn))
}

func TestEvaluate_InternationalWithoutIntlRails(t *testing.T) {
	v := check("IBAN GB33BUKB20201555555555", usWireRecord())

	assert.Equal(t, KindAmbiguous, v.Kind)
	assert.Equal(t,
		[]string{"International identifiers present, but bank has no attested international rails."},
		v.Lines(ToneWarn))
	assert.Empty(t, v.Lines(ToneError))
}

func TestEvaluate_USWithoutUSRails(t *testing.T) {
	rec := &types.OnChainRecord{
		Owner: bankOwner,
		RailCommitments: types.RailCommitments{
			IBAN: commitment.HashField("GB33BUKB20201555555555"),
		},
	}

	v := check("Routing: 026009593", rec)

	assert.Equal(t, KindAmbiguous, v.Kind)
	assert.Len(t, v.Lines(ToneWarn), 1)
}

func TestEvaluate_NoAttestation(t *testing.T) {
	v := check("Routing: 026009593", &types.OnChainRecord{})

	assert.Equal(t, KindNoAttestation, v.Kind)
	assert.Equal(t, `No attestation found for "boa".`, v.Headline)
	assert.False(t, v.Matches.Any())
	assert.Len(t, v.Explanations, 1)

	assert.Equal(t, KindNoAttestation, Evaluate("boa", types.NormalizedIdentifiers{}, nil).Kind)
}

func TestEvaluate_NoIdentifiersPasted(t *testing.T) {
	v := check("hello", usWireRecord())

	assert.Equal(t, KindAmbiguous, v.Kind)
	assert.Equal(t, headlineNoIdentifier, v.Headline)
	assert.Equal(t, []string{"Paste the full wiring or ACH instructions to verify."}, v.Lines(ToneHint)[:1])
}

func TestEvaluate_EmptyInputNeverMatchesEmptyCommitment(t *testing.T) {
	// A record holding keccak("") everywhere must not match empty input,
	// and a record holding all zero fields must not either.
	for _, rec := range []*types.OnChainRecord{
		{Owner: bankOwner, RailCommitments: types.RailCommitments{
			WireRouting: commitment.EmptyFieldCommitment,
			WireAccount: commitment.EmptyFieldCommitment,
			AchRouting:  commitment.EmptyFieldCommitment,
			AchAccount:  commitment.EmptyFieldCommitment,
			IBAN:        commitment.EmptyFieldCommitment,
			BIC:         commitment.EmptyFieldCommitment,
		}},
		{Owner: bankOwner},
	} {
		v := Evaluate("boa", types.NormalizedIdentifiers{}, rec)
		assert.False(t, v.Matches.Any())
		assert.NotEqual(t, KindMatch, v.Kind)
	}
}

func TestEvaluate_ZeroFieldNeverMatches(t *testing.T) {
	rec := usWireRecord()
	rec.WireRouting = commitment.ZeroFieldCommitment

	v := check("Routing: 026009593", rec)
	assert.False(t, v.Matches.WireRouting)
}

func TestEvaluate_FooterHint(t *testing.T) {
	v := check("Routing: 026009593", usWireRecord())
	hints := v.Lines(ToneHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "Attestation version 2, updated 2023-11-14T22:13:20Z.", hints[0])

	rec := usWireRecord()
	rec.UpdatedAt = 0
	assert.Empty(t, check("Routing: 026009593", rec).Lines(ToneHint))
}

func TestEvaluate_AchAndInternationalMatches(t *testing.T) {
	rec := &types.OnChainRecord{
		Owner: bankOwner,
		RailCommitments: types.RailCommitments{
			AchRouting: commitment.HashField("021000021"),
			AchAccount: commitment.HashField("99887766"),
			IBAN:       commitment.HashField("GB33BUKB20201555555555"),
			BIC:        commitment.HashField("BUKBGB22"),
		},
	}

	v := check("ACH 021000021 acct 99887766, IBAN gb33bukb20201555555555 BIC bukbgb22", rec)

	assert.Equal(t, KindMatch, v.Kind)
	assert.Equal(t, MatchResult{AchRouting: true, AchAccount: true, IntlIBAN: true, IntlBIC: true}, v.Matches)
	assert.Contains(t, v.Lines(ToneInfo), "IBAN `•••555555` matches International (attested).")
	assert.Contains(t, v.Lines(ToneInfo), "BIC `BUKBGB22` matches International (attested).")
}
