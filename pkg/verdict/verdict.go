// Package verdict compares normalized payment identifiers with a bank's
// on-chain rail commitments and explains the outcome.
package verdict

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
)

type Kind string

const (
	KindMatch         Kind = "match"
	KindUnmatched     Kind = "unmatched"
	KindAmbiguous     Kind = "ambiguous"
	KindNoAttestation Kind = "no_attestation"
)

type Tone string

const (
	ToneInfo  Tone = "info"
	ToneWarn  Tone = "warn"
	ToneError Tone = "error"
	ToneHint  Tone = "hint"
)

type Explanation struct {
	Tone Tone   `json:"tone"`
	Text string `json:"text"`
}

// MatchResult records which attested rail fields the pasted identifiers hit.
type MatchResult struct {
	WireRouting bool `json:"wireRouting"`
	WireAccount bool `json:"wireAccount"`
	AchRouting  bool `json:"achRouting"`
	AchAccount  bool `json:"achAccount"`
	IntlIBAN    bool `json:"intlIban"`
	IntlBIC     bool `json:"intlBic"`
}

func (m MatchResult) Any() bool {
	return m.WireRouting || m.WireAccount || m.AchRouting || m.AchAccount || m.IntlIBAN || m.IntlBIC
}

type Verdict struct {
	Kind         Kind          `json:"kind"`
	Headline     string        `json:"headline"`
	Explanations []Explanation `json:"explanations"`
	Matches      MatchResult   `json:"matches"`
}

// Lines returns the explanation texts carrying the given tone.
func (v *Verdict) Lines(tone Tone) []string {
	return lo.FilterMap(v.Explanations, func(e Explanation, _ int) (string, bool) {
		return e.Text, e.Tone == tone
	})
}

const (
	headlineMatch        = "Matches bank-attested rails."
	headlineAmbiguous    = "Unusual or incomplete, please double-check."
	headlineUnmatched    = "No match to bank-attested rails."
	headlineNoIdentifier = "No payment identifiers detected in the pasted text."
)

// Evaluate produces the verdict for one check.
//
// A record field that is zero or the hash of the empty string counts as "rail
// not attested" and can never match, and a match also requires the pasted
// identifier to be non-empty. When identifiers were pasted but nothing
// matched, a warning about a missing rail family takes precedence and yields
// Ambiguous rather than Unmatched.
func Evaluate(shortCode string, n types.NormalizedIdentifiers, rec *types.OnChainRecord) *Verdict {
	v := &Verdict{Explanations: make([]Explanation, 0)}

	if !rec.HasAttestation() {
		v.Kind = KindNoAttestation
		v.Headline = fmt.Sprintf("No attestation found for %q.", shortCode)
		v.add(ToneInfo, "This bank short code has no published rails on chain.")
		return v
	}

	v.Matches = computeMatches(n, rec.RailCommitments)
	m := v.Matches

	if m.WireRouting {
		v.add(ToneInfo, fmt.Sprintf("Routing %s matches %s (attested).", code(n.Routing), types.RailNameWire))
	}
	if m.WireAccount {
		v.add(ToneInfo, fmt.Sprintf("Account %s matches %s (attested).", code(normalize.MaskAccount(n.Account)), types.RailNameWire))
	}
	if m.AchRouting {
		v.add(ToneInfo, fmt.Sprintf("Routing %s matches %s (attested).", code(n.Routing), types.RailNameACH))
	}
	if m.AchAccount {
		v.add(ToneInfo, fmt.Sprintf("Account %s matches %s (attested).", code(normalize.MaskAccount(n.Account)), types.RailNameACH))
	}
	if m.IntlIBAN {
		v.add(ToneInfo, fmt.Sprintf("IBAN %s matches %s (attested).", code(normalize.MaskIBAN(n.IBAN)), types.RailNameInternational))
	}
	if m.IntlBIC {
		v.add(ToneInfo, fmt.Sprintf("BIC %s matches %s (attested).", code(n.BIC), types.RailNameInternational))
	}

	warned := false
	if n.HasInternational() && !rec.HasInternational() {
		v.add(ToneWarn, "International identifiers present, but bank has no attested international rails.")
		warned = true
	}
	if n.HasUS() && !rec.HasUS() {
		v.add(ToneWarn, "US routing/account present, but bank has no attested US rails.")
		warned = true
	}

	switch {
	case m.Any():
		v.Kind = KindMatch
		v.Headline = headlineMatch
	case n.Any() && warned:
		v.Kind = KindAmbiguous
		v.Headline = headlineAmbiguous
	case n.Any():
		v.Kind = KindUnmatched
		v.Headline = headlineUnmatched
		if n.Routing != "" {
			v.add(ToneError, fmt.Sprintf("Routing %s did not match attested US rails.", code(n.Routing)))
		}
		if n.Account != "" {
			v.add(ToneError, fmt.Sprintf("Account %s did not match attested US rails.", code(normalize.MaskAccount(n.Account))))
		}
		if n.IBAN != "" {
			v.add(ToneError, fmt.Sprintf("IBAN %s did not match attested international rails.", code(normalize.MaskIBAN(n.IBAN))))
		}
		if n.BIC != "" {
			v.add(ToneError, fmt.Sprintf("BIC %s did not match attested international rails.", code(n.BIC)))
		}
	default:
		v.Kind = KindAmbiguous
		v.Headline = headlineNoIdentifier
		v.add(ToneHint, "Paste the full wiring or ACH instructions to verify.")
	}

	if rec.UpdatedAt != 0 {
		updated := time.Unix(int64(rec.UpdatedAt), 0).UTC().Format(time.RFC3339)
		v.add(ToneHint, fmt.Sprintf("Attestation version %d, updated %s.", rec.Version, updated))
	}

	return v
}

func computeMatches(n types.NormalizedIdentifiers, on types.RailCommitments) MatchResult {
	routing := commitment.HashField(n.Routing)
	account := commitment.HashField(n.Account)
	iban := commitment.HashField(n.IBAN)
	bic := commitment.HashField(n.BIC)

	return MatchResult{
		WireRouting: fieldMatches(n.Routing, routing, on.WireRouting),
		WireAccount: fieldMatches(n.Account, account, on.WireAccount),
		AchRouting:  fieldMatches(n.Routing, routing, on.AchRouting),
		AchAccount:  fieldMatches(n.Account, account, on.AchAccount),
		IntlIBAN:    fieldMatches(n.IBAN, iban, on.IBAN),
		IntlBIC:     fieldMatches(n.BIC, bic, on.BIC),
	}
}

func fieldMatches(value string, local, onChain commitment.FieldCommitment) bool {
	return value != "" && !onChain.IsUnset() && local == onChain
}

func (v *Verdict) add(tone Tone, text string) {
	v.Explanations = append(v.Explanations, Explanation{Tone: tone, Text: text})
}

func code(s string) string {
	return "`" + s + "`"
}
