// Package extract pulls candidate payment identifiers out of free form text.
//
// Extraction is heuristic and never fails. It only finds substrings; the
// normalize package is responsible for turning them into comparable values.
package extract

import (
	"regexp"

	"github.com/samber/lo"
	"github.com/verifywire/verifywire-go/pkg/types"
)

var (
	routingPattern = regexp.MustCompile(`\b[0-9]{9}\b`)
	ibanPattern    = regexp.MustCompile(`(?i)\b[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}\b`)
	bicPattern     = regexp.MustCompile(`(?i)\b[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?\b`)
	accountPattern = regexp.MustCompile(`\b[0-9]{6,}\b`)
)

// Extract scans text for a routing number, account number, IBAN and BIC.
//
// Routing, IBAN and BIC take the first match. The account is the longest run
// of six or more digits that is not any routing candidate; among equally long
// candidates the earliest wins.
func Extract(text string) types.ExtractedIdentifiers {
	routings := routingPattern.FindAllString(text, -1)

	return types.ExtractedIdentifiers{
		Routing: routingPattern.FindString(text),
		Account: longestAccount(accountPattern.FindAllString(text, -1), routings),
		IBAN:    ibanPattern.FindString(text),
		BIC:     bicPattern.FindString(text),
	}
}

func longestAccount(candidates, routings []string) string {
	candidates = lo.Reject(candidates, func(c string, _ int) bool {
		return lo.Contains(routings, c)
	})
	return lo.MaxBy(candidates, func(a, b string) bool {
		return len(a) > len(b)
	})
}
