// Package normalize converts user supplied payment identifiers and short codes
// into the canonical forms that are hashed and compared against the registry.
//
// Every function is pure and total: malformed input yields an empty string or
// false, never a panic or an error.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/verifywire/verifywire-go/pkg/types"
)

const maskPrefix = "•••"

var (
	shortCodePattern = regexp.MustCompile(`^[a-z0-9-]{1,30}$`)
	bicPattern       = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	ibanPattern      = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]+$`)

	abaWeights = [3]int{3, 7, 1}
)

// reservedShortCodes can never be claimed by a bank.
var reservedShortCodes = map[string]struct{}{
	"www":             {},
	"mail":            {},
	"api":             {},
	"admin":           {},
	"root":            {},
	"support":         {},
	"help":            {},
	"*":               {},
	"_acme-challenge": {},
}

// DigitsOnly drops every rune that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpperNoSpaces removes all whitespace and upper-cases the remainder.
func UpperNoSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// IsValidABARouting reports whether s carries exactly nine digits that satisfy
// the ABA 3-7-1 checksum. Separators between the digits are ignored.
func IsValidABARouting(s string) bool {
	digits := DigitsOnly(s)
	if len(digits) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += abaWeights[i%3] * int(digits[i]-'0')
	}
	return sum%10 == 0
}

// IsValidBIC is a structural check only; it does not consult any BIC directory.
func IsValidBIC(s string) bool {
	return bicPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// IsLikelyIBAN checks the country/check-digit prefix and overall length.
// The mod-97 checksum is intentionally not verified.
func IsLikelyIBAN(s string) bool {
	v := UpperNoSpaces(s)
	if !ibanPattern.MatchString(v) {
		return false
	}
	return len(v) >= 15 && len(v) <= 34
}

func NormalizeShortCode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidShortCode accepts 1 to 30 lower-case letters, digits, and hyphens,
// with no leading or trailing hyphen. Input is normalized first.
func IsValidShortCode(s string) bool {
	v := NormalizeShortCode(s)
	if !shortCodePattern.MatchString(v) {
		return false
	}
	return !strings.HasPrefix(v, "-") && !strings.HasSuffix(v, "-")
}

func IsReservedShortCode(s string) bool {
	_, ok := reservedShortCodes[NormalizeShortCode(s)]
	return ok
}

// Identifiers applies the field specific canonical form to each extracted value.
func Identifiers(ext types.ExtractedIdentifiers) types.NormalizedIdentifiers {
	return types.NormalizedIdentifiers{
		Routing: DigitsOnly(ext.Routing),
		Account: DigitsOnly(ext.Account),
		IBAN:    UpperNoSpaces(ext.IBAN),
		BIC:     UpperNoSpaces(ext.BIC),
	}
}

// Mask keeps only the trailing show runes of s. An empty value renders as "—".
func Mask(s string, show int) string {
	if s == "" {
		return "—"
	}
	runes := []rune(s)
	if show < len(runes) {
		runes = runes[len(runes)-show:]
	}
	return maskPrefix + string(runes)
}

func MaskAccount(s string) string {
	return Mask(s, 4)
}

func MaskIBAN(s string) string {
	return Mask(s, 6)
}
