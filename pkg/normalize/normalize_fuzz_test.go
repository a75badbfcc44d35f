package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzNormalizationIdempotent(f *testing.F) {
	f.Add("026-009-593")
	f.Add("gb33 bukb 2020 1555 5555 55")
	f.Add("")
	f.Add(" x 1\t2")

	f.Fuzz(func(t *testing.T, s string) {
		d := DigitsOnly(s)
		require.Equal(t, d, DigitsOnly(d))

		u := UpperNoSpaces(s)
		require.Equal(t, u, UpperNoSpaces(u))

		sc := NormalizeShortCode(s)
		require.Equal(t, sc, NormalizeShortCode(sc))
	})
}

func FuzzValidatorsNeverPanic(f *testing.F) {
	f.Add("026009593")
	f.Add("BOFAUS3NXXX")
	f.Add("GB33BUKB20201555555555")

	f.Fuzz(func(t *testing.T, s string) {
		if IsValidABARouting(s) {
			require.Len(t, DigitsOnly(s), 9)
		}
		_ = IsValidBIC(s)
		if IsLikelyIBAN(s) {
			n := len(UpperNoSpaces(s))
			require.GreaterOrEqual(t, n, 15)
			require.LessOrEqual(t, n, 34)
		}
	})
}
