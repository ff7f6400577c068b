package bikram

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goldenConversion struct {
	Gregorian Date   `json:"gregorian"`
	Bikram    Date   `json:"bikram"`
	Method    Method `json:"method"`
}

// TestGoldenConversions checks both directions against known calendar pairs.
func TestGoldenConversions(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "conversions.json"))
	require.NoError(t, err, "Failed to read golden file")

	var golden struct {
		Conversions []goldenConversion `json:"conversions"`
	}
	require.NoError(t, json.Unmarshal(data, &golden))
	require.NotEmpty(t, golden.Conversions)

	c := New()
	for _, tc := range golden.Conversions {
		t.Run(tc.Gregorian.String(), func(t *testing.T) {
			bs, err := c.GregorianToBikram(tc.Gregorian.Year, tc.Gregorian.Month, tc.Gregorian.Day)
			require.NoError(t, err)
			assert.Equal(t, tc.Bikram, bs)
			assert.Equal(t, tc.Method, c.Method(bs.Year))

			ad, err := c.BikramToGregorian(tc.Bikram.Year, tc.Bikram.Month, tc.Bikram.Day)
			require.NoError(t, err)
			assert.Equal(t, tc.Gregorian, ad)
		})
	}
}
