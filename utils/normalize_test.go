package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixTokenCleanDecimal(t *testing.T) {
	fixed := FixToken("450.50")

	assert.NotNil(t, fixed)
	assert.Equal(t, 450.5, fixed.Value)
	assert.False(t, fixed.IsPercent)
	assert.Equal(t, "450.50", fixed.Raw)
}

func TestFixTokenRepairsOCRConfusions(t *testing.T) {
	fixed := FixToken("S0O")

	assert.NotNil(t, fixed)
	assert.Equal(t, 500.0, fixed.Value)
}

func TestFixTokenPercent(t *testing.T) {
	fixed := FixToken("18%")

	assert.NotNil(t, fixed)
	assert.Equal(t, 18.0, fixed.Value)
	assert.True(t, fixed.IsPercent)
	assert.Equal(t, "18%", fixed.Raw)
}

func TestFixTokenStripsThousandsSeparators(t *testing.T) {
	fixed := FixToken("1,250")

	assert.NotNil(t, fixed)
	assert.Equal(t, 1250.0, fixed.Value)
}

func TestFixTokenRejectsInvalid(t *testing.T) {
	assert.Nil(t, FixToken("12-34"))
	assert.Nil(t, FixToken("12.34.56"))
	assert.Nil(t, FixToken(""))
	assert.Nil(t, FixToken("abc"))
}

func TestNormalizeAmounts(t *testing.T) {
	results, confidence, provenance := NormalizeAmounts([]string{"S0O", "12-34", "18%"})

	assert.Len(t, results, 2)
	assert.Equal(t, 500.0, results[0].Value)
	assert.Equal(t, 18.0, results[1].Value)
	assert.InDelta(t, 0.8, confidence, 1e-9)

	// Provenance is keyed by the original raw token; rejected tokens
	// leave no trace.
	assert.Contains(t, provenance, "S0O")
	assert.Contains(t, provenance, "18%")
	assert.NotContains(t, provenance, "12-34")
}

func TestNormalizationConfidenceBounds(t *testing.T) {
	_, empty, _ := NormalizeAmounts(nil)
	_, one, _ := NormalizeAmounts([]string{"100"})
	_, two, _ := NormalizeAmounts([]string{"100", "200"})
	_, many, _ := NormalizeAmounts([]string{"10", "20", "30", "40", "50"})

	assert.InDelta(t, 0.5, empty, 1e-9)
	assert.InDelta(t, 0.65, one, 1e-9)
	assert.InDelta(t, 0.8, two, 1e-9)

	// More parsed tokens never lowers confidence; the cap holds.
	assert.LessOrEqual(t, empty, one)
	assert.LessOrEqual(t, one, two)
	assert.InDelta(t, 0.99, many, 1e-9)
}
