package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anirudh7k/ocr-bill-extraction/dto"
)

func classify(text string) ([]dto.RoleAssignment, float64) {
	rawTokens := ExtractRawTokens(text)
	normalized, _, provenance := NormalizeAmounts(rawTokens)
	return ClassifyAmounts(normalized, text, rawTokens, provenance)
}

func TestClassifyAmountsExclusiveLines(t *testing.T) {
	amounts, confidence := classify("Subtotal: 1000\nTotal: 1200")

	assert.Len(t, amounts, 2)
	assert.Equal(t, dto.AmountSubtotal, amounts[0].Type)
	assert.Equal(t, 1000.0, amounts[0].Value)
	assert.Equal(t, dto.AmountTotalBill, amounts[1].Type)
	assert.Equal(t, 1200.0, amounts[1].Value)
	assert.NotEqual(t, amounts[0].Source, amounts[1].Source)
	assert.InDelta(t, 0.75, confidence, 1e-9)
}

func TestClassifyAmountsTakesLastNumberOnLine(t *testing.T) {
	// The trailing number is the amount; the 18% is the tax rate.
	amounts, _ := classify("Tax (18%): 450")

	assert.Len(t, amounts, 1)
	assert.Equal(t, dto.AmountTax, amounts[0].Type)
	assert.Equal(t, 450.0, amounts[0].Value)
	assert.False(t, amounts[0].IsPercent)
}

func TestClassifyAmountsPercentValue(t *testing.T) {
	amounts, _ := classify("Discount 10%")

	assert.Len(t, amounts, 1)
	assert.Equal(t, dto.AmountDiscount, amounts[0].Type)
	assert.Equal(t, 10.0, amounts[0].Value)
	assert.True(t, amounts[0].IsPercent)
}

func TestClassifyAmountsFuzzyKeywordMatch(t *testing.T) {
	// OCR-mangled keyword still classifies via similarity matching
	amounts, _ := classify("Subtotol 900")

	assert.Len(t, amounts, 1)
	assert.Equal(t, dto.AmountSubtotal, amounts[0].Type)
	assert.Equal(t, 900.0, amounts[0].Value)
}

func TestClassifyAmountsFirstRoleClaimsLine(t *testing.T) {
	// "Total Paid: 500" matches both total_bill and paid; total_bill is
	// processed first and claims the line.
	amounts, _ := classify("Total Paid: 500")

	assert.Len(t, amounts, 1)
	assert.Equal(t, dto.AmountTotalBill, amounts[0].Type)
	assert.Equal(t, 500.0, amounts[0].Value)
}

func TestClassifyAmountsNoMatches(t *testing.T) {
	amounts, confidence := classify("nothing matches here anyway")

	assert.Empty(t, amounts)
	assert.InDelta(t, 0.45, confidence, 1e-9)
}

func TestClassifyAmountsSourceNamesLine(t *testing.T) {
	amounts, _ := classify("Grand Total 1,180")

	assert.Len(t, amounts, 1)
	assert.Equal(t, dto.AmountTotalBill, amounts[0].Type)
	assert.Equal(t, 1180.0, amounts[0].Value)
	assert.Equal(t, "text: 'Grand Total 1,180'", amounts[0].Source)
}

func TestClassifyAmountsKeywordMatchIsWholeWord(t *testing.T) {
	// "taxation" embeds "tax" but is neither a whole-word nor a close
	// enough fuzzy match
	amounts, _ := classify("Taxation 250")

	assert.Empty(t, amounts)
}

func TestClassifyAmountsLineWithoutNumber(t *testing.T) {
	// A keyword line with no numeric value yields no assignment
	amounts, _ := classify("Total due on receipt\nTotal 840")

	assert.Len(t, amounts, 1)
	assert.Equal(t, dto.AmountTotalBill, amounts[0].Type)
	assert.Equal(t, 840.0, amounts[0].Value)
}
