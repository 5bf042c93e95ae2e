package utils

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/anirudh7k/ocr-bill-extraction/dto"
)

// ocrDigitSubstitutions maps characters Tesseract commonly confuses with
// digits back to the digit. Built once; never mutated at runtime.
var ocrDigitSubstitutions = map[rune]rune{
	'O': '0', 'o': '0',
	'l': '1', 'I': '1', 'i': '1', '|': '1',
	'S': '5', 's': '5',
	'B': '8',
	'g': '9',
}

// A repaired token must be a plain decimal: digits with at most one
// fractional part.
var decimalRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)

// FixToken repairs OCR character confusions in a single raw token and
// parses it into a NormalizedAmount. Returns nil when the token cannot
// be coerced into a well-formed decimal; such tokens are silently
// dropped from the pipeline.
func FixToken(token string) *dto.NormalizedAmount {
	if token == "" {
		return nil
	}

	t := strings.TrimSpace(token)

	isPercent := strings.HasSuffix(t, "%")
	if isPercent {
		t = strings.TrimSuffix(t, "%")
	}

	// Thousands separators
	t = strings.ReplaceAll(t, ",", "")

	t = strings.Map(func(ch rune) rune {
		if digit, ok := ocrDigitSubstitutions[ch]; ok {
			return digit
		}
		return ch
	}, t)

	if !decimalRegex.MatchString(t) {
		return nil
	}

	value, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return nil
	}

	return &dto.NormalizedAmount{Value: value, IsPercent: isPercent, Raw: token}
}

// NormalizeAmounts runs FixToken over the full token set, collecting
// successful results in input order. The provenance map traces each
// normalized amount back to its original raw token. The confidence is a
// coverage heuristic: more successfully parsed tokens means higher
// confidence, capped below 1.0.
func NormalizeAmounts(rawTokens []string) ([]dto.NormalizedAmount, float64, map[string]dto.NormalizedAmount) {
	results := make([]dto.NormalizedAmount, 0, len(rawTokens))
	provenance := make(map[string]dto.NormalizedAmount)

	for _, token := range rawTokens {
		fixed := FixToken(token)
		if fixed == nil {
			continue
		}
		results = append(results, *fixed)
		provenance[token] = *fixed
		log.Printf("Raw token %q -> normalized value=%v percent=%v", token, fixed.Value, fixed.IsPercent)
	}

	confidence := math.Min(0.99, 0.5+0.15*float64(len(results)))
	return results, confidence, provenance
}
