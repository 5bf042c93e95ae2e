package utils

import (
	"regexp"
	"strings"

	"github.com/anirudh7k/ocr-bill-extraction/dto"
)

var (
	// Coarse tokens are whitespace- or comma-delimited chunks of the OCR text.
	coarseSplitRegex = regexp.MustCompile(`[\s,]+`)

	// A candidate amount is a run of digits or common OCR digit misreads
	// (O, I, l, S, b, B), optionally grouped by '.' or ',' and optionally
	// suffixed by '%'.
	amountTokenRegex = regexp.MustCompile(`[0-9OIlSbB]+(?:[.,][0-9OIlSbB]+)*%?`)
)

// ExtractRawTokens scans OCR text for substrings that plausibly encode a
// number or percentage. Candidates are returned deduplicated, in order of
// first occurrence. Single-character candidates are dropped unless they
// carry a '%' suffix, so a lone misread "O" is not treated as a number.
func ExtractRawTokens(text string) []string {
	if text == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var candidates []string

	for _, coarse := range coarseSplitRegex.Split(text, -1) {
		coarse = strings.TrimSpace(coarse)
		if coarse == "" {
			continue
		}
		for _, match := range amountTokenRegex.FindAllString(coarse, -1) {
			if len(match) <= 1 && !strings.Contains(match, "%") {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			candidates = append(candidates, match)
		}
	}

	return candidates
}

// DetectCurrencyHint guesses the bill's currency from keyword or symbol
// presence. Rules are checked in the order INR, USD, EUR; the first match
// wins. The check is substring-based and deliberately loose.
func DetectCurrencyHint(text string) dto.CurrencyHint {
	if text == "" {
		return dto.CurrencyUnknown
	}
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "inr"),
		strings.Contains(lower, "rs"),
		strings.Contains(lower, "rupee"),
		strings.Contains(lower, "₹"):
		return dto.CurrencyINR
	case strings.Contains(lower, "$"), strings.Contains(lower, "usd"):
		return dto.CurrencyUSD
	case strings.Contains(lower, "€"), strings.Contains(lower, "eur"):
		return dto.CurrencyEUR
	}

	return dto.CurrencyUnknown
}
