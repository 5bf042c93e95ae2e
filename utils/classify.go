package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/anirudh7k/ocr-bill-extraction/dto"
)

// fuzzyMatchThreshold is the minimum word-to-keyword similarity for a
// line to count as a role match when no exact whole-word match exists.
const fuzzyMatchThreshold = 0.70

var fuzzyParams = levenshtein.NewParams()

// roleSpec pairs a semantic role with its keyword list and the compiled
// whole-word patterns for each keyword.
type roleSpec struct {
	role     dto.AmountType
	keywords []string
	patterns []*regexp.Regexp
}

// roleSpecs is iterated in this fixed order; the first role to match a
// line claims it for good.
var roleSpecs = buildRoleSpecs()

func buildRoleSpecs() []roleSpec {
	defs := []struct {
		role     dto.AmountType
		keywords []string
	}{
		{dto.AmountSubtotal, []string{"subtotal"}},
		{dto.AmountTax, []string{"tax", "gst", "cgst", "sgst", "vat"}},
		{dto.AmountTotalBill, []string{"grand total", "total", "amount payable", "total amount"}},
		{dto.AmountPaid, []string{"paid", "received", "paid amount", "amount paid"}},
		{dto.AmountDue, []string{"due", "balance", "balance due", "amount due", "remaining"}},
		{dto.AmountDiscount, []string{"discount", "disc", "less"}},
	}

	specs := make([]roleSpec, 0, len(defs))
	for _, def := range defs {
		patterns := make([]*regexp.Regexp, 0, len(def.keywords))
		for _, kw := range def.keywords {
			patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		specs = append(specs, roleSpec{role: def.role, keywords: def.keywords, patterns: patterns})
	}
	return specs
}

var (
	lineBreakRegex  = regexp.MustCompile(`[\r\n]+`)
	lineNumberRegex = regexp.MustCompile(`\d+(\.\d+)?%?`)
)

// ClassifyAmounts assigns semantic roles to the amounts appearing in the
// bill text. Roles are scanned in a fixed order and each line can be
// claimed by at most one role; the first role to match a line wins it.
// The normalized amounts, raw tokens and provenance map accompany the
// text for callers that want to trace assignments, but classification
// itself works line by line on the source text.
func ClassifyAmounts(normalizedAmounts []dto.NormalizedAmount, fullText string, rawTokens []string, provenanceMap map[string]dto.NormalizedAmount) ([]dto.RoleAssignment, float64) {
	lines := splitLines(fullText)

	var assignments []dto.RoleAssignment
	for _, spec := range roleSpecs {
		for _, line := range lines {
			if lineClaimed(assignments, line) {
				continue
			}
			if !matchesRole(line, spec) {
				continue
			}
			value, isPercent, ok := extractNumberFromLine(line)
			if !ok {
				continue
			}
			assignments = append(assignments, dto.RoleAssignment{
				Type:      spec.role,
				Value:     value,
				IsPercent: isPercent,
				Source:    "text: '" + strings.ReplaceAll(line, "'", `\'`) + "'",
			})
		}
	}

	confidence := math.Min(0.95, 0.45+0.15*float64(len(assignments)))
	return assignments, confidence
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range lineBreakRegex.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// lineClaimed reports whether a previous assignment already sourced this
// line, preventing a line from being awarded to two roles.
func lineClaimed(assignments []dto.RoleAssignment, line string) bool {
	for _, a := range assignments {
		if strings.Contains(a.Source, line) {
			return true
		}
	}
	return false
}

func matchesRole(line string, spec roleSpec) bool {
	lower := strings.ToLower(line)

	for _, pattern := range spec.patterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	// Fuzzy fallback for OCR-mangled keywords like "subtotol".
	for _, word := range strings.Fields(lower) {
		for _, kw := range spec.keywords {
			if levenshtein.Similarity(word, kw, fuzzyParams) >= fuzzyMatchThreshold {
				return true
			}
		}
	}
	return false
}

// extractNumberFromLine pulls the most plausible value off a matched
// line: the last numeric substring after stripping commas. On a line
// like "Tax (18%): 450" that prefers the amount over the rate.
func extractNumberFromLine(line string) (float64, bool, bool) {
	matches := lineNumberRegex.FindAllString(strings.ReplaceAll(line, ",", ""), -1)
	if len(matches) == 0 {
		return 0, false, false
	}

	last := matches[len(matches)-1]
	isPercent := strings.HasSuffix(last, "%")
	value, err := strconv.ParseFloat(strings.TrimSuffix(last, "%"), 64)
	if err != nil {
		return 0, false, false
	}
	return value, isPercent, true
}
