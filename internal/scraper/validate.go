package scraper

import (
	"html"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	tagPattern          = regexp.MustCompile(`<[^>]+>`)
	spacePattern        = regexp.MustCompile(`\s+`)
	parentheticalRegexp = regexp.MustCompile(`\s*\([^)]*\)`)
	numericOnlyPattern  = regexp.MustCompile(`^[\d\s.,%+\-/]+$`)
	currencySymbolRegex = regexp.MustCompile(`\p{Sc}`)
	boilerplatePattern  = regexp.MustCompile(`(?i)(sign up|subscribe|free trial|pricing|per month|/mo\b|api key|api plan|advertis|sponsored|get started|download (?:the|our) app|upgrade to|best rates?|lowest fees?|send money|cookie)`)

	minorUnitUpper = decimal.NewFromInt(1)
)

// cleanText turns an HTML fragment into single-spaced plain text
func cleanText(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, " ")
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// acceptOverview applies the overview gate: 20 < len < 2000, no ad or
// pricing copy, not just numbers.
func acceptOverview(raw string) (string, bool) {
	text := cleanText(raw)
	n := len([]rune(text))
	if n <= 20 || n >= 2000 {
		return "", false
	}
	if boilerplatePattern.MatchString(text) || numericOnlyPattern.MatchString(text) {
		return "", false
	}
	return text, true
}

// acceptCentralBank strips parenthetical asides then applies the gate:
// 3 < len < 200, no links, currency symbols, API mentions or bare numbers.
func acceptCentralBank(raw string) (string, bool) {
	text := cleanText(raw)
	text = strings.TrimSpace(parentheticalRegexp.ReplaceAllString(text, ""))
	n := len([]rune(text))
	if n <= 3 || n >= 200 {
		return "", false
	}
	if strings.Contains(strings.ToLower(text), "http") ||
		currencySymbolRegex.MatchString(text) ||
		strings.Contains(text, "API") ||
		numericOnlyPattern.MatchString(text) {
		return "", false
	}
	return text, true
}

// acceptUnitName keeps short human-readable unit names
func acceptUnitName(raw string) (string, bool) {
	text := cleanText(raw)
	n := len([]rune(text))
	if n == 0 || n > 80 || numericOnlyPattern.MatchString(text) {
		return "", false
	}
	return text, true
}

// parseMinorUnitValue reads "0", "0.01" or "1/100" and accepts only [0, 1).
// Zero is a real value and is returned as valid.
func parseMinorUnitValue(raw string) (decimal.NullDecimal, bool) {
	text := strings.TrimSpace(cleanText(raw))
	if text == "" {
		return decimal.NullDecimal{}, false
	}

	var value decimal.Decimal
	if num, den, ok := strings.Cut(text, "/"); ok {
		n, err := decimal.NewFromString(strings.TrimSpace(num))
		if err != nil {
			return decimal.NullDecimal{}, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(den))
		if err != nil || d.IsZero() {
			return decimal.NullDecimal{}, false
		}
		value = n.Div(d)
	} else {
		v, err := decimal.NewFromString(strings.ReplaceAll(text, ",", "."))
		if err != nil {
			return decimal.NullDecimal{}, false
		}
		value = v
	}

	if value.IsNegative() || value.GreaterThanOrEqual(minorUnitUpper) {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(value), true
}
