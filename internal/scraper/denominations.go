package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"currency-data-sync/internal/models"
)

// maxSectionLen bounds a denomination section when no stop heading is found
const maxSectionLen = 4000

// denominationSection locates a block of the page by its heading and the
// heading that follows it.
type denominationSection struct {
	start *regexp.Regexp
	stop  *regexp.Regexp
}

var (
	banknoteSection = denominationSection{
		start: regexp.MustCompile(`(?i)>\s*(?:bank\s*notes|banknotes)\s*<`),
		stop:  regexp.MustCompile(`(?i)>\s*(?:coins|central\s+bank|overview)\s*<`),
	}
	coinSection = denominationSection{
		start: regexp.MustCompile(`(?i)>\s*coins\s*<`),
		stop:  regexp.MustCompile(`(?i)>\s*(?:bank\s*notes|banknotes|central\s+bank|overview)\s*<`),
	}

	frequentMarker = regexp.MustCompile(`(?i)frequently\s+used`)
	rareMarker     = regexp.MustCompile(`(?i)rarely\s+used`)

	symbolAmount = regexp.MustCompile(`(\p{Sc})\s?(\d[\d,]*(?:\.\d+)?)|(\d[\d,]*(?:\.\d+)?)\s?(\p{Sc})`)
	spanAmount   = regexp.MustCompile(`<span[^>]*>\s*(\d[\d,]*(?:\.\d+)?)\s*</span>`)
)

// bounds returns the section text, or "" when the heading is absent
func (s denominationSection) bounds(raw string) string {
	loc := s.start.FindStringIndex(raw)
	if loc == nil {
		return ""
	}
	rest := raw[loc[1]:]
	end := min(len(rest), maxSectionLen)
	if stop := s.stop.FindStringIndex(rest[:end]); stop != nil {
		end = stop[0]
	}
	return rest[:end]
}

// extractDenominations splits a section into its frequently and rarely used
// parts. Without usage markers every amount counts as frequently used.
func extractDenominations(raw string, section denominationSection) models.Denominations {
	block := section.bounds(raw)
	if block == "" {
		return models.Denominations{}
	}

	freq := frequentMarker.FindStringIndex(block)
	rare := rareMarker.FindStringIndex(block)

	switch {
	case freq == nil && rare == nil:
		return models.Denominations{Frequently: amounts(block)}
	case rare == nil:
		return models.Denominations{Frequently: amounts(block[freq[1]:])}
	case freq == nil:
		return models.Denominations{Rarely: amounts(block[rare[1]:])}
	case freq[0] < rare[0]:
		return models.Denominations{
			Frequently: amounts(block[freq[1]:rare[0]]),
			Rarely:     amounts(block[rare[1]:]),
		}
	default:
		return models.Denominations{
			Frequently: amounts(block[freq[1]:]),
			Rarely:     amounts(block[rare[1]:freq[0]]),
		}
	}
}

// amounts reads every <number, currency symbol> pair from a fragment, falling
// back to bare numbers in their own spans.
func amounts(fragment string) []float64 {
	var values []float64
	for _, m := range symbolAmount.FindAllStringSubmatch(cleanText(fragment), -1) {
		num := m[2]
		if num == "" {
			num = m[3]
		}
		if v, ok := parseAmount(num); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		for _, m := range spanAmount.FindAllStringSubmatch(fragment, -1) {
			if v, ok := parseAmount(m[1]); ok {
				values = append(values, v)
			}
		}
	}
	return sortedUnique(values)
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
