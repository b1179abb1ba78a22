package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// labeledSpan matches <span>Label:</span><span ...>value</span> within a
// bounded window after a section title.
func labeledSpan(section, label string, valueLen int) *regexp.Regexp {
	return regexp.MustCompile(`(?is)` + section + `.{0,600}?` + label + `:?\s*</span>\s*<span[^>]*>\s*([^<]{1,` + strconv.Itoa(valueLen) + `}?)\s*</span>`)
}

// definitionRow matches <dt>Label</dt><dd>value</dd> and the table-cell equivalent
func definitionRow(label string, valueLen int) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<(?:dt|th|td)[^>]*>\s*` + label + `:?\s*</(?:dt|th|td)>\s*<(?:dd|td)[^>]*>\s*(.{1,` + strconv.Itoa(valueLen) + `}?)\s*</(?:dd|td)>`)
}

var (
	flagPattern     = regexp.MustCompile(`(?i)/flags?/(?:[\w-]+/)?([a-z]{2})\.(?:svg|png|webp|gif)`)
	dataCountryAttr = regexp.MustCompile(`(?i)data-country(?:-code)?="([a-z]{2})"`)
	countriesStart  = regexp.MustCompile(`(?i)(?:countries\s+using|used\s+in|>\s*countries\s*<)`)

	majorNameSpan = labeledSpan(`Major\s+Unit`, `Name`, 80)
	minorNameSpan = labeledSpan(`Minor\s+Unit`, `Name`, 80)
	majorNameRow  = definitionRow(`Major\s+Unit(?:\s+Name)?`, 80)
	minorNameRow  = definitionRow(`Minor\s+Unit(?:\s+Name)?`, 80)

	minorValueSpan  = labeledSpan(`Minor\s+Unit`, `Value`, 20)
	minorSymbolSpan = labeledSpan(`Minor\s+Unit`, `Symbol`, 20)
	minorValueRow   = definitionRow(`Minor\s+Unit\s+Value`, 20)
	minorFraction   = regexp.MustCompile(`(?i)\b1\s*/\s*(\d{1,5})\s+(?:of\s+(?:a|an|one|the)\b)`)

	overviewHeading = regexp.MustCompile(`(?is)<h[1-6][^>]*>[^<]{0,40}Overview[^<]{0,40}</h[1-6]>\s*(?:<(?:div|section)[^>]*>\s*)*<p[^>]*>(.+?)</p>`)
	metaDescription = regexp.MustCompile(`(?is)<meta\s+(?:name|property)="(?:og:)?description"\s+content="([^"]*)"`)

	centralBankSpan = regexp.MustCompile(`(?is)Central\s+Bank:?\s*</span>\s*<span[^>]*>\s*(.{1,300}?)\s*</span>`)
	centralBankRow  = definitionRow(`Central\s+Bank`, 300)
	centralBankLink = regexp.MustCompile(`(?is)Central\s+Bank.{0,200}?<a[^>]*>\s*([^<]{3,200}?)\s*</a>`)
)

func countriesFromFlags(p *page) ([]string, bool) {
	return countriesInSection(p.raw, flagPattern)
}

func countriesFromDataAttr(p *page) ([]string, bool) {
	return countriesInSection(p.raw, dataCountryAttr)
}

// countriesInSection only looks after a countries heading so flags in
// navigation or language pickers are not picked up.
func countriesInSection(raw string, pattern *regexp.Regexp) ([]string, bool) {
	loc := countriesStart.FindStringIndex(raw)
	if loc == nil {
		return nil, false
	}
	section := raw[loc[0]:min(len(raw), loc[0]+6000)]

	var codes []string
	for _, m := range pattern.FindAllStringSubmatch(section, -1) {
		codes = append(codes, m[1])
	}
	codes = uniqueCodes(codes)
	return codes, len(codes) > 0
}

// unitName runs pattern and rejects matches that strayed into the other
// unit's block.
func unitName(raw string, pattern *regexp.Regexp, foreign string) (string, bool) {
	m := pattern.FindStringSubmatch(raw)
	if m == nil || strings.Contains(strings.ToLower(m[0]), foreign) {
		return "", false
	}
	return acceptUnitName(m[1])
}

func majorFromLabeledSpans(p *page) (string, bool) {
	return unitName(p.raw, majorNameSpan, "minor unit")
}

func majorFromDefinitionList(p *page) (string, bool) {
	return unitName(p.raw, majorNameRow, "minor unit")
}

func minorFromLabeledSpans(p *page) (string, bool) {
	return unitName(p.raw, minorNameSpan, "major unit")
}

func minorFromDefinitionList(p *page) (string, bool) {
	return unitName(p.raw, minorNameRow, "major unit")
}

func minorValueFromValueSpan(p *page) (decimal.NullDecimal, bool) {
	return minorValue(p.raw, minorValueSpan)
}

// minorValueFromSymbolSpan covers layouts that print the value in the
// symbol slot, such as a bare 0 for currencies without a minor unit.
func minorValueFromSymbolSpan(p *page) (decimal.NullDecimal, bool) {
	return minorValue(p.raw, minorSymbolSpan)
}

func minorValueFromDefinitionList(p *page) (decimal.NullDecimal, bool) {
	return minorValue(p.raw, minorValueRow)
}

func minorValue(raw string, pattern *regexp.Regexp) (decimal.NullDecimal, bool) {
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return decimal.NullDecimal{}, false
	}
	return parseMinorUnitValue(m[1])
}

// minorValueFromFractionText reads prose such as "1/100 of a dollar"
func minorValueFromFractionText(p *page) (decimal.NullDecimal, bool) {
	m := minorFraction.FindStringSubmatch(p.raw)
	if m == nil {
		return decimal.NullDecimal{}, false
	}
	return parseMinorUnitValue("1/" + m[1])
}

func overviewFromHeadingParagraph(p *page) (string, bool) {
	m := overviewHeading.FindStringSubmatch(p.raw)
	if m == nil {
		return "", false
	}
	return acceptOverview(m[1])
}

// overviewFromDom takes the first acceptable paragraph following an
// "Overview" heading, for layouts with wrappers between the two.
func overviewFromDom(p *page) (string, bool) {
	if p.doc == nil {
		return "", false
	}

	var found string
	p.doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(heading.Text()), "overview") {
			return true
		}
		heading.NextAll().Find("p").AddSelection(heading.NextAllFiltered("p")).EachWithBreak(func(_ int, para *goquery.Selection) bool {
			if text, ok := acceptOverview(para.Text()); ok {
				found = text
				return false
			}
			return true
		})
		return found == ""
	})
	return found, found != ""
}

func overviewFromMetaDescription(p *page) (string, bool) {
	m := metaDescription.FindStringSubmatch(p.raw)
	if m == nil {
		return "", false
	}
	return acceptOverview(m[1])
}

func centralBankFromLabeledSpans(p *page) (string, bool) {
	return centralBank(p.raw, centralBankSpan)
}

func centralBankFromDefinitionList(p *page) (string, bool) {
	return centralBank(p.raw, centralBankRow)
}

func centralBankFromLink(p *page) (string, bool) {
	return centralBank(p.raw, centralBankLink)
}

func centralBank(raw string, pattern *regexp.Regexp) (string, bool) {
	m := pattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return acceptCentralBank(m[1])
}
