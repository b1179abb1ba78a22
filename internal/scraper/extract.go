package scraper

import (
	"sort"
	"strings"

	"currency-data-sync/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Extraction holds whatever fields could be read from one page. Nil or
// empty fields were not found; nothing is ever filled in by default.
type Extraction struct {
	CountryCodes   []string
	MajorUnitName  *string
	MinorUnitName  *string
	MinorUnitValue decimal.NullDecimal
	Banknotes      models.Denominations
	Coins          models.Denominations
	Overview       *string
	CentralBank    *string
	Structured     bool // read from the embedded page data
}

// page is the parsed form of a document shared by all strategies
type page struct {
	raw string
	doc *goquery.Document // nil when the markup could not be parsed
}

func newPage(raw string) *page {
	p := &page{raw: raw}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		p.doc = doc
	}
	return p
}

// strategy is one way of reading a field; ok reports a plausible match
type strategy[T any] func(p *page) (T, bool)

// firstMatch evaluates strategies in order and returns the first match
func firstMatch[T any](p *page, strategies []strategy[T]) (T, bool) {
	for _, s := range strategies {
		if v, ok := s(p); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

var (
	countryStrategies = []strategy[[]string]{countriesFromFlags, countriesFromDataAttr}
	majorStrategies   = []strategy[string]{majorFromLabeledSpans, majorFromDefinitionList}
	minorStrategies   = []strategy[string]{minorFromLabeledSpans, minorFromDefinitionList}
	minorValueStrats  = []strategy[decimal.NullDecimal]{minorValueFromValueSpan, minorValueFromSymbolSpan, minorValueFromDefinitionList, minorValueFromFractionText}
	overviewStrats    = []strategy[string]{overviewFromHeadingParagraph, overviewFromDom, overviewFromMetaDescription}
	centralBankStrats = []strategy[string]{centralBankFromLabeledSpans, centralBankFromDefinitionList, centralBankFromLink}
)

// Extract reads every CurrencyInfo field from an info page. Embedded page
// data, when present and shaped like currency data, is used exclusively.
func Extract(rawHtml string) *Extraction {
	p := newPage(rawHtml)

	if data, ok := findCurrencyData(p); ok {
		ex := extractStructured(data)
		ex.Structured = true
		return ex
	}

	ex := &Extraction{}
	if codes, ok := firstMatch(p, countryStrategies); ok {
		ex.CountryCodes = codes
	}
	if name, ok := firstMatch(p, majorStrategies); ok {
		ex.MajorUnitName = &name
	}
	if name, ok := firstMatch(p, minorStrategies); ok {
		ex.MinorUnitName = &name
	}
	if value, ok := firstMatch(p, minorValueStrats); ok {
		ex.MinorUnitValue = value
	}
	ex.Banknotes = extractDenominations(p.raw, banknoteSection)
	ex.Coins = extractDenominations(p.raw, coinSection)
	if text, ok := firstMatch(p, overviewStrats); ok {
		ex.Overview = &text
	}
	if name, ok := firstMatch(p, centralBankStrats); ok {
		ex.CentralBank = &name
	}
	return ex
}

// BuildInfo maps an extraction onto the stored record for currencyId.
// Overview and central bank are stored lower-cased.
func BuildInfo(currencyId int64, ex *Extraction) *models.CurrencyInfo {
	info := &models.CurrencyInfo{
		CurrencyId:     currencyId,
		CountryCodes:   ex.CountryCodes,
		MajorUnitName:  ex.MajorUnitName,
		MinorUnitName:  ex.MinorUnitName,
		MinorUnitValue: ex.MinorUnitValue,
		Banknotes:      ex.Banknotes,
		Coins:          ex.Coins,
	}
	if ex.Overview != nil {
		v := strings.ToLower(*ex.Overview)
		info.Overview = &v
	}
	if ex.CentralBank != nil {
		v := strings.ToLower(*ex.CentralBank)
		info.CentralBank = &v
	}
	return info
}

// sortedUnique returns values ascending without duplicates
func sortedUnique(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sort.Float64s(values)
	out := values[:1]
	for _, v := range values[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	var out []string
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if len(c) != 2 || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
