package scraper

import (
	"strings"

	"currency-data-sync/internal/models"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// maxSearchDepth bounds the recursive currencyData lookup
const maxSearchDepth = 8

// findCurrencyData decodes the embedded __NEXT_DATA__ blob and returns the
// currencyData object inside it.
func findCurrencyData(p *page) (map[string]any, bool) {
	if p.doc == nil {
		return nil, false
	}
	blob := strings.TrimSpace(p.doc.Find(`script#__NEXT_DATA__`).First().Text())
	if blob == "" {
		return nil, false
	}

	var root map[string]any
	if err := json.Unmarshal([]byte(blob), &root); err != nil {
		return nil, false
	}

	if props, ok := root["props"].(map[string]any); ok {
		if pageProps, ok := props["pageProps"].(map[string]any); ok {
			if data, ok := pageProps["currencyData"].(map[string]any); ok && len(data) > 0 {
				return data, true
			}
		}
	}
	return searchCurrencyData(root, 0)
}

func searchCurrencyData(node any, depth int) (map[string]any, bool) {
	if depth > maxSearchDepth {
		return nil, false
	}
	switch v := node.(type) {
	case map[string]any:
		if data, ok := v["currencyData"].(map[string]any); ok && len(data) > 0 {
			return data, true
		}
		for _, child := range v {
			if data, ok := searchCurrencyData(child, depth+1); ok {
				return data, true
			}
		}
	case []any:
		for _, child := range v {
			if data, ok := searchCurrencyData(child, depth+1); ok {
				return data, true
			}
		}
	}
	return nil, false
}

// extractStructured reads fields from a currencyData object. Values still
// pass through the same gates as the markup path.
func extractStructured(data map[string]any) *Extraction {
	ex := &Extraction{}

	ex.CountryCodes = structuredCountries(firstKey(data, "countries", "countryCodes", "usedIn"))

	if name, ok := acceptUnitName(nestedString(data, "majorUnit", "name", "majorUnitName")); ok {
		ex.MajorUnitName = &name
	}
	if name, ok := acceptUnitName(nestedString(data, "minorUnit", "name", "minorUnitName")); ok {
		ex.MinorUnitName = &name
	}
	if value, ok := structuredMinorValue(data); ok {
		ex.MinorUnitValue = value
	}

	ex.Banknotes = structuredDenominations(firstKey(data, "banknotes", "notes"))
	ex.Coins = structuredDenominations(firstKey(data, "coins"))

	if text, ok := acceptOverview(cast.ToString(firstKey(data, "overview", "description"))); ok {
		ex.Overview = &text
	}
	if name, ok := acceptCentralBank(nestedString(data, "centralBank", "name", "centralBankName")); ok {
		ex.CentralBank = &name
	}
	return ex
}

func firstKey(data map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := data[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// nestedString reads data[key] as a string, or data[key][field] when it is
// an object, falling back to the flat key.
func nestedString(data map[string]any, key, field, flat string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case map[string]any:
		if s := cast.ToString(v[field]); s != "" {
			return s
		}
	}
	return cast.ToString(data[flat])
}

func structuredCountries(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	codes := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			codes = append(codes, v)
		case map[string]any:
			codes = append(codes, cast.ToString(firstKey(v, "code", "countryCode", "iso2")))
		}
	}
	return uniqueCodes(codes)
}

func structuredMinorValue(data map[string]any) (decimal.NullDecimal, bool) {
	var raw any
	if unit, ok := data["minorUnit"].(map[string]any); ok {
		raw = firstKey(unit, "value", "fraction")
	}
	if raw == nil {
		raw = data["minorUnitValue"]
	}
	if raw == nil {
		return decimal.NullDecimal{}, false
	}
	// numbers decode as float64, so 0 arrives here as "0"
	return parseMinorUnitValue(cast.ToString(raw))
}

func structuredDenominations(raw any) models.Denominations {
	group, ok := raw.(map[string]any)
	if !ok {
		// a bare list carries no usage markers
		return models.Denominations{Frequently: denominationList(raw)}
	}
	return models.Denominations{
		Frequently: denominationList(firstKey(group, "frequently", "frequentlyUsed")),
		Rarely:     denominationList(firstKey(group, "rarely", "rarelyUsed")),
	}
}

func denominationList(raw any) []float64 {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	values := make([]float64, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			item = firstKey(obj, "value", "amount")
		}
		if v, ok := denominationValue(item); ok {
			values = append(values, v)
		}
	}
	return sortedUnique(values)
}

// denominationValue accepts 5, "5", "$5" or "1,000 ₽"
func denominationValue(item any) (float64, bool) {
	if s, ok := item.(string); ok {
		s = currencySymbolRegex.ReplaceAllString(s, "")
		item = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	}
	v, err := cast.ToFloat64E(item)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
