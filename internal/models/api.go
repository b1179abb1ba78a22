package models

import "github.com/shopspring/decimal"

// HistoryResponse is the provider payload for one day of USD-based rates
type HistoryResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	ErrorTypeAlt    string                     `json:"error_type"`
	BaseCode        string                     `json:"base_code"`
	Year            int                        `json:"year"`
	Month           int                        `json:"month"`
	Day             int                        `json:"day"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// Reason returns whichever error field the provider populated
func (r *HistoryResponse) Reason() string {
	if r.ErrorType != "" {
		return r.ErrorType
	}
	return r.ErrorTypeAlt
}
