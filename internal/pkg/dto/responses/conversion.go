package responses

import "time"

// ConversionQuote is one INR to USDC conversion result. All monetary fields
// are decimal strings rounded to 6 places. ExchangeRate and UsdAmount are
// derived from the live rate, never independently settable.
type ConversionQuote struct {
	InrAmount       string    `json:"inr_amount"`
	UsdAmount       string    `json:"usd_amount"`
	UsdcAmount      string    `json:"usdc_amount"`
	ExchangeRate    string    `json:"exchange_rate"`
	NetworkFee      string    `json:"network_fee"`
	TotalUsdcAmount string    `json:"total_usdc_amount"`
	ChainID         int       `json:"chain_id"`
	NetworkName     string    `json:"network_name"`
	QuotedAt        time.Time `json:"quoted_at"`
	RateAsOf        time.Time `json:"rate_as_of"`
}
