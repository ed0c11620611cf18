package models

import "spendin-service/internal/pkg/constvars"

// UpiQrRecord is the structured form of a UPI deep-link payload. The record is
// immutable after parsing; invalid payloads still produce a record so callers
// can show what was decoded alongside the validation errors.
type UpiQrRecord struct {
	PayeeAddress         string            `json:"payee_address"`
	PayeeName            string            `json:"payee_name,omitempty"`
	Amount               string            `json:"amount,omitempty"`
	CurrencyCode         string            `json:"currency_code"`
	MerchantCategoryCode string            `json:"merchant_category_code,omitempty"`
	TransactionRef       string            `json:"transaction_ref,omitempty"`
	TransactionNote      string            `json:"transaction_note,omitempty"`
	// Extras preserves unrecognized query keys verbatim, separate from the
	// typed fields above.
	Extras map[string]string `json:"extras,omitempty"`
}

// HasAmount reports whether the payload pins a payment amount.
func (r *UpiQrRecord) HasAmount() bool {
	return r.Amount != ""
}

// Classify derives the QR type: a pinned amount means dynamic merchant
// regardless of MCC, an MCC without amount means static merchant, otherwise
// the payload addresses a personal VPA.
func (r *UpiQrRecord) Classify() constvars.QrType {
	if r.HasAmount() {
		return constvars.QrTypeDynamicMerchant
	}
	if r.MerchantCategoryCode != "" {
		return constvars.QrTypeStaticMerchant
	}
	return constvars.QrTypePersonal
}
