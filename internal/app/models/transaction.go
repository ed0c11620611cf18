package models

import (
	"time"

	"spendin-service/internal/pkg/constvars"
)

// Transaction is the ledger record for one scan-to-payout lifecycle. It is the
// single source of truth for payout status; webhook and poll reconciliation
// both write through it.
type Transaction struct {
	ID              string                      `json:"id" bson:"_id,omitempty"`
	UpiID           string                      `json:"upi_id" bson:"upiId"`
	MerchantName    string                      `json:"merchant_name,omitempty" bson:"merchantName,omitempty"`
	QrType          constvars.QrType            `json:"qr_type" bson:"qrType"`
	InrAmount       string                      `json:"inr_amount" bson:"inrAmount"`
	UsdcAmountPaid  string                      `json:"usdc_amount_paid,omitempty" bson:"usdcAmountPaid,omitempty"`
	ExchangeRate    string                      `json:"exchange_rate,omitempty" bson:"exchangeRate,omitempty"`
	ChainID         int                         `json:"chain_id,omitempty" bson:"chainId,omitempty"`
	WalletAddress   string                      `json:"wallet_address,omitempty" bson:"walletAddress,omitempty"`
	ChainTxHash     string                      `json:"chain_tx_hash,omitempty" bson:"chainTxHash,omitempty"`
	IsSuccess       bool                        `json:"is_success" bson:"isSuccess"`
	PayoutTriggered bool                        `json:"payout_triggered" bson:"payoutTriggered"`
	Status          constvars.TransactionStatus `json:"status" bson:"status"`
	PayoutAttempts  []PayoutAttempt             `json:"payout_attempts,omitempty" bson:"payoutAttempts,omitempty"`
	ScannedAt       time.Time                   `json:"scanned_at" bson:"scannedAt"`
	PaidAt          *time.Time                  `json:"paid_at,omitempty" bson:"paidAt,omitempty"`
	UpdatedAt       time.Time                   `json:"updated_at" bson:"updatedAt"`
}

// ActiveAttempt returns the current non-failed payout attempt, if any.
func (t *Transaction) ActiveAttempt() *PayoutAttempt {
	for i := range t.PayoutAttempts {
		if t.PayoutAttempts[i].IsActive() {
			return &t.PayoutAttempts[i]
		}
	}
	return nil
}

// AttemptByTransferRef locates an attempt by the provider's transfer id or by
// the transferId this service generated. An initiation that timed out never
// received a provider id, so reconciliation must be able to reach the attempt
// through its own transferId.
func (t *Transaction) AttemptByTransferRef(transferRef string) *PayoutAttempt {
	for i := range t.PayoutAttempts {
		if t.PayoutAttempts[i].ProviderTransferID == transferRef || t.PayoutAttempts[i].TransferID == transferRef {
			return &t.PayoutAttempts[i]
		}
	}
	return nil
}
