package models

import (
	"time"

	"spendin-service/internal/pkg/constvars"
)

// PayoutAttempt is one INR payout try tied to a confirmed USDC receipt. At
// most one non-failed attempt may exist per transaction; failed attempts are
// kept as audit trail and never deleted.
type PayoutAttempt struct {
	TransferID         string                   `json:"transfer_id" bson:"transferId"`
	Provider           constvars.PayoutProvider `json:"provider" bson:"provider"`
	ProviderTransferID string                   `json:"provider_transfer_id,omitempty" bson:"providerTransferId,omitempty"`
	BeneficiaryRef     string                   `json:"beneficiary_ref" bson:"beneficiaryRef"`
	Amount             string                   `json:"amount" bson:"amount"`
	Status             constvars.PayoutStatus   `json:"status" bson:"status"`
	FailureReason      string                   `json:"failure_reason,omitempty" bson:"failureReason,omitempty"`
	Utr                string                   `json:"utr,omitempty" bson:"utr,omitempty"`
	InitiatedAt        time.Time                `json:"initiated_at" bson:"initiatedAt"`
	ProcessedAt        *time.Time               `json:"processed_at,omitempty" bson:"processedAt,omitempty"`
}

// IsActive reports whether the attempt blocks a new initiation. Only failed
// attempts release the at-most-one-active-payout guard.
func (a *PayoutAttempt) IsActive() bool {
	return a.Status != constvars.PayoutStatusFailed
}

// ReconcileRef returns the identifier reconciliation keys on: the provider's
// id when the provider answered the initiation, otherwise our own transferId.
func (a *PayoutAttempt) ReconcileRef() string {
	if a.ProviderTransferID != "" {
		return a.ProviderTransferID
	}
	return a.TransferID
}

// IsTerminal reports whether no further provider transitions are expected.
func (a *PayoutAttempt) IsTerminal() bool {
	switch a.Status {
	case constvars.PayoutStatusProcessed, constvars.PayoutStatusFailed, constvars.PayoutStatusReversed:
		return true
	}
	return false
}
