package contracts

import (
	"context"

	"spendin-service/internal/pkg/constvars"
)

// TransferRequest is the canonical outbound transfer shape.
type TransferRequest struct {
	TransferID     string
	BeneficiaryRef string
	AmountInr      string
	Mode           string
	Remarks        string
}

// TransferResult is the canonical normalized provider response. Provider V1/V2
// field naming is flattened into this shape at the gateway boundary.
type TransferResult struct {
	ProviderTransferID string
	Status             constvars.PayoutStatus
	Utr                string
	FailureReason      string
}

// BeneficiaryDetails registers a UPI/bank destination at the provider.
type BeneficiaryDetails struct {
	Name        string
	VpaAddress  string
	Email       string
	Phone       string
	BankAccount string
	Ifsc        string
}

// BeneficiaryResult is the canonical add-beneficiary response.
type BeneficiaryResult struct {
	BeneficiaryRef string
	Status         string
}

// PayoutGatewayService abstracts a payout provider (Cashfree- or
// Razorpay-shaped). MaxTransferInr is the provider-configurable single
// transfer ceiling, enforced locally before any upstream call.
type PayoutGatewayService interface {
	Provider() constvars.PayoutProvider
	MaxTransferInr() string
	InitiateTransfer(ctx context.Context, request *TransferRequest) (*TransferResult, error)
	GetTransferStatus(ctx context.Context, providerTransferID string) (*TransferResult, error)
	AddBeneficiary(ctx context.Context, details *BeneficiaryDetails) (*BeneficiaryResult, error)
}
