package requests

// CreateScan creates the ledger record for a scanned QR. Amount is required
// here even when the QR pins one; the caller resolves which applies.
type CreateScan struct {
	PayeeAddress string `json:"payee_address" validate:"required,vpa"`
	PayeeName    string `json:"payee_name"`
	QrType       string `json:"qr_type" validate:"required,oneof=personal static_merchant dynamic_merchant"`
	InrAmount    string `json:"inr_amount" validate:"required,inr_amount"`
}

type AttachQuote struct {
	UsdcAmount   string `json:"usdc_amount" validate:"required"`
	ExchangeRate string `json:"exchange_rate" validate:"required"`
	ChainID      int    `json:"chain_id" validate:"required"`
}

// OnchainResult is reported by the chain payment collaborator once a USDC
// transfer is observed. The orchestrator treats it as trusted input.
type OnchainResult struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	ChainTxHash   string `json:"chain_tx_hash" validate:"required,eth_tx"`
	IsSuccess     bool   `json:"is_success"`
	ChainID       int    `json:"chain_id" validate:"required"`
}

type InitiatePayout struct {
	Provider       string `json:"provider" validate:"required,oneof=cashfree razorpay"`
	BeneficiaryRef string `json:"beneficiary_ref" validate:"required"`
	// TransferID is optional; one is generated when absent.
	TransferID string `json:"transfer_id"`
	Mode       string `json:"mode" validate:"omitempty,oneof=upi imps"`
}

type AddBeneficiary struct {
	Provider    string `json:"provider" validate:"required,oneof=cashfree razorpay"`
	Name        string `json:"name" validate:"required"`
	VpaAddress  string `json:"vpa_address" validate:"required,vpa"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	BankAccount string `json:"bank_account"`
	Ifsc        string `json:"ifsc"`
}

type ReconcileBatch struct {
	Limit int `json:"limit" validate:"omitempty,gte=1,lte=50"`
}
