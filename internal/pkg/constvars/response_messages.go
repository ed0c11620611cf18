package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	QrParsedSuccess             = "QR payload parsed successfully"
	QuoteCreatedSuccess         = "conversion quote created successfully"
	TransactionCreatedSuccess   = "transaction recorded successfully"
	TransactionFetchedSuccess   = "transaction fetched successfully"
	QuoteAttachedSuccess        = "conversion quote attached successfully"
	OnchainRecordedSuccess      = "on-chain result recorded successfully"
	PayoutInitiatedSuccess      = "payout initiated successfully"
	PayoutStatusFetchedSuccess  = "payout status fetched successfully"
	PayoutReconcileBatchSuccess = "payout batch reconciliation completed"
	BeneficiaryAddedSuccess     = "beneficiary registered successfully"
	WebhookAcceptedSuccess      = "webhook accepted"
	SessionCreatedSuccess       = "session created successfully"
)
