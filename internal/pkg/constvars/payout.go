package constvars

// PayoutProvider identifies which configured payout channel executes a transfer.
type PayoutProvider string

const (
	PayoutProviderCashfree PayoutProvider = "cashfree"
	PayoutProviderRazorpay PayoutProvider = "razorpay"
)

// PayoutStatus is the canonical internal status for a payout attempt. Provider
// specific statuses are normalized into these at the gateway boundary.
type PayoutStatus string

const (
	PayoutStatusInitiated  PayoutStatus = "initiated"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusProcessed  PayoutStatus = "processed"
	PayoutStatusFailed     PayoutStatus = "failed"
	PayoutStatusReversed   PayoutStatus = "reversed"
)

// TransactionStatus tracks the orchestration state machine over a ledger record.
type TransactionStatus string

const (
	TransactionStatusScanned          TransactionStatus = "scanned"
	TransactionStatusQuoted           TransactionStatus = "quoted"
	TransactionStatusOnchainPending   TransactionStatus = "onchain_pending"
	TransactionStatusOnchainConfirmed TransactionStatus = "onchain_confirmed"
	TransactionStatusPayoutInitiated  TransactionStatus = "payout_initiated"
	TransactionStatusPayoutProcessing TransactionStatus = "payout_processing"
	TransactionStatusPayoutProcessed  TransactionStatus = "payout_processed"
	TransactionStatusPayoutFailed     TransactionStatus = "payout_failed"
	TransactionStatusPayoutReversed   TransactionStatus = "payout_reversed"
)

// Webhook event names delivered by payout providers.
const (
	WebhookEventPayoutProcessed = "payout.processed"
	WebhookEventPayoutFailed    = "payout.failed"
	WebhookEventPayoutReversed  = "payout.reversed"
)

const (
	TransferModeUpi  = "upi"
	TransferModeImps = "imps"
)

const (
	PayoutFailureReasonTimeout = "timeout"
)
