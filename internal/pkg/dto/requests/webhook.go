package requests

// PayoutWebhookPayload is the signed payload payout providers deliver. The
// signature over the raw body is verified before this shape is trusted.
type PayoutWebhookPayload struct {
	Event  string               `json:"event" validate:"required,oneof=payout.processed payout.failed payout.reversed"`
	Payout PayoutWebhookDetails `json:"payout" validate:"required"`
}

type PayoutWebhookDetails struct {
	ID            string `json:"id" validate:"required"`
	Utr           string `json:"utr,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}
