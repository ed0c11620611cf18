package constvars

// Client-facing messages. Never include internal detail here.
const (
	ErrClientCannotProcessRequest          = "Cannot process your request"
	ErrClientSomethingWrongWithApplication = "Something is wrong with the application, please contact the administrator"
	ErrClientServerLongRespond             = "Server took too long to respond"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in, please log in first"
	ErrClientQrStringTooLong               = "QR payload exceeds the maximum supported length"
	ErrClientInvalidInrAmount              = "Amount must be a positive INR value"
	ErrClientRateUnavailable               = "Live exchange rate is currently unavailable, please try again"
	ErrClientPayoutProviderUnavailable     = "Payout provider is currently unavailable, please try again"
	ErrClientPayoutAlreadyActive           = "A payout is already in progress for this transaction"
	ErrClientPayoutNotConfirmed            = "Payout requires a confirmed on-chain payment"
	ErrClientPayoutAmountOutOfRange        = "Payout amount is outside the allowed range for this provider"
	ErrClientTransactionNotFound           = "Transaction not found"
	ErrClientChainTxHashAlreadyUsed        = "This on-chain payment already funds another transaction"
	ErrClientPayoutAttemptNotFound         = "Payout attempt not found"
	ErrClientWebhookSignatureInvalid       = "Webhook signature verification failed"
	ErrClientUnknownProvider               = "Unknown payout provider"
)

// Developer-facing messages, logged and returned only outside production.
const (
	ErrDevValidationFailed            = "Validation failed"
	ErrDevCannotParseJSON             = "Failed to parse JSON body"
	ErrDevCannotMarshalJSON           = "Failed to marshal JSON"
	ErrDevBuildRequest                = "Failed to build outbound request"
	ErrDevServerDeadlineExceeded      = "Deadline exceeded while processing the request"
	ErrDevURLParamIDValidationFailed  = "URL parameter %s failed validation"
	ErrDevAuthTokenMissing            = "Authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired   = "Authorization token is invalid or expired"
	ErrDevQrPayloadTooLong            = "QR payload longer than the boundary limit"
	ErrDevInvalidInrAmount            = "INR amount is non-positive or malformed"
	ErrDevPriceSourceUnreachable      = "Price source unreachable"
	ErrDevPriceSourceZeroRate         = "Price source returned a zero or missing rate"
	ErrDevPayoutGuardViolated         = "Payout guard violated: unconfirmed payment or active attempt exists"
	ErrDevPayoutCeilingExceeded       = "Payout amount exceeds the provider ceiling"
	ErrDevPayoutProviderRejected      = "Payout provider rejected the transfer"
	ErrDevPayoutProviderUnreachable   = "Payout provider unreachable"
	ErrDevUnknownProviderTransferID   = "No payout attempt matches the transfer reference"
	ErrDevChainTxHashDuplicate        = "chainTxHash already recorded on another transaction"
	ErrDevWebhookSignatureMismatch    = "Webhook HMAC signature mismatch"
	ErrDevTransactionNotFound         = "Transaction document not found"
	ErrDevDBFailedToFindDocument      = "Failed to find document on database"
	ErrDevDBFailedToInsertDocument    = "Failed to insert document to database"
	ErrDevDBFailedToUpdateDocument    = "Failed to update document on database"
	ErrDevDBFailedToIterateDocuments  = "Failed to iterate documents from database"
	ErrDevDBStringNotObjectID         = "Given string is not a valid ObjectID"
	ErrDevRedisGetData                = "Failed to get data from redis"
	ErrDevRedisSetData                = "Failed to set data to redis"
	ErrDevRedisDeleteData             = "Failed to delete data from redis"
	ErrDevQueuePublishFailed          = "Failed to publish message to queue"
	ErrDevArchiveWriteFailed          = "Failed to write audit object to storage, bucket %s"
)

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"min":        "must be at least %s characters long",
	"max":        "maximum at %s characters long",
	"numeric":    "must be a number",
	"oneof":      "must be one of [%s]",
	"gt":         "must be greater than %s",
	"gte":        "must be greater than or equal to %s",
	"lt":         "must be less than %s",
	"lte":        "must be less than or equal to %s",
	"url":        "must be a valid URL",
	"uuid":       "must be a valid UUID",
	"vpa":        "must be a valid UPI address (local@handle)",
	"inr_amount": "must be a positive amount with at most 2 decimal places",
	"eth_tx":     "must be a valid transaction hash",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
}
