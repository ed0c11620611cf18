package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "requestID"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "isClientRequestID"
	CONTEXT_SESSION_WALLET_KEY       ContextKey = "sessionWallet"
)

const (
	// MaxQrPayloadLength bounds raw QR input at the HTTP boundary.
	MaxQrPayloadLength = 2048

	// RateCacheKey holds the cached stablecoin INR rate.
	RateCacheKey = "pricing:usdt-inr:rate"
	// RateCacheTTLSeconds bounds how long a fetched rate may be reused.
	RateCacheTTLSeconds = 60

	// PayoutLockKeyFormat serializes payout initiation per transaction.
	PayoutLockKeyFormat = "payout:lock:%s"

	// ReconcileBatchLimit caps how many outstanding attempts one batch call checks.
	ReconcileBatchLimit = 50
)

const (
	MongoCollectionTransactions = "transactions"
)
