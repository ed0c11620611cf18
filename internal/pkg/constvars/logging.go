package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDataKey               = "data"
	LoggingRequestKey            = "request"
	LoggingResponseKey           = "response"
	LoggingQueryParamsKey        = "query_params"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingTransactionIDKey      = "transaction_id"
	LoggingTransferIDKey         = "transfer_id"
	LoggingProviderTransferIDKey = "provider_transfer_id"
	LoggingTransferRefKey        = "transfer_ref"
	LoggingProviderKey           = "provider"
	LoggingChainIDKey            = "chain_id"
	LoggingChainTxHashKey        = "chain_tx_hash"
	LoggingInrAmountKey          = "inr_amount"
	LoggingUsdcAmountKey         = "usdc_amount"
	LoggingExchangeRateKey       = "exchange_rate"
	LoggingPayoutStatusKey       = "payout_status"
	LoggingBeneficiaryRefKey     = "beneficiary_ref"
	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingQueueNameKey          = "queue_name"
	LoggingObjectNameKey         = "object_name"
	LoggingWebhookEventKey       = "webhook_event"
)
