package config

import (
	"spendin-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "spendin"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "payout-webhook-audit"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			Timezone:        utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Pricing: Pricing{
			BaseUrl:           utils.GetEnvString("PRICING_BASE_URL", "https://api.coingecko.com/api/v3"),
			TimeoutInSeconds:  utils.GetEnvInt("PRICING_TIMEOUT_IN_SECONDS", 5),
			RequestsPerSecond: utils.GetEnvFloat("PRICING_REQUESTS_PER_SECOND", 2),
			Burst:             utils.GetEnvInt("PRICING_BURST", 2),
		},
		Payout: Payout{
			Cashfree: PayoutChannel{
				BaseUrl:          utils.GetEnvString("PAYOUT_CASHFREE_BASE_URL", "https://payout-api.cashfree.com"),
				ClientID:         utils.GetEnvString("PAYOUT_CASHFREE_CLIENT_ID", ""),
				ClientSecret:     utils.GetEnvString("PAYOUT_CASHFREE_CLIENT_SECRET", ""),
				WebhookSecret:    utils.GetEnvString("PAYOUT_CASHFREE_WEBHOOK_SECRET", ""),
				MaxTransferInr:   utils.GetEnvString("PAYOUT_CASHFREE_MAX_INR", "25000"),
				TimeoutInSeconds: utils.GetEnvInt("PAYOUT_CASHFREE_TIMEOUT_IN_SECONDS", 10),
			},
			Razorpay: PayoutChannel{
				BaseUrl:          utils.GetEnvString("PAYOUT_RAZORPAY_BASE_URL", "https://api.razorpay.com"),
				ClientID:         utils.GetEnvString("PAYOUT_RAZORPAY_KEY_ID", ""),
				ClientSecret:     utils.GetEnvString("PAYOUT_RAZORPAY_KEY_SECRET", ""),
				WebhookSecret:    utils.GetEnvString("PAYOUT_RAZORPAY_WEBHOOK_SECRET", ""),
				MaxTransferInr:   utils.GetEnvString("PAYOUT_RAZORPAY_MAX_INR", "1000000"),
				TimeoutInSeconds: utils.GetEnvInt("PAYOUT_RAZORPAY_TIMEOUT_IN_SECONDS", 10),
			},
		},
	}
}
