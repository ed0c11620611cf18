package config

type (
	InternalConfig struct {
		App     App
		JWT     JWT
		Pricing Pricing
		Payout  Payout
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}

	App struct {
		Env             string
		Port            string
		Version         string
		EndpointPrefix  string
		Timezone        string
		MaxRequests     int
		ShutdownTimeout int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	Pricing struct {
		BaseUrl          string
		TimeoutInSeconds int
		// RequestsPerSecond and Burst bound outbound calls to the price source.
		RequestsPerSecond float64
		Burst             int
	}

	Payout struct {
		Cashfree PayoutChannel
		Razorpay PayoutChannel
	}

	// PayoutChannel configures one payout provider. MaxTransferInr is the
	// single-transfer ceiling enforced locally, per channel.
	PayoutChannel struct {
		BaseUrl          string
		ClientID         string
		ClientSecret     string
		WebhookSecret    string
		MaxTransferInr   string
		TimeoutInSeconds int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)
