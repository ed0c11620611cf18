package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendin-service/internal/app/config"
	"spendin-service/internal/app/delivery/http/middlewares"
	"spendin-service/internal/app/delivery/http/routers"
	"spendin-service/internal/app/drivers/database"
	"spendin-service/internal/app/drivers/logger"
	"spendin-service/internal/app/drivers/messaging"
	"spendin-service/internal/app/drivers/storage"
	"spendin-service/internal/app/services/core/conversion"
	"spendin-service/internal/app/services/core/payouts"
	"spendin-service/internal/app/services/core/qrparser"
	"spendin-service/internal/app/services/core/reconciler"
	"spendin-service/internal/app/services/core/sessions"
	"spendin-service/internal/app/services/core/transactions"
	"spendin-service/internal/app/services/core/webhook"
	"spendin-service/internal/app/services/shared/archive"
	"spendin-service/internal/app/services/shared/jwtmanager"
	"spendin-service/internal/app/services/shared/locker"
	payoutgateway "spendin-service/internal/app/services/shared/payout_gateway"
	"spendin-service/internal/app/services/shared/pricing"
	"spendin-service/internal/app/services/shared/reconcilequeue"
	sharedredis "spendin-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(&bootstrap, minioClient); err != nil {
		bootLog.Fatalf("Failed bootstrapping application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Failed closing connections: %v", err)
	}

	bootLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) error {
	// Shared services
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	pricingService := pricing.NewPricingService(bootstrap.InternalConfig, redisRepository, bootstrap.Logger)
	cashfreeGateway := payoutgateway.NewCashfreeService(bootstrap.InternalConfig, bootstrap.Logger)
	razorpayGateway := payoutgateway.NewRazorpayService(bootstrap.InternalConfig, bootstrap.Logger)
	archiveService := archive.NewMinioArchive(minioClient, bootstrap.DriverConfig.Minio.BucketName, bootstrap.Logger)
	jwtManager := jwtmanager.NewJWTManager(bootstrap.InternalConfig, bootstrap.Logger)

	reconcileQueue, err := reconcilequeue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, 1)
	if err != nil {
		return err
	}

	// Transaction ledger
	transactionRepository, err := transactions.NewTransactionMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	if err != nil {
		return err
	}

	// QR parsing
	qrParserUsecase := qrparser.NewQrParserUsecase(bootstrap.Logger)
	qrParserController := qrparser.NewQrParserController(bootstrap.Logger, qrParserUsecase)

	// Conversion
	conversionUsecase := conversion.NewConversionUsecase(pricingService, bootstrap.Logger)
	conversionController := conversion.NewConversionController(bootstrap.Logger, conversionUsecase)

	// Payout orchestration
	payoutUsecase := payouts.NewPayoutUsecase(
		transactionRepository,
		cashfreeGateway,
		razorpayGateway,
		lockerService,
		reconcileQueue,
		bootstrap.Logger,
	)
	payoutController := payouts.NewPayoutController(bootstrap.Logger, payoutUsecase)

	// Webhooks
	webhookUsecase := webhook.NewWebhookUsecase(payoutUsecase, archiveService, bootstrap.InternalConfig, bootstrap.Logger)
	webhookController := webhook.NewWebhookController(bootstrap.Logger, webhookUsecase)

	// Sessions
	sessionController := sessions.NewSessionController(bootstrap.Logger, jwtManager, bootstrap.InternalConfig)

	// Reconciliation worker
	worker := reconciler.NewWorker(reconcileQueue, payoutUsecase, bootstrap.Logger)
	workerStop, err := worker.Start()
	if err != nil {
		return err
	}
	bootstrap.WorkerStop = workerStop

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, jwtManager, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		qrParserController,
		conversionController,
		payoutController,
		webhookController,
		sessionController,
	)
	return nil
}
