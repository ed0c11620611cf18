package routers

import (
	"fmt"
	"time"

	"spendin-service/internal/app/config"
	"spendin-service/internal/app/delivery/http/middlewares"
	"spendin-service/internal/app/services/core/conversion"
	"spendin-service/internal/app/services/core/payouts"
	"spendin-service/internal/app/services/core/qrparser"
	"spendin-service/internal/app/services/core/sessions"
	"spendin-service/internal/app/services/core/webhook"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	qrParserController *qrparser.QrParserController,
	conversionController *conversion.ConversionController,
	payoutController *payouts.PayoutController,
	webhookController *webhook.WebhookController,
	sessionController *sessions.SessionController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachSessionRoutes(r, sessionController)
			})

			r.Route("/qr", func(r chi.Router) {
				attachQrRoutes(r, qrParserController)
			})

			r.Route("/conversion", func(r chi.Router) {
				attachConversionRoutes(r, conversionController)
			})

			r.Route("/transactions", func(r chi.Router) {
				attachTransactionRoutes(r, middlewares, payoutController)
			})

			r.Route("/payouts", func(r chi.Router) {
				attachPayoutRoutes(r, middlewares, payoutController)
			})

			r.Route("/webhooks", func(r chi.Router) {
				attachWebhookRoutes(r, webhookController)
			})
		})
	})
}
