package routers

import (
	"spendin-service/internal/app/delivery/http/middlewares"
	"spendin-service/internal/app/services/core/payouts"

	"github.com/go-chi/chi/v5"
)

func attachTransactionRoutes(router chi.Router, middlewares *middlewares.Middlewares, payoutController *payouts.PayoutController) {
	router.Use(middlewares.SessionAuth)

	router.Post("/scan", payoutController.CreateScan)
	router.Get("/{transactionID}", payoutController.GetTransaction)
	router.Post("/{transactionID}/quote", payoutController.AttachQuote)
	router.Post("/{transactionID}/onchain", payoutController.RecordOnchainResult)
	router.Post("/{transactionID}/payout", payoutController.InitiatePayout)
}
