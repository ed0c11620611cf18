package routers

import (
	"spendin-service/internal/app/delivery/http/middlewares"
	"spendin-service/internal/app/services/core/payouts"

	"github.com/go-chi/chi/v5"
)

func attachPayoutRoutes(router chi.Router, middlewares *middlewares.Middlewares, payoutController *payouts.PayoutController) {
	router.Use(middlewares.SessionAuth)

	router.Post("/beneficiaries", payoutController.AddBeneficiary)
	router.Get("/{transferRef}/status", payoutController.GetPayoutStatus)
	router.Post("/reconcile", payoutController.ReconcileBatch)
}
