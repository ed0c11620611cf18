package routers

import (
	"spendin-service/internal/app/services/core/webhook"

	"github.com/go-chi/chi/v5"
)

func attachWebhookRoutes(router chi.Router, webhookController *webhook.WebhookController) {
	router.Post("/payout/{provider}", webhookController.HandlePayoutWebhook)
}
