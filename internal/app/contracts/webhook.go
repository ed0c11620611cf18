package contracts

import (
	"context"

	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
)

type WebhookUsecase interface {
	// HandlePayoutWebhook verifies the HMAC signature over rawBody before
	// trusting the payload, archives it, and funnels the status change into
	// the orchestrator's apply routine.
	HandlePayoutWebhook(ctx context.Context, provider constvars.PayoutProvider, rawBody []byte, signature string) (*models.Transaction, error)
}
