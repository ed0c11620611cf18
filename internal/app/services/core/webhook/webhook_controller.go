package webhook

import (
	"context"
	"io"
	"net/http"
	"time"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WebhookController struct {
	Log            *zap.Logger
	WebhookUsecase contracts.WebhookUsecase
}

func NewWebhookController(logger *zap.Logger, webhookUsecase contracts.WebhookUsecase) *WebhookController {
	return &WebhookController{
		Log:            logger,
		WebhookUsecase: webhookUsecase,
	}
}

// HandlePayoutWebhook reads the raw body untouched; the HMAC is computed over
// exactly the bytes the provider sent.
func (ctrl *WebhookController) HandlePayoutWebhook(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	signature := r.Header.Get(constvars.HeaderXWebhookSignature)

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := ctrl.WebhookUsecase.HandlePayoutWebhook(ctx, constvars.PayoutProvider(provider), rawBody, signature)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WebhookAcceptedSuccess, result)
}
