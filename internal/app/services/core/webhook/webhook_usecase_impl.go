package webhook

import (
	"fmt"
	"sync"

	"context"

	"spendin-service/internal/app/config"
	"spendin-service/internal/app/contracts"
	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	webhookUsecaseInstance contracts.WebhookUsecase
	onceWebhookUsecase     sync.Once
)

type webhookUsecase struct {
	PayoutUsecase  contracts.PayoutUsecase
	ArchiveService contracts.ArchiveService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewWebhookUsecase(
	payoutUsecase contracts.PayoutUsecase,
	archiveService contracts.ArchiveService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WebhookUsecase {
	onceWebhookUsecase.Do(func() {
		webhookUsecaseInstance = &webhookUsecase{
			PayoutUsecase:  payoutUsecase,
			ArchiveService: archiveService,
			InternalConfig: internalConfig,
			Log:            logger,
		}
	})
	return webhookUsecaseInstance
}

// HandlePayoutWebhook verifies the HMAC signature over the raw body before
// parsing anything, archives the payload, then funnels the transition into
// the orchestrator's single apply routine.
func (uc *webhookUsecase) HandlePayoutWebhook(ctx context.Context, provider constvars.PayoutProvider, rawBody []byte, signature string) (*models.Transaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	secret, err := uc.webhookSecretFor(provider)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyWebhookSignature(secret, rawBody, signature) {
		uc.Log.Warn("webhookUsecase.HandlePayoutWebhook signature rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, string(provider)),
		)
		return nil, exceptions.ErrWebhookSignatureInvalid(nil)
	}

	payload := new(requests.PayoutWebhookPayload)
	if err := json.Unmarshal(rawBody, payload); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	// Archival is best-effort: a storage outage must not lose the status
	// transition the provider just delivered.
	objectName, archiveErr := uc.ArchiveService.StoreWebhookPayload(ctx, string(provider), payload.Payout.ID, rawBody)
	if archiveErr != nil {
		uc.Log.Warn("webhookUsecase.HandlePayoutWebhook failed archiving payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingProviderKey, string(provider)),
			zap.Error(archiveErr),
		)
	} else {
		uc.Log.Debug("webhookUsecase.HandlePayoutWebhook payload archived",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
		)
	}

	status, err := statusForEvent(payload.Event)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("webhookUsecase.HandlePayoutWebhook applying event",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderKey, string(provider)),
		zap.String(constvars.LoggingWebhookEventKey, payload.Event),
		zap.String(constvars.LoggingProviderTransferIDKey, payload.Payout.ID),
	)
	return uc.PayoutUsecase.ApplyProviderStatus(ctx, payload.Payout.ID, status, payload.Payout.Utr, payload.Payout.FailureReason)
}

func (uc *webhookUsecase) webhookSecretFor(provider constvars.PayoutProvider) (string, error) {
	switch provider {
	case constvars.PayoutProviderCashfree:
		return uc.InternalConfig.Payout.Cashfree.WebhookSecret, nil
	case constvars.PayoutProviderRazorpay:
		return uc.InternalConfig.Payout.Razorpay.WebhookSecret, nil
	}
	return "", exceptions.ErrUnknownProvider(fmt.Errorf("provider %q not configured", provider))
}

func statusForEvent(event string) (constvars.PayoutStatus, error) {
	switch event {
	case constvars.WebhookEventPayoutProcessed:
		return constvars.PayoutStatusProcessed, nil
	case constvars.WebhookEventPayoutFailed:
		return constvars.PayoutStatusFailed, nil
	case constvars.WebhookEventPayoutReversed:
		return constvars.PayoutStatusReversed, nil
	}
	return "", exceptions.ErrInputValidation(fmt.Errorf("unsupported webhook event %q", event))
}
