package payouts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/dto/responses"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const payoutLockTTL = 30 * time.Second

var (
	payoutUsecaseInstance contracts.PayoutUsecase
	oncePayoutUsecase     sync.Once
)

type payoutUsecase struct {
	TransactionRepository contracts.TransactionRepository
	Gateways              map[constvars.PayoutProvider]contracts.PayoutGatewayService
	LockerService         contracts.LockerService
	ReconcileQueue        contracts.ReconcileQueueService
	Log                   *zap.Logger
}

func NewPayoutUsecase(
	transactionRepository contracts.TransactionRepository,
	cashfreeGateway contracts.PayoutGatewayService,
	razorpayGateway contracts.PayoutGatewayService,
	lockerService contracts.LockerService,
	reconcileQueue contracts.ReconcileQueueService,
	logger *zap.Logger,
) contracts.PayoutUsecase {
	oncePayoutUsecase.Do(func() {
		payoutUsecaseInstance = &payoutUsecase{
			TransactionRepository: transactionRepository,
			Gateways: map[constvars.PayoutProvider]contracts.PayoutGatewayService{
				cashfreeGateway.Provider(): cashfreeGateway,
				razorpayGateway.Provider(): razorpayGateway,
			},
			LockerService:  lockerService,
			ReconcileQueue: reconcileQueue,
			Log:            logger,
		}
	})
	return payoutUsecaseInstance
}

func (uc *payoutUsecase) CreateScan(ctx context.Context, request *requests.CreateScan) (*models.Transaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	transaction := &models.Transaction{
		UpiID:        request.PayeeAddress,
		MerchantName: request.PayeeName,
		QrType:       constvars.QrType(request.QrType),
		InrAmount:    request.InrAmount,
	}
	created, err := uc.TransactionRepository.CreateTransaction(ctx, transaction)
	if err != nil {
		uc.Log.Error("payoutUsecase.CreateScan error creating transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("payoutUsecase.CreateScan transaction recorded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, created.ID),
		zap.String("qrType", string(created.QrType)),
	)
	return created, nil
}

func (uc *payoutUsecase) GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error) {
	transaction, err := uc.TransactionRepository.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}
	return transaction, nil
}

func (uc *payoutUsecase) AttachQuote(ctx context.Context, transactionID string, request *requests.AttachQuote) (*models.Transaction, error) {
	transaction, err := uc.TransactionRepository.UpdateQuote(ctx, transactionID, request.UsdcAmount, request.ExchangeRate, request.ChainID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}
	return transaction, nil
}

func (uc *payoutUsecase) RecordOnchainResult(ctx context.Context, transactionID string, request *requests.OnchainResult) (*models.Transaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	// A chain tx hash funds exactly one ledger record. Re-posting the hash to
	// the same record is fine; claiming it for a second record would mean two
	// INR payouts for one USDC receipt. The unique index on chainTxHash
	// catches the race this read-then-write cannot.
	claimed, err := uc.TransactionRepository.FindByTxnHash(ctx, request.ChainTxHash)
	if err != nil {
		return nil, err
	}
	if claimed != nil && claimed.ID != transactionID {
		return nil, exceptions.ErrChainTxHashAlreadyUsed(fmt.Errorf("hash already on transaction %s", claimed.ID))
	}

	transaction, err := uc.TransactionRepository.MarkOnchainResult(ctx, transactionID, request.WalletAddress, request.ChainTxHash, request.IsSuccess)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}

	uc.Log.Info("payoutUsecase.RecordOnchainResult onchain leg recorded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
		zap.String("chainTxHash", request.ChainTxHash),
		zap.Bool("isSuccess", request.IsSuccess),
	)
	return transaction, nil
}

// InitiatePayout drives one INR payout attempt. Per transaction a redis lock
// serializes concurrent initiations, and the ledger's conditional update is
// the final arbiter: even if the lock expires mid-flight, TryBeginPayout
// refuses a second active attempt.
func (uc *payoutUsecase) InitiatePayout(ctx context.Context, transactionID string, request *requests.InitiatePayout) (*models.Transaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	gateway, err := uc.gatewayFor(request.Provider)
	if err != nil {
		return nil, err
	}

	lockKey := fmt.Sprintf(constvars.PayoutLockKeyFormat, transactionID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, payoutLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrPayoutConflict(fmt.Errorf("initiation already in progress for transaction %s", transactionID))
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("payoutUsecase.InitiatePayout failed releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("lockKey", lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	transaction, err := uc.TransactionRepository.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}
	if !transaction.IsSuccess {
		return nil, exceptions.ErrPayoutNotConfirmed(fmt.Errorf("transaction %s has no confirmed onchain payment", transactionID))
	}
	if active := transaction.ActiveAttempt(); active != nil {
		return nil, exceptions.ErrPayoutConflict(fmt.Errorf("attempt %s is still %s", active.TransferID, active.Status))
	}

	if err := uc.checkAmountWithinCeiling(transaction.InrAmount, gateway); err != nil {
		return nil, err
	}

	transferID := request.TransferID
	if transferID == "" {
		transferID, err = utils.GenerateTransferID()
		if err != nil {
			return nil, exceptions.BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, "Failed to generate transfer id")
		}
	}
	mode := request.Mode
	if mode == "" {
		mode = constvars.TransferModeUpi
	}

	attempt := &models.PayoutAttempt{
		TransferID:     transferID,
		Provider:       gateway.Provider(),
		BeneficiaryRef: request.BeneficiaryRef,
		Amount:         transaction.InrAmount,
		Status:         constvars.PayoutStatusInitiated,
		InitiatedAt:    time.Now().UTC(),
	}
	begun, err := uc.TransactionRepository.TryBeginPayout(ctx, transactionID, attempt)
	if err != nil {
		return nil, err
	}
	if begun == nil {
		return nil, exceptions.ErrPayoutConflict(fmt.Errorf("transaction %s guard no longer matches", transactionID))
	}

	uc.Log.Info("payoutUsecase.InitiatePayout attempt recorded, calling provider",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
		zap.String(constvars.LoggingTransferIDKey, transferID),
		zap.String("provider", string(gateway.Provider())),
	)

	result, err := gateway.InitiateTransfer(ctx, &contracts.TransferRequest{
		TransferID:     transferID,
		BeneficiaryRef: request.BeneficiaryRef,
		AmountInr:      transaction.InrAmount,
		Mode:           mode,
		Remarks:        fmt.Sprintf("spendin txn %s", transactionID),
	})
	if err != nil {
		return uc.failAttempt(ctx, transactionID, transferID, string(gateway.Provider()), err, requestID)
	}

	finalized, err := uc.TransactionRepository.FinalizeAttempt(ctx, transactionID, transferID, result.Status, result.ProviderTransferID, result.FailureReason)
	if err != nil {
		return nil, err
	}
	if finalized == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}

	if result.ProviderTransferID != "" && !uc.isTerminal(result.Status) {
		if queueErr := uc.ReconcileQueue.PublishPending(ctx, result.ProviderTransferID, string(gateway.Provider())); queueErr != nil {
			uc.Log.Warn("payoutUsecase.InitiatePayout failed enqueueing reconcile message",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("providerTransferId", result.ProviderTransferID),
				zap.Error(queueErr),
			)
		}
	}
	return finalized, nil
}

// failAttempt marks the just-begun attempt failed after a provider error. A
// context deadline is recorded as "timeout": the transfer may have been
// accepted upstream, so the attempt is queued for reconciliation under our
// own transferId, the only identifier both sides know.
func (uc *payoutUsecase) failAttempt(ctx context.Context, transactionID, transferID, provider string, cause error, requestID string) (*models.Transaction, error) {
	reason := cause.Error()
	if errors.Is(cause, context.DeadlineExceeded) {
		reason = constvars.PayoutFailureReasonTimeout
	}
	if custom, ok := cause.(*exceptions.CustomError); ok && custom.DevMessage == constvars.ErrDevPayoutProviderUnreachable {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = constvars.PayoutFailureReasonTimeout
		}
	}

	finalizeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, finalizeErr := uc.TransactionRepository.FinalizeAttempt(finalizeCtx, transactionID, transferID, constvars.PayoutStatusFailed, "", reason); finalizeErr != nil {
		uc.Log.Error("payoutUsecase.failAttempt error recording failure",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransferIDKey, transferID),
			zap.Error(finalizeErr),
		)
	}

	if reason == constvars.PayoutFailureReasonTimeout {
		if queueErr := uc.ReconcileQueue.PublishPending(finalizeCtx, transferID, provider); queueErr != nil {
			uc.Log.Warn("payoutUsecase.failAttempt failed enqueueing timed-out attempt",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTransferIDKey, transferID),
				zap.Error(queueErr),
			)
		}
	}

	uc.Log.Error("payoutUsecase.InitiatePayout provider call failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransferIDKey, transferID),
		zap.String("failureReason", reason),
		zap.Error(cause),
	)
	return nil, cause
}

// ApplyProviderStatus is the single funnel for provider-reported transitions,
// shared by the webhook handler, the poll endpoint and the worker.
func (uc *payoutUsecase) ApplyProviderStatus(ctx context.Context, transferRef string, status constvars.PayoutStatus, utr, failureReason string) (*models.Transaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	transaction, err := uc.TransactionRepository.ApplyPayoutStatus(ctx, transferRef, status, utr, failureReason)
	if err != nil {
		uc.Log.Error("payoutUsecase.ApplyProviderStatus error applying status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransferRefKey, transferRef),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("payoutUsecase.ApplyProviderStatus status applied",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransferRefKey, transferRef),
		zap.String("status", string(status)),
	)
	return transaction, nil
}

func (uc *payoutUsecase) PollTransferStatus(ctx context.Context, transferRef string) (*models.Transaction, error) {
	transaction, err := uc.TransactionRepository.FindByTransferRef(ctx, transferRef)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrPayoutAttemptNotFound(nil)
	}
	attempt := transaction.AttemptByTransferRef(transferRef)
	if attempt == nil {
		return nil, exceptions.ErrPayoutAttemptNotFound(nil)
	}

	gateway, err := uc.gatewayFor(string(attempt.Provider))
	if err != nil {
		return nil, err
	}
	// A timed-out attempt has no provider id, so the provider is queried by
	// the transferId this service sent on initiation.
	result, err := gateway.GetTransferStatus(ctx, attempt.ReconcileRef())
	if err != nil {
		return nil, err
	}
	if result.Status == attempt.Status {
		return transaction, nil
	}
	return uc.ApplyProviderStatus(ctx, transferRef, result.Status, result.Utr, result.FailureReason)
}

// ReconcileOutstanding polls every outstanding attempt, at most limit of them.
// Items fail independently; the batch always returns the aggregate.
func (uc *payoutUsecase) ReconcileOutstanding(ctx context.Context, limit int) (*responses.ReconcileBatchResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if limit <= 0 || limit > constvars.ReconcileBatchLimit {
		limit = constvars.ReconcileBatchLimit
	}
	outstanding, err := uc.TransactionRepository.FindOutstandingPayouts(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &responses.ReconcileBatchResult{Items: []responses.ReconcileItemResult{}}
	for i := range outstanding {
		for j := range outstanding[i].PayoutAttempts {
			attempt := &outstanding[i].PayoutAttempts[j]
			if !uc.needsReconcile(attempt) {
				continue
			}
			transferRef := attempt.ReconcileRef()
			result.Checked++

			updated, pollErr := uc.PollTransferStatus(ctx, transferRef)
			if pollErr != nil {
				result.Failed++
				result.Items = append(result.Items, responses.ReconcileItemResult{
					TransferRef: transferRef,
					Error:       pollErr.Error(),
				})
				continue
			}

			item := responses.ReconcileItemResult{TransferRef: transferRef}
			if refreshed := updated.AttemptByTransferRef(transferRef); refreshed != nil {
				item.Status = string(refreshed.Status)
				if refreshed.Status != attempt.Status {
					result.Updated++
				}
			}
			result.Items = append(result.Items, item)
		}
	}

	uc.Log.Info("payoutUsecase.ReconcileOutstanding batch finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("checked", result.Checked),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (uc *payoutUsecase) AddBeneficiary(ctx context.Context, request *requests.AddBeneficiary) (*contracts.BeneficiaryResult, error) {
	gateway, err := uc.gatewayFor(request.Provider)
	if err != nil {
		return nil, err
	}
	return gateway.AddBeneficiary(ctx, &contracts.BeneficiaryDetails{
		Name:        request.Name,
		VpaAddress:  request.VpaAddress,
		Email:       request.Email,
		Phone:       request.Phone,
		BankAccount: request.BankAccount,
		Ifsc:        request.Ifsc,
	})
}

func (uc *payoutUsecase) gatewayFor(provider string) (contracts.PayoutGatewayService, error) {
	gateway, ok := uc.Gateways[constvars.PayoutProvider(provider)]
	if !ok {
		return nil, exceptions.ErrUnknownProvider(fmt.Errorf("provider %q not configured", provider))
	}
	return gateway, nil
}

// checkAmountWithinCeiling rejects locally before any provider call.
func (uc *payoutUsecase) checkAmountWithinCeiling(inrAmount string, gateway contracts.PayoutGatewayService) error {
	amount, err := decimal.NewFromString(inrAmount)
	if err != nil {
		return exceptions.ErrInvalidInrAmount(err)
	}
	if !amount.IsPositive() {
		return exceptions.ErrPayoutAmountOutOfRange(fmt.Errorf("amount %s is not positive", inrAmount))
	}
	ceiling, err := decimal.NewFromString(gateway.MaxTransferInr())
	if err != nil {
		return exceptions.ErrPayoutAmountOutOfRange(err)
	}
	if amount.GreaterThan(ceiling) {
		return exceptions.ErrPayoutAmountOutOfRange(fmt.Errorf("amount %s exceeds %s ceiling %s", inrAmount, gateway.Provider(), gateway.MaxTransferInr()))
	}
	return nil
}

func (uc *payoutUsecase) needsReconcile(attempt *models.PayoutAttempt) bool {
	switch attempt.Status {
	case constvars.PayoutStatusInitiated, constvars.PayoutStatusProcessing:
		return true
	case constvars.PayoutStatusFailed:
		return attempt.FailureReason == constvars.PayoutFailureReasonTimeout
	}
	return false
}

func (uc *payoutUsecase) isTerminal(status constvars.PayoutStatus) bool {
	switch status {
	case constvars.PayoutStatusProcessed, constvars.PayoutStatusFailed, constvars.PayoutStatusReversed:
		return true
	}
	return false
}
