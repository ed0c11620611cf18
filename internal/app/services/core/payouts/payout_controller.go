package payouts

import (
	"context"
	"net/http"
	"time"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/dto/responses"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PayoutController struct {
	Log           *zap.Logger
	PayoutUsecase contracts.PayoutUsecase
}

func NewPayoutController(logger *zap.Logger, payoutUsecase contracts.PayoutUsecase) *PayoutController {
	return &PayoutController{
		Log:           logger,
		PayoutUsecase: payoutUsecase,
	}
}

func (ctrl *PayoutController) CreateScan(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateScan)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.CreateScan(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.TransactionCreatedSuccess, result)
}

func (ctrl *PayoutController) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.GetTransaction(ctx, transactionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TransactionFetchedSuccess, result)
}

func (ctrl *PayoutController) AttachQuote(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	request := new(requests.AttachQuote)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.AttachQuote(ctx, transactionID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.QuoteAttachedSuccess, result)
}

func (ctrl *PayoutController) RecordOnchainResult(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	request := new(requests.OnchainResult)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.RecordOnchainResult(ctx, transactionID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OnchainRecordedSuccess, result)
}

func (ctrl *PayoutController) InitiatePayout(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	request := new(requests.InitiatePayout)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// Initiation waits on the provider, so it gets a longer budget than reads.
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.InitiatePayout(ctx, transactionID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PayoutInitiatedSuccess, result)
}

func (ctrl *PayoutController) GetPayoutStatus(w http.ResponseWriter, r *http.Request) {
	transferRef := chi.URLParam(r, "transferRef")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.PollTransferStatus(ctx, transferRef)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PayoutStatusFetchedSuccess, result)
}

func (ctrl *PayoutController) ReconcileBatch(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ReconcileBatch)
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
		if err := utils.ValidateStruct(request); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.ReconcileOutstanding(ctx, request.Limit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PayoutReconcileBatchSuccess, result)
}

func (ctrl *PayoutController) AddBeneficiary(w http.ResponseWriter, r *http.Request) {
	request := new(requests.AddBeneficiary)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := ctrl.PayoutUsecase.AddBeneficiary(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BeneficiaryAddedSuccess, &responses.BeneficiaryResponse{
		BeneficiaryRef: result.BeneficiaryRef,
		Status:         result.Status,
	})
}
