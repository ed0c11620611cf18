package conversion

import (
	"context"
	"net/http"
	"time"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConversionController struct {
	Log               *zap.Logger
	ConversionUsecase contracts.ConversionUsecase
}

func NewConversionController(logger *zap.Logger, conversionUsecase contracts.ConversionUsecase) *ConversionController {
	return &ConversionController{
		Log:               logger,
		ConversionUsecase: conversionUsecase,
	}
}

func (ctrl *ConversionController) CreateQuote(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateQuote)
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

	result, err := ctrl.ConversionUsecase.Convert(ctx, request.InrAmount, request.ChainID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.QuoteCreatedSuccess, result)
}
