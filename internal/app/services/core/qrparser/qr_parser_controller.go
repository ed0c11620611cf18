package qrparser

import (
	"fmt"
	"net/http"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type QrParserController struct {
	Log             *zap.Logger
	QrParserUsecase contracts.QrParserUsecase
}

func NewQrParserController(logger *zap.Logger, qrParserUsecase contracts.QrParserUsecase) *QrParserController {
	return &QrParserController{
		Log:             logger,
		QrParserUsecase: qrParserUsecase,
	}
}

func (ctrl *QrParserController) ParseQr(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ParseQr)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// The size guard is a boundary concern, kept out of the parser itself.
	if len(request.QrString) > constvars.MaxQrPayloadLength {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQrPayloadTooLong(
			fmt.Errorf("payload length %d exceeds %d", len(request.QrString), constvars.MaxQrPayloadLength)))
		return
	}

	result := ctrl.QrParserUsecase.Parse(request.QrString)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.QrParsedSuccess, result)
}
