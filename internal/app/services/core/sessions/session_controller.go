package sessions

import (
	"net/http"

	"spendin-service/internal/app/config"
	"spendin-service/internal/app/services/shared/jwtmanager"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/dto/responses"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SessionController struct {
	Log            *zap.Logger
	JWTManager     *jwtmanager.JWTManager
	InternalConfig *config.InternalConfig
}

func NewSessionController(logger *zap.Logger, jwtManager *jwtmanager.JWTManager, internalConfig *config.InternalConfig) *SessionController {
	return &SessionController{
		Log:            logger,
		JWTManager:     jwtManager,
		InternalConfig: internalConfig,
	}
}

func (ctrl *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateSession)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	token, err := ctrl.JWTManager.CreateSessionToken(request.WalletAddress)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SessionCreatedSuccess, &responses.SessionResponse{
		Token:         token,
		WalletAddress: request.WalletAddress,
		ExpiresInHour: ctrl.InternalConfig.JWT.ExpTimeInHour,
	})
}
