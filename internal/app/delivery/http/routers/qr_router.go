package routers

import (
	"spendin-service/internal/app/services/core/qrparser"

	"github.com/go-chi/chi/v5"
)

func attachQrRoutes(router chi.Router, qrParserController *qrparser.QrParserController) {
	router.Post("/parse", qrParserController.ParseQr)
}
