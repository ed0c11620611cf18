package routers

import (
	"spendin-service/internal/app/services/core/conversion"

	"github.com/go-chi/chi/v5"
)

func attachConversionRoutes(router chi.Router, conversionController *conversion.ConversionController) {
	router.Post("/quote", conversionController.CreateQuote)
}
