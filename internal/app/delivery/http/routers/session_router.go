package routers

import (
	"spendin-service/internal/app/services/core/sessions"

	"github.com/go-chi/chi/v5"
)

func attachSessionRoutes(router chi.Router, sessionController *sessions.SessionController) {
	router.Post("/session", sessionController.CreateSession)
}
