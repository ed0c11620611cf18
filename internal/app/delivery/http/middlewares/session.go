package middlewares

import (
	"context"
	"net/http"
	"strings"

	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"
)

// SessionAuth requires a bearer session token and puts the wallet address it
// was issued for into the request context.
func (m *Middlewares) SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constvars.HeaderAuthorization)
		if header == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		walletAddress, err := m.JWTManager.VerifySessionToken(token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_WALLET_KEY, walletAddress)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
