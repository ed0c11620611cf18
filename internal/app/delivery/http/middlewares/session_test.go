package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"spendin-service/internal/app/config"
	"spendin-service/internal/app/services/shared/jwtmanager"
	"spendin-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares(t *testing.T) (*Middlewares, *jwtmanager.JWTManager) {
	t.Helper()

	internalConfig := &config.InternalConfig{}
	internalConfig.JWT.Secret = "test-secret"
	internalConfig.JWT.ExpTimeInHour = 1

	jwtManager := jwtmanager.NewJWTManager(internalConfig, zap.NewNop())
	return NewMiddlewares(zap.NewNop(), jwtManager, internalConfig), jwtManager
}

func TestSessionAuth(t *testing.T) {
	m, jwtManager := newTestMiddlewares(t)

	var gotWallet string
	handler := m.SessionAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWallet, _ = r.Context().Value(constvars.CONTEXT_SESSION_WALLET_KEY).(string)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes and exposes the wallet", func(t *testing.T) {
		token, err := jwtManager.CreateSessionToken("0xabc123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0xabc123", gotWallet)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non bearer header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		otherConfig := &config.InternalConfig{}
		otherConfig.JWT.Secret = "other-secret"
		otherConfig.JWT.ExpTimeInHour = 1
		otherManager := jwtmanager.NewJWTManager(otherConfig, zap.NewNop())

		token, err := otherManager.CreateSessionToken("0xabc123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m, _ := newTestMiddlewares(t)

	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates an id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.NotEmpty(t, rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("keeps a client supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-id-1", rec.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandler(t *testing.T) {
	m, _ := newTestMiddlewares(t)

	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
