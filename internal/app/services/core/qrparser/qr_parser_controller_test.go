package qrparser

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spendin-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseQrEndpoint(t *testing.T) {
	ctrl := NewQrParserController(zap.NewNop(), NewQrParserUsecase(zap.NewNop()))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/qr/parse", strings.NewReader(body))
		rec := httptest.NewRecorder()
		ctrl.ParseQr(rec, req)
		return rec
	}

	t.Run("parses a valid payload", func(t *testing.T) {
		rec := post(`{"qr_string":"upi://pay?pa=shop@upi&pn=Shop&am=250.00&cu=INR"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var response responses.ResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.True(t, response.Success)

		data, err := json.Marshal(response.Data)
		require.NoError(t, err)
		var parsed responses.ParsedQrResponse
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.True(t, parsed.IsValid)
		assert.Equal(t, "shop@upi", parsed.Data.PayeeAddress)
	})

	t.Run("invalid payload is 200 with errors in the body", func(t *testing.T) {
		rec := post(`{"qr_string":"upi://pay?pn=NoPayee"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var response responses.ResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		data, err := json.Marshal(response.Data)
		require.NoError(t, err)
		var parsed responses.ParsedQrResponse
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.False(t, parsed.IsValid)
		assert.NotEmpty(t, parsed.Errors)
	})

	t.Run("missing qr_string is a validation error", func(t *testing.T) {
		rec := post(`{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("oversized payload is rejected", func(t *testing.T) {
		huge := "upi://pay?pa=shop@upi&tn=" + strings.Repeat("x", 3000)
		body, err := json.Marshal(map[string]string{"qr_string": huge})
		require.NoError(t, err)

		rec := post(string(body))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		rec := post(`{"qr_string":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
