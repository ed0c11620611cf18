package payout_gateway

import (
	"testing"

	"spendin-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCashfreeNormalizeTransfer(t *testing.T) {
	s := &cashfreeService{Log: zap.NewNop()}

	t.Run("v2 flat shape", func(t *testing.T) {
		var transfer cashfreeTransferResponse
		require.NoError(t, json.Unmarshal([]byte(`{
			"cf_transfer_id": "cf_123",
			"status_code": "COMPLETED",
			"transfer_utr": "UTR0001"
		}`), &transfer))

		result, err := s.normalizeTransfer(&transfer, "TXN_1_AAAAAA")

		require.NoError(t, err)
		assert.Equal(t, "cf_123", result.ProviderTransferID)
		assert.Equal(t, constvars.PayoutStatusProcessed, result.Status)
		assert.Equal(t, "UTR0001", result.Utr)
	})

	t.Run("v1 envelope shape", func(t *testing.T) {
		var transfer cashfreeTransferResponse
		require.NoError(t, json.Unmarshal([]byte(`{
			"status": "SUCCESS",
			"data": {"referenceId": 10023, "utr": "UTR0002"}
		}`), &transfer))

		result, err := s.normalizeTransfer(&transfer, "TXN_1_AAAAAA")

		require.NoError(t, err)
		assert.Equal(t, "10023", result.ProviderTransferID)
		assert.Equal(t, constvars.PayoutStatusProcessed, result.Status)
		assert.Equal(t, "UTR0002", result.Utr)
	})

	t.Run("pending maps to initiated", func(t *testing.T) {
		result, err := s.normalizeTransfer(&cashfreeTransferResponse{Status: "PENDING"}, "TXN_1_AAAAAA")

		require.NoError(t, err)
		assert.Equal(t, constvars.PayoutStatusInitiated, result.Status)
		// No provider id yet, our transfer id stands in.
		assert.Equal(t, "TXN_1_AAAAAA", result.ProviderTransferID)
	})

	t.Run("failure carries the provider message", func(t *testing.T) {
		result, err := s.normalizeTransfer(&cashfreeTransferResponse{
			Status:  "REJECTED",
			Message: "beneficiary inactive",
		}, "TXN_1_AAAAAA")

		require.NoError(t, err)
		assert.Equal(t, constvars.PayoutStatusFailed, result.Status)
		assert.Equal(t, "beneficiary inactive", result.FailureReason)
	})

	t.Run("unrecognized status is an error", func(t *testing.T) {
		_, err := s.normalizeTransfer(&cashfreeTransferResponse{Status: "WAT"}, "TXN_1_AAAAAA")

		require.Error(t, err)
	})
}

func TestRazorpayNormalizePayout(t *testing.T) {
	s := &razorpayService{Log: zap.NewNop()}

	t.Run("maps each lifecycle status", func(t *testing.T) {
		cases := map[string]constvars.PayoutStatus{
			"queued":     constvars.PayoutStatusInitiated,
			"pending":    constvars.PayoutStatusInitiated,
			"processing": constvars.PayoutStatusProcessing,
			"processed":  constvars.PayoutStatusProcessed,
			"reversed":   constvars.PayoutStatusReversed,
			"cancelled":  constvars.PayoutStatusFailed,
			"rejected":   constvars.PayoutStatusFailed,
			"failed":     constvars.PayoutStatusFailed,
		}
		for providerStatus, want := range cases {
			result, err := s.normalizePayout(&razorpayPayoutResponse{ID: "pout_1", Status: providerStatus})
			require.NoError(t, err, providerStatus)
			assert.Equal(t, want, result.Status, providerStatus)
		}
	})

	t.Run("failure without a reason keeps the provider status", func(t *testing.T) {
		result, err := s.normalizePayout(&razorpayPayoutResponse{ID: "pout_1", Status: "rejected"})

		require.NoError(t, err)
		assert.Equal(t, "rejected", result.FailureReason)
	})

	t.Run("missing id is an error", func(t *testing.T) {
		_, err := s.normalizePayout(&razorpayPayoutResponse{Status: "processed"})

		require.Error(t, err)
	})
}
