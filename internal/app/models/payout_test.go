package models

import (
	"testing"

	"spendin-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileRef(t *testing.T) {
	t.Run("prefers the provider transfer id", func(t *testing.T) {
		attempt := PayoutAttempt{TransferID: "TXN_1_AAAAAA", ProviderTransferID: "cf_123"}
		assert.Equal(t, "cf_123", attempt.ReconcileRef())
	})

	t.Run("falls back to the transfer id when the provider never answered", func(t *testing.T) {
		attempt := PayoutAttempt{TransferID: "TXN_1_AAAAAA"}
		assert.Equal(t, "TXN_1_AAAAAA", attempt.ReconcileRef())
	})
}

func TestAttemptByTransferRef(t *testing.T) {
	txn := &Transaction{
		PayoutAttempts: []PayoutAttempt{
			{TransferID: "TXN_1_AAAAAA", Status: constvars.PayoutStatusFailed, FailureReason: constvars.PayoutFailureReasonTimeout},
			{TransferID: "TXN_1_BBBBBB", ProviderTransferID: "cf_456", Status: constvars.PayoutStatusProcessing},
		},
	}

	t.Run("matches on the provider transfer id", func(t *testing.T) {
		attempt := txn.AttemptByTransferRef("cf_456")
		require.NotNil(t, attempt)
		assert.Equal(t, "TXN_1_BBBBBB", attempt.TransferID)
	})

	t.Run("matches on our transfer id when no provider id exists", func(t *testing.T) {
		attempt := txn.AttemptByTransferRef("TXN_1_AAAAAA")
		require.NotNil(t, attempt)
		assert.Equal(t, constvars.PayoutFailureReasonTimeout, attempt.FailureReason)
	})

	t.Run("unknown ref yields nil", func(t *testing.T) {
		assert.Nil(t, txn.AttemptByTransferRef("cf_999"))
	})
}
