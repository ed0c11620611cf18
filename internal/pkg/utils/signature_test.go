package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookSignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"event":"payout.processed","payout":{"id":"cf_1"}}`)

	t.Run("round trip verifies", func(t *testing.T) {
		signature := ComputeWebhookSignature(secret, body)
		assert.True(t, VerifyWebhookSignature(secret, body, signature))
	})

	t.Run("different secret fails", func(t *testing.T) {
		signature := ComputeWebhookSignature(secret, body)
		assert.False(t, VerifyWebhookSignature("other", body, signature))
	})

	t.Run("tampered body fails", func(t *testing.T) {
		signature := ComputeWebhookSignature(secret, body)
		assert.False(t, VerifyWebhookSignature(secret, []byte(`{"event":"payout.failed"}`), signature))
	})

	t.Run("empty signature fails", func(t *testing.T) {
		assert.False(t, VerifyWebhookSignature(secret, body, ""))
	})
}
