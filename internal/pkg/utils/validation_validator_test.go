package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStructCustomTags(t *testing.T) {
	type payload struct {
		Vpa    string `validate:"omitempty,vpa"`
		Amount string `validate:"omitempty,inr_amount"`
		TxHash string `validate:"omitempty,eth_tx"`
	}

	t.Run("vpa", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&payload{Vpa: "shop@upi"}))
		assert.NoError(t, ValidateStruct(&payload{Vpa: "first.last-1@ok-axis"}))
		assert.Error(t, ValidateStruct(&payload{Vpa: "no-at-sign"}))
		assert.Error(t, ValidateStruct(&payload{Vpa: "spaces in@vpa"}))
	})

	t.Run("inr amount", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&payload{Amount: "250"}))
		assert.NoError(t, ValidateStruct(&payload{Amount: "250.00"}))
		assert.NoError(t, ValidateStruct(&payload{Amount: "0.01"}))
		assert.Error(t, ValidateStruct(&payload{Amount: "0"}))
		assert.Error(t, ValidateStruct(&payload{Amount: "0.00"}))
		assert.Error(t, ValidateStruct(&payload{Amount: "-5"}))
		assert.Error(t, ValidateStruct(&payload{Amount: "10.123"}))
		assert.Error(t, ValidateStruct(&payload{Amount: "ten"}))
	})

	t.Run("eth tx hash", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&payload{TxHash: "0x" + stringOf('a', 64)}))
		assert.Error(t, ValidateStruct(&payload{TxHash: "0x" + stringOf('a', 63)}))
		assert.Error(t, ValidateStruct(&payload{TxHash: stringOf('a', 66)}))
		assert.Error(t, ValidateStruct(&payload{TxHash: "0x" + stringOf('g', 64)}))
	})
}

func stringOf(c byte, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = c
	}
	return string(out)
}
