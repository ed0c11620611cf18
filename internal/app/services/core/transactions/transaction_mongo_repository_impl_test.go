package transactions

import (
	"testing"

	"spendin-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestAllowedFromStatuses(t *testing.T) {
	contains := func(statuses []constvars.PayoutStatus, want constvars.PayoutStatus) bool {
		for _, s := range statuses {
			if s == want {
				return true
			}
		}
		return false
	}

	t.Run("processed never regresses", func(t *testing.T) {
		for _, to := range []constvars.PayoutStatus{
			constvars.PayoutStatusInitiated,
			constvars.PayoutStatusProcessing,
			constvars.PayoutStatusFailed,
		} {
			assert.False(t, contains(allowedFromStatuses(to), constvars.PayoutStatusProcessed),
				"processed must not transition to %s", to)
		}
	})

	t.Run("reversed may follow a settled attempt", func(t *testing.T) {
		assert.True(t, contains(allowedFromStatuses(constvars.PayoutStatusReversed), constvars.PayoutStatusProcessed))
	})

	t.Run("terminal states accept no unknown target", func(t *testing.T) {
		assert.Empty(t, allowedFromStatuses(constvars.PayoutStatusInitiated))
	})

	t.Run("failure is reachable from live states only", func(t *testing.T) {
		from := allowedFromStatuses(constvars.PayoutStatusFailed)
		assert.True(t, contains(from, constvars.PayoutStatusInitiated))
		assert.True(t, contains(from, constvars.PayoutStatusProcessing))
		assert.False(t, contains(from, constvars.PayoutStatusReversed))
	})
}

func TestTransactionStatusFor(t *testing.T) {
	cases := map[constvars.PayoutStatus]constvars.TransactionStatus{
		constvars.PayoutStatusProcessing: constvars.TransactionStatusPayoutProcessing,
		constvars.PayoutStatusProcessed:  constvars.TransactionStatusPayoutProcessed,
		constvars.PayoutStatusFailed:     constvars.TransactionStatusPayoutFailed,
		constvars.PayoutStatusReversed:   constvars.TransactionStatusPayoutReversed,
		constvars.PayoutStatusInitiated:  constvars.TransactionStatusPayoutInitiated,
	}
	for payoutStatus, want := range cases {
		assert.Equal(t, want, transactionStatusFor(payoutStatus))
	}
}
