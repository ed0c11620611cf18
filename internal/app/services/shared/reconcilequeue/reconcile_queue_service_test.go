package reconcilequeue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFor(t *testing.T) {
	t.Run("fresh and retried messages stay on the standard queue", func(t *testing.T) {
		assert.Equal(t, StandardQueueName, queueFor(0))
		assert.Equal(t, StandardQueueName, queueFor(1))
		assert.Equal(t, StandardQueueName, queueFor(MaxPollAttempts-1))
	})

	t.Run("exhausted messages go to the dead letter queue", func(t *testing.T) {
		assert.Equal(t, DeadLetterQueueName, queueFor(MaxPollAttempts))
		assert.Equal(t, DeadLetterQueueName, queueFor(MaxPollAttempts+3))
	})
}
