package reconcilequeue

import (
	"context"
	"fmt"
	"sync"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "payout_reconcile_queue"
	DeadLetterQueueName = "payout_reconcile_dlq"

	// MaxPollAttempts bounds how often one message is retried before it is
	// dead-lettered for manual inspection.
	MaxPollAttempts = 10
)

// ReconcileMessage is the payload stored in RabbitMQ for one pending payout.
// TransferRef is the provider's transfer id, or our own transferId for
// attempts whose initiation timed out before the provider answered.
type ReconcileMessage struct {
	TransferRef string `json:"transfer_ref"`
	Provider    string `json:"provider"`
	FailedCount int    `json:"failed_count"`
}

// Service manages the durable reconciliation queues.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService declares both durable queues, enables publisher confirms and
// sets QoS before handing the channel to the worker.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, queue := range []string{StandardQueueName, DeadLetterQueueName} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// PublishPending enqueues one pending transfer for asynchronous polling.
func (s *Service) PublishPending(ctx context.Context, transferRef string, provider string) error {
	return s.publish(ctx, StandardQueueName, ReconcileMessage{
		TransferRef: transferRef,
		Provider:    provider,
	})
}

// Requeue pushes a failed message back to the standard queue tail, or to the
// DLQ once MaxPollAttempts is reached. Requeue owns the failure count: it is
// incremented here and nowhere else, so one failed cycle counts exactly once.
func (s *Service) Requeue(ctx context.Context, message ReconcileMessage) error {
	message.FailedCount++
	queueName := queueFor(message.FailedCount)
	if queueName == DeadLetterQueueName {
		s.log.Warn("ReconcileQueue.Requeue dead-lettering message",
			zap.String(constvars.LoggingTransferRefKey, message.TransferRef),
			zap.Int("failed_count", message.FailedCount),
		)
	}
	return s.publish(ctx, queueName, message)
}

func queueFor(failedCount int) string {
	if failedCount >= MaxPollAttempts {
		return DeadLetterQueueName
	}
	return StandardQueueName
}

// Consume returns a delivery channel from the standard queue.
func (s *Service) Consume() (<-chan amqp.Delivery, error) {
	return s.ch.Consume(StandardQueueName, "", false, false, false, false, nil)
}

// Ack acknowledges a delivery so it is removed from the queue.
func (s *Service) Ack(deliveryTag uint64) error {
	return s.ch.Ack(deliveryTag, false)
}

func (s *Service) publish(ctx context.Context, queueName string, message ReconcileMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("message not confirmed by broker"))
		}
	case <-ctx.Done():
		return exceptions.ErrQueuePublish(ctx.Err())
	}
	return nil
}

var _ contracts.ReconcileQueueService = (*Service)(nil)
