package reconciler

import (
	"context"
	"time"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/app/services/shared/reconcilequeue"
	"spendin-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	pollTimeout = 20 * time.Second
	// pollBackoff spaces out re-polls of attempts the provider still reports
	// as in flight, so the queue does not spin on them.
	pollBackoff = 5 * time.Second
)

// Queue is the slice of the reconcile queue service the worker consumes.
type Queue interface {
	Consume() (<-chan amqp.Delivery, error)
	Ack(deliveryTag uint64) error
	Requeue(ctx context.Context, message reconcilequeue.ReconcileMessage) error
}

// Worker drains the reconciliation queue: each message is one pending
// provider transfer whose status gets polled and applied through the
// orchestrator. Attempts still in flight are requeued until MaxPollAttempts.
type Worker struct {
	Queue         Queue
	PayoutUsecase contracts.PayoutUsecase
	Log           *zap.Logger
}

func NewWorker(queue Queue, payoutUsecase contracts.PayoutUsecase, logger *zap.Logger) *Worker {
	return &Worker{
		Queue:         queue,
		PayoutUsecase: payoutUsecase,
		Log:           logger,
	}
}

// Start consumes until the returned stop function is called. Stop blocks
// until the in-flight message finishes.
func (w *Worker) Start() (stop func(), err error) {
	deliveries, err := w.Queue.Consume()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(ctx, delivery)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

func (w *Worker) handle(ctx context.Context, delivery amqp.Delivery) {
	var message reconcilequeue.ReconcileMessage
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		// An unparseable message can never succeed; drop it.
		w.Log.Error("reconcileWorker.handle dropping malformed message", zap.Error(err))
		if ackErr := w.Queue.Ack(delivery.DeliveryTag); ackErr != nil {
			w.Log.Error("reconcileWorker.handle ack failed", zap.Error(ackErr))
		}
		return
	}

	pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	transaction, err := w.PayoutUsecase.PollTransferStatus(pollCtx, message.TransferRef)
	if err != nil {
		// Requeue bumps the failure count; counting it here too would burn
		// through MaxPollAttempts twice as fast.
		w.Log.Warn("reconcileWorker.handle poll failed, requeueing",
			zap.String(constvars.LoggingTransferRefKey, message.TransferRef),
			zap.Int("failedCount", message.FailedCount),
			zap.Error(err),
		)
		w.requeueAndAck(ctx, delivery, message)
		return
	}

	attempt := transaction.AttemptByTransferRef(message.TransferRef)
	if attempt != nil && !attempt.IsTerminal() {
		select {
		case <-ctx.Done():
		case <-time.After(pollBackoff):
		}
		w.requeueAndAck(ctx, delivery, message)
		return
	}

	if attempt != nil {
		w.Log.Info("reconcileWorker.handle attempt settled",
			zap.String(constvars.LoggingTransferRefKey, message.TransferRef),
			zap.String(constvars.LoggingPayoutStatusKey, string(attempt.Status)),
		)
	}
	if err := w.Queue.Ack(delivery.DeliveryTag); err != nil {
		w.Log.Error("reconcileWorker.handle ack failed", zap.Error(err))
	}
}

func (w *Worker) requeueAndAck(ctx context.Context, delivery amqp.Delivery, message reconcilequeue.ReconcileMessage) {
	if err := w.Queue.Requeue(ctx, message); err != nil {
		w.Log.Error("reconcileWorker.requeueAndAck requeue failed",
			zap.String(constvars.LoggingTransferRefKey, message.TransferRef),
			zap.Error(err),
		)
		// Leave the delivery unacked so the broker redelivers it.
		return
	}
	if err := w.Queue.Ack(delivery.DeliveryTag); err != nil {
		w.Log.Error("reconcileWorker.requeueAndAck ack failed", zap.Error(err))
	}
}
