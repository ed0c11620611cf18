package contracts

import "context"

// ReconcileQueueService publishes pending transfer references for
// asynchronous status polling by the reconciliation worker.
type ReconcileQueueService interface {
	PublishPending(ctx context.Context, transferRef string, provider string) error
}
