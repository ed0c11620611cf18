package contracts

import "context"

// ArchiveService persists raw provider payloads for audit.
type ArchiveService interface {
	StoreWebhookPayload(ctx context.Context, provider, providerTransferID string, payload []byte) (objectName string, err error)
}
