package contracts

import (
	"context"

	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/dto/responses"
)

type PayoutUsecase interface {
	CreateScan(ctx context.Context, request *requests.CreateScan) (*models.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error)
	AttachQuote(ctx context.Context, transactionID string, request *requests.AttachQuote) (*models.Transaction, error)
	RecordOnchainResult(ctx context.Context, transactionID string, request *requests.OnchainResult) (*models.Transaction, error)
	InitiatePayout(ctx context.Context, transactionID string, request *requests.InitiatePayout) (*models.Transaction, error)
	ApplyProviderStatus(ctx context.Context, transferRef string, status constvars.PayoutStatus, utr, failureReason string) (*models.Transaction, error)
	PollTransferStatus(ctx context.Context, transferRef string) (*models.Transaction, error)
	ReconcileOutstanding(ctx context.Context, limit int) (*responses.ReconcileBatchResult, error)
	AddBeneficiary(ctx context.Context, request *requests.AddBeneficiary) (*BeneficiaryResult, error)
}
