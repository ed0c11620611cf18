package contracts

import (
	"context"

	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
)

// TransactionRepository is the ledger store contract. All payout status writes
// go through it; TryBeginPayout must be an atomic conditional update so two
// concurrent initiations cannot both pass the no-active-attempt guard.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	FindByID(ctx context.Context, transactionID string) (*models.Transaction, error)
	FindByTxnHash(ctx context.Context, chainTxHash string) (*models.Transaction, error)
	// FindByTransferRef matches either the provider's transfer id or our own
	// transferId, so attempts that never got a provider answer stay reachable.
	FindByTransferRef(ctx context.Context, transferRef string) (*models.Transaction, error)
	UpdateQuote(ctx context.Context, transactionID string, usdcAmount, exchangeRate string, chainID int) (*models.Transaction, error)
	MarkOnchainResult(ctx context.Context, transactionID, walletAddress, chainTxHash string, isSuccess bool) (*models.Transaction, error)
	// TryBeginPayout appends the attempt and flips payoutTriggered in one
	// conditional update. It returns (nil, nil) when the guard document no
	// longer matches, i.e. another attempt is already active.
	TryBeginPayout(ctx context.Context, transactionID string, attempt *models.PayoutAttempt) (*models.Transaction, error)
	ApplyPayoutStatus(ctx context.Context, transferRef string, status constvars.PayoutStatus, utr, failureReason string) (*models.Transaction, error)
	FinalizeAttempt(ctx context.Context, transactionID, transferID string, status constvars.PayoutStatus, providerTransferID, failureReason string) (*models.Transaction, error)
	FindOutstandingPayouts(ctx context.Context, limit int) ([]models.Transaction, error)
}
