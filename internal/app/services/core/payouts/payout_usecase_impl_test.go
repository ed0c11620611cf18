package payouts

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/requests"
	"spendin-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTransactionRepository struct {
	transactions map[string]*models.Transaction

	tryBeginCalls    int
	finalizeCalls    []finalizeCall
	applied          []appliedStatus
	tryBeginReturn   *models.Transaction
	byTxnHash        *models.Transaction
	markOnchainCalls int
}

type finalizeCall struct {
	transferID         string
	status             constvars.PayoutStatus
	providerTransferID string
	failureReason      string
}

type appliedStatus struct {
	transferRef string
	status      constvars.PayoutStatus
	utr         string
}

func (m *mockTransactionRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	transaction.ID = "64f000000000000000000001"
	transaction.Status = constvars.TransactionStatusScanned
	return transaction, nil
}

func (m *mockTransactionRepository) FindByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	return m.transactions[transactionID], nil
}

func (m *mockTransactionRepository) FindByTxnHash(ctx context.Context, chainTxHash string) (*models.Transaction, error) {
	return m.byTxnHash, nil
}

func (m *mockTransactionRepository) FindByTransferRef(ctx context.Context, transferRef string) (*models.Transaction, error) {
	for _, txn := range m.transactions {
		if txn.AttemptByTransferRef(transferRef) != nil {
			return txn, nil
		}
	}
	return nil, nil
}

func (m *mockTransactionRepository) UpdateQuote(ctx context.Context, transactionID string, usdcAmount, exchangeRate string, chainID int) (*models.Transaction, error) {
	return m.transactions[transactionID], nil
}

func (m *mockTransactionRepository) MarkOnchainResult(ctx context.Context, transactionID, walletAddress, chainTxHash string, isSuccess bool) (*models.Transaction, error) {
	m.markOnchainCalls++
	return m.transactions[transactionID], nil
}

func (m *mockTransactionRepository) TryBeginPayout(ctx context.Context, transactionID string, attempt *models.PayoutAttempt) (*models.Transaction, error) {
	m.tryBeginCalls++
	return m.tryBeginReturn, nil
}

func (m *mockTransactionRepository) ApplyPayoutStatus(ctx context.Context, transferRef string, status constvars.PayoutStatus, utr, failureReason string) (*models.Transaction, error) {
	m.applied = append(m.applied, appliedStatus{transferRef, status, utr})
	txn, _ := m.FindByTransferRef(ctx, transferRef)
	if txn == nil {
		return nil, exceptions.ErrPayoutAttemptNotFound(nil)
	}
	attempt := txn.AttemptByTransferRef(transferRef)
	attempt.Status = status
	if utr != "" {
		attempt.Utr = utr
	}
	return txn, nil
}

func (m *mockTransactionRepository) FinalizeAttempt(ctx context.Context, transactionID, transferID string, status constvars.PayoutStatus, providerTransferID, failureReason string) (*models.Transaction, error) {
	m.finalizeCalls = append(m.finalizeCalls, finalizeCall{transferID, status, providerTransferID, failureReason})
	return m.transactions[transactionID], nil
}

func (m *mockTransactionRepository) FindOutstandingPayouts(ctx context.Context, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, txn := range m.transactions {
		cp := *txn
		cp.PayoutAttempts = append([]models.PayoutAttempt(nil), txn.PayoutAttempts...)
		out = append(out, cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type mockGateway struct {
	provider    constvars.PayoutProvider
	maxTransfer string

	initiateCalls int
	initiateErr   error
	result        *contracts.TransferResult
	statusResult  *contracts.TransferResult
	statusErr     error
	statusCalls   []string
}

func (m *mockGateway) Provider() constvars.PayoutProvider { return m.provider }
func (m *mockGateway) MaxTransferInr() string             { return m.maxTransfer }

func (m *mockGateway) InitiateTransfer(ctx context.Context, request *contracts.TransferRequest) (*contracts.TransferResult, error) {
	m.initiateCalls++
	if m.initiateErr != nil {
		return nil, m.initiateErr
	}
	return m.result, nil
}

func (m *mockGateway) GetTransferStatus(ctx context.Context, transferRef string) (*contracts.TransferResult, error) {
	m.statusCalls = append(m.statusCalls, transferRef)
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.statusResult, nil
}

func (m *mockGateway) AddBeneficiary(ctx context.Context, details *contracts.BeneficiaryDetails) (*contracts.BeneficiaryResult, error) {
	return &contracts.BeneficiaryResult{BeneficiaryRef: "bene_1", Status: "VERIFIED"}, nil
}

type mockLocker struct {
	denied      bool
	lockCalls   int
	unlockCalls int
}

func (m *mockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	m.lockCalls++
	if m.denied {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (m *mockLocker) Unlock(ctx context.Context, key, lockValue string) error {
	m.unlockCalls++
	return nil
}

type mockQueue struct {
	published []string
}

func (m *mockQueue) PublishPending(ctx context.Context, transferRef string, provider string) error {
	m.published = append(m.published, transferRef)
	return nil
}

const testTxnID = "64f000000000000000000001"

func confirmedTransaction() *models.Transaction {
	return &models.Transaction{
		ID:        testTxnID,
		UpiID:     "shop@upi",
		QrType:    constvars.QrTypeDynamicMerchant,
		InrAmount: "1000.00",
		IsSuccess: true,
		Status:    constvars.TransactionStatusOnchainConfirmed,
	}
}

func newTestPayoutUsecase(repo *mockTransactionRepository, cashfree, razorpay *mockGateway, locker *mockLocker, queue *mockQueue) *payoutUsecase {
	return &payoutUsecase{
		TransactionRepository: repo,
		Gateways: map[constvars.PayoutProvider]contracts.PayoutGatewayService{
			cashfree.provider: cashfree,
			razorpay.provider: razorpay,
		},
		LockerService:  locker,
		ReconcileQueue: queue,
		Log:            zap.NewNop(),
	}
}

func defaultMocks() (*mockTransactionRepository, *mockGateway, *mockGateway, *mockLocker, *mockQueue) {
	txn := confirmedTransaction()
	repo := &mockTransactionRepository{
		transactions:   map[string]*models.Transaction{testTxnID: txn},
		tryBeginReturn: txn,
	}
	cashfree := &mockGateway{
		provider:    constvars.PayoutProviderCashfree,
		maxTransfer: "25000",
		result: &contracts.TransferResult{
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusInitiated,
		},
	}
	razorpay := &mockGateway{
		provider:    constvars.PayoutProviderRazorpay,
		maxTransfer: "1000000",
		result: &contracts.TransferResult{
			ProviderTransferID: "pout_456",
			Status:             constvars.PayoutStatusProcessing,
		},
	}
	return repo, cashfree, razorpay, &mockLocker{}, &mockQueue{}
}

func TestInitiatePayout(t *testing.T) {
	initiateRequest := func() *requests.InitiatePayout {
		return &requests.InitiatePayout{
			Provider:       "cashfree",
			BeneficiaryRef: "bene_1",
		}
	}

	t.Run("happy path finalizes the attempt and enqueues reconciliation", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 1, repo.tryBeginCalls)
		assert.Equal(t, 1, cashfree.initiateCalls)
		require.Len(t, repo.finalizeCalls, 1)
		assert.Equal(t, constvars.PayoutStatusInitiated, repo.finalizeCalls[0].status)
		assert.Equal(t, "cf_123", repo.finalizeCalls[0].providerTransferID)
		assert.Equal(t, []string{"cf_123"}, queue.published)
		assert.Equal(t, 1, locker.unlockCalls)
	})

	t.Run("generated transfer id follows the policy", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.NoError(t, err)
		require.Len(t, repo.finalizeCalls, 1)
		assert.Regexp(t, regexp.MustCompile(constvars.RegexTransferID), repo.finalizeCalls[0].transferID)
	})

	t.Run("caller supplied transfer id is kept", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		request := initiateRequest()
		request.TransferID = "TXN_1700000000000_ABC123"
		_, err := uc.InitiatePayout(context.Background(), testTxnID, request)

		require.NoError(t, err)
		require.Len(t, repo.finalizeCalls, 1)
		assert.Equal(t, "TXN_1700000000000_ABC123", repo.finalizeCalls[0].transferID)
	})

	t.Run("amount above the provider ceiling is rejected before any provider call", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].InrAmount = "30000.00"
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 400, customErr.StatusCode)
		assert.Zero(t, cashfree.initiateCalls)
		assert.Zero(t, repo.tryBeginCalls)
	})

	t.Run("same amount passes the razorpay ceiling", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].InrAmount = "30000.00"
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		request := initiateRequest()
		request.Provider = "razorpay"
		_, err := uc.InitiatePayout(context.Background(), testTxnID, request)

		require.NoError(t, err)
		assert.Equal(t, 1, razorpay.initiateCalls)
	})

	t.Run("unconfirmed onchain leg blocks initiation", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].IsSuccess = false
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Zero(t, repo.tryBeginCalls)
	})

	t.Run("active attempt blocks a second initiation", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID: "TXN_1_AAAAAA",
			Provider:   constvars.PayoutProviderCashfree,
			Status:     constvars.PayoutStatusProcessing,
		}}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Zero(t, cashfree.initiateCalls)
	})

	t.Run("failed attempt releases the guard for a retry", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:    "TXN_1_AAAAAA",
			Provider:      constvars.PayoutProviderCashfree,
			Status:        constvars.PayoutStatusFailed,
			FailureReason: "insufficient balance",
		}}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.NoError(t, err)
		assert.Equal(t, 1, cashfree.initiateCalls)
	})

	t.Run("lost lock race yields a conflict", func(t *testing.T) {
		repo, cashfree, razorpay, _, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, &mockLocker{denied: true}, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("guard mismatch at the ledger yields a conflict", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.tryBeginReturn = nil
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.Error(t, err)
		assert.Zero(t, cashfree.initiateCalls)
	})

	t.Run("provider timeout marks the attempt failed with timeout reason", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		cashfree.initiateErr = context.DeadlineExceeded
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.Error(t, err)
		require.Len(t, repo.finalizeCalls, 1)
		assert.Equal(t, constvars.PayoutStatusFailed, repo.finalizeCalls[0].status)
		assert.Equal(t, constvars.PayoutFailureReasonTimeout, repo.finalizeCalls[0].failureReason)
		require.Len(t, queue.published, 1)
		assert.Equal(t, repo.finalizeCalls[0].transferID, queue.published[0])
	})

	t.Run("provider rejection marks the attempt failed with the provider reason", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		cashfree.initiateErr = errors.New("beneficiary not found")
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), testTxnID, initiateRequest())

		require.Error(t, err)
		require.Len(t, repo.finalizeCalls, 1)
		assert.Equal(t, constvars.PayoutStatusFailed, repo.finalizeCalls[0].status)
		assert.Equal(t, "beneficiary not found", repo.finalizeCalls[0].failureReason)
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		request := initiateRequest()
		request.Provider = "paytm"
		_, err := uc.InitiatePayout(context.Background(), testTxnID, request)

		require.Error(t, err)
		assert.Zero(t, locker.lockCalls)
	})

	t.Run("unknown transaction yields not found", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.InitiatePayout(context.Background(), "64f0000000000000000000ff", initiateRequest())

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestPollTransferStatus(t *testing.T) {
	withAttempt := func(status constvars.PayoutStatus) (*mockTransactionRepository, *mockGateway, *mockGateway, *mockLocker, *mockQueue) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:         "TXN_1_AAAAAA",
			Provider:           constvars.PayoutProviderCashfree,
			ProviderTransferID: "cf_123",
			Status:             status,
		}}
		return repo, cashfree, razorpay, locker, queue
	}

	t.Run("applies a changed provider status", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := withAttempt(constvars.PayoutStatusProcessing)
		cashfree.statusResult = &contracts.TransferResult{
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusProcessed,
			Utr:                "UTR0001",
		}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.PollTransferStatus(context.Background(), "cf_123")

		require.NoError(t, err)
		require.Len(t, repo.applied, 1)
		assert.Equal(t, constvars.PayoutStatusProcessed, repo.applied[0].status)
		assert.Equal(t, "UTR0001", repo.applied[0].utr)
		assert.Equal(t, constvars.PayoutStatusProcessed, result.PayoutAttempts[0].Status)
	})

	t.Run("unchanged status applies nothing", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := withAttempt(constvars.PayoutStatusProcessing)
		cashfree.statusResult = &contracts.TransferResult{
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusProcessing,
		}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.PollTransferStatus(context.Background(), "cf_123")

		require.NoError(t, err)
		assert.Empty(t, repo.applied)
	})

	t.Run("timed-out attempt without a provider id polls by its transfer id", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:    "TXN_1_AAAAAA",
			Provider:      constvars.PayoutProviderCashfree,
			Status:        constvars.PayoutStatusFailed,
			FailureReason: constvars.PayoutFailureReasonTimeout,
		}}
		cashfree.statusResult = &contracts.TransferResult{
			ProviderTransferID: "cf_999",
			Status:             constvars.PayoutStatusProcessed,
			Utr:                "UTR0002",
		}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.PollTransferStatus(context.Background(), "TXN_1_AAAAAA")

		require.NoError(t, err)
		assert.Equal(t, []string{"TXN_1_AAAAAA"}, cashfree.statusCalls)
		require.Len(t, repo.applied, 1)
		assert.Equal(t, "TXN_1_AAAAAA", repo.applied[0].transferRef)
		assert.Equal(t, constvars.PayoutStatusProcessed, repo.applied[0].status)
	})

	t.Run("unknown provider transfer id yields not found", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.PollTransferStatus(context.Background(), "cf_missing")

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestApplyProviderStatus(t *testing.T) {
	t.Run("duplicate terminal delivery is idempotent", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:         "TXN_1_AAAAAA",
			Provider:           constvars.PayoutProviderCashfree,
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusProcessing,
		}}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		first, err := uc.ApplyProviderStatus(context.Background(), "cf_123", constvars.PayoutStatusProcessed, "UTR0001", "")
		require.NoError(t, err)
		second, err := uc.ApplyProviderStatus(context.Background(), "cf_123", constvars.PayoutStatusProcessed, "UTR0001", "")
		require.NoError(t, err)

		assert.Equal(t, first.PayoutAttempts[0].Status, second.PayoutAttempts[0].Status)
		assert.Equal(t, "UTR0001", second.PayoutAttempts[0].Utr)
	})
}

func TestRecordOnchainResult(t *testing.T) {
	onchainRequest := func() *requests.OnchainResult {
		return &requests.OnchainResult{
			WalletAddress: "0xabc0000000000000000000000000000000000001",
			ChainTxHash:   "0xhash01",
			IsSuccess:     true,
			ChainID:       8453,
		}
	}

	t.Run("records the onchain leg", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.RecordOnchainResult(context.Background(), testTxnID, onchainRequest())

		require.NoError(t, err)
		assert.Equal(t, testTxnID, result.ID)
		assert.Equal(t, 1, repo.markOnchainCalls)
	})

	t.Run("re-posting the hash to the same transaction is accepted", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.byTxnHash = repo.transactions[testTxnID]
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.RecordOnchainResult(context.Background(), testTxnID, onchainRequest())

		require.NoError(t, err)
		assert.Equal(t, 1, repo.markOnchainCalls)
	})

	t.Run("hash already claimed by another transaction yields a conflict", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.byTxnHash = &models.Transaction{ID: "64f000000000000000000002"}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.RecordOnchainResult(context.Background(), testTxnID, onchainRequest())

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Zero(t, repo.markOnchainCalls)
	})
}

func TestReconcileOutstanding(t *testing.T) {
	t.Run("aggregates updates and failures without aborting", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:         "TXN_1_AAAAAA",
			Provider:           constvars.PayoutProviderCashfree,
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusProcessing,
		}}
		cashfree.statusResult = &contracts.TransferResult{
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusProcessed,
			Utr:                "UTR0001",
		}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.ReconcileOutstanding(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Checked)
		assert.Equal(t, 1, result.Updated)
		assert.Zero(t, result.Failed)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "cf_123", result.Items[0].TransferRef)
		assert.Equal(t, string(constvars.PayoutStatusProcessed), result.Items[0].Status)
	})

	t.Run("provider failure counts the item as failed", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:         "TXN_1_AAAAAA",
			Provider:           constvars.PayoutProviderCashfree,
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusInitiated,
		}}
		cashfree.statusErr = errors.New("gateway down")
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.ReconcileOutstanding(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Checked)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Items, 1)
		assert.NotEmpty(t, result.Items[0].Error)
	})

	t.Run("terminal attempts are skipped", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:         "TXN_1_AAAAAA",
			Provider:           constvars.PayoutProviderCashfree,
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusProcessed,
		}}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.ReconcileOutstanding(context.Background(), 10)

		require.NoError(t, err)
		assert.Zero(t, result.Checked)
	})

	t.Run("timed out attempts are still polled", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:         "TXN_1_AAAAAA",
			Provider:           constvars.PayoutProviderCashfree,
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusFailed,
			FailureReason:      constvars.PayoutFailureReasonTimeout,
		}}
		cashfree.statusResult = &contracts.TransferResult{
			ProviderTransferID: "cf_123",
			Status:             constvars.PayoutStatusProcessed,
			Utr:                "UTR0002",
		}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.ReconcileOutstanding(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Checked)
		assert.Equal(t, 1, result.Updated)
	})

	t.Run("timed out attempt with no provider id reconciles by transfer id", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		repo.transactions[testTxnID].PayoutAttempts = []models.PayoutAttempt{{
			TransferID:    "TXN_1_AAAAAA",
			Provider:      constvars.PayoutProviderCashfree,
			Status:        constvars.PayoutStatusFailed,
			FailureReason: constvars.PayoutFailureReasonTimeout,
		}}
		cashfree.statusResult = &contracts.TransferResult{
			ProviderTransferID: "cf_999",
			Status:             constvars.PayoutStatusProcessed,
			Utr:                "UTR0003",
		}
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.ReconcileOutstanding(context.Background(), 10)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Checked)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "TXN_1_AAAAAA", result.Items[0].TransferRef)
		assert.Equal(t, []string{"TXN_1_AAAAAA"}, cashfree.statusCalls)
	})
}

func TestAddBeneficiary(t *testing.T) {
	t.Run("routes to the requested provider", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		result, err := uc.AddBeneficiary(context.Background(), &requests.AddBeneficiary{
			Provider:   "cashfree",
			Name:       "Shop Owner",
			VpaAddress: "shop@upi",
		})

		require.NoError(t, err)
		assert.Equal(t, "bene_1", result.BeneficiaryRef)
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		repo, cashfree, razorpay, locker, queue := defaultMocks()
		uc := newTestPayoutUsecase(repo, cashfree, razorpay, locker, queue)

		_, err := uc.AddBeneficiary(context.Background(), &requests.AddBeneficiary{
			Provider:   "paytm",
			Name:       "Shop Owner",
			VpaAddress: "shop@upi",
		})

		require.Error(t, err)
	})
}
