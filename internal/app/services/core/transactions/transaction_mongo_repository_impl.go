package transactions

import (
	"context"
	"time"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionMongoRepository struct {
	Collection *mongo.Collection
}

func NewTransactionMongoRepository(db *mongo.Client, dbName string) (contracts.TransactionRepository, error) {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionTransactions)

	// One on-chain payment funds at most one ledger record. The sparse unique
	// index backstops the duplicate check done before MarkOnchainResult, so
	// two racing writers cannot both persist the same hash.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "chainTxHash", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}

	return &TransactionMongoRepository{Collection: collection}, nil
}

func (repo *TransactionMongoRepository) CreateTransaction(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	now := time.Now().UTC()
	transaction.ScannedAt = now
	transaction.UpdatedAt = now
	transaction.Status = constvars.TransactionStatusScanned

	doc := bson.M{
		"upiId":           transaction.UpiID,
		"merchantName":    transaction.MerchantName,
		"qrType":          transaction.QrType,
		"inrAmount":       transaction.InrAmount,
		"isSuccess":       false,
		"payoutTriggered": false,
		"status":          transaction.Status,
		"scannedAt":       transaction.ScannedAt,
		"updatedAt":       transaction.UpdatedAt,
	}
	result, err := repo.Collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	transaction.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return transaction, nil
}

func (repo *TransactionMongoRepository) FindByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var transaction transactionDocument
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return transaction.toModel(), nil
}

func (repo *TransactionMongoRepository) FindByTxnHash(ctx context.Context, chainTxHash string) (*models.Transaction, error) {
	var transaction transactionDocument
	err := repo.Collection.FindOne(ctx, bson.M{"chainTxHash": chainTxHash}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return transaction.toModel(), nil
}

// FindByTransferRef accepts either the provider's transfer id or our own
// transferId. A timed-out initiation carries no provider id, so matching only
// providerTransferId would strand those attempts forever.
func (repo *TransactionMongoRepository) FindByTransferRef(ctx context.Context, transferRef string) (*models.Transaction, error) {
	filter := bson.M{"$or": []bson.M{
		{"payoutAttempts.providerTransferId": transferRef},
		{"payoutAttempts.transferId": transferRef},
	}}

	var transaction transactionDocument
	err := repo.Collection.FindOne(ctx, filter).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return transaction.toModel(), nil
}

// UpdateQuote replaces the held quote. Re-quoting is idempotent: it only
// swaps quote fields, never payout state.
func (repo *TransactionMongoRepository) UpdateQuote(ctx context.Context, transactionID string, usdcAmount, exchangeRate string, chainID int) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"usdcAmountPaid": usdcAmount,
		"exchangeRate":   exchangeRate,
		"chainId":        chainID,
		"status":         constvars.TransactionStatusQuoted,
		"updatedAt":      time.Now().UTC(),
	}}
	return repo.findOneAndUpdate(ctx, bson.M{"_id": objectID, "payoutTriggered": false}, update)
}

func (repo *TransactionMongoRepository) MarkOnchainResult(ctx context.Context, transactionID, walletAddress, chainTxHash string, isSuccess bool) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	status := constvars.TransactionStatusOnchainPending
	set := bson.M{
		"walletAddress": walletAddress,
		"chainTxHash":   chainTxHash,
		"isSuccess":     isSuccess,
		"updatedAt":     time.Now().UTC(),
	}
	if isSuccess {
		status = constvars.TransactionStatusOnchainConfirmed
		set["paidAt"] = time.Now().UTC()
	}
	set["status"] = status

	return repo.findOneAndUpdate(ctx, bson.M{"_id": objectID, "payoutTriggered": false}, bson.M{"$set": set})
}

// TryBeginPayout appends the attempt only while no other non-failed attempt
// exists and the on-chain leg is confirmed. The guard lives in the filter so
// the check and the write are one conditional update; two racing calls cannot
// both match. A nil, nil return means the guard document did not match.
func (repo *TransactionMongoRepository) TryBeginPayout(ctx context.Context, transactionID string, attempt *models.PayoutAttempt) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":       objectID,
		"isSuccess": true,
		"payoutAttempts": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"status": bson.M{"$ne": constvars.PayoutStatusFailed},
		}}},
	}
	update := bson.M{
		"$push": bson.M{"payoutAttempts": attempt},
		"$set": bson.M{
			"payoutTriggered": true,
			"status":          constvars.TransactionStatusPayoutInitiated,
			"updatedAt":       time.Now().UTC(),
		},
	}

	transaction, err := repo.findOneAndUpdate(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// FinalizeAttempt records the provider's synchronous answer on the attempt
// just pushed by TryBeginPayout, matched by our transferId.
func (repo *TransactionMongoRepository) FinalizeAttempt(ctx context.Context, transactionID, transferID string, status constvars.PayoutStatus, providerTransferID, failureReason string) (*models.Transaction, error) {
	objectID, err := primitive.ObjectIDFromHex(transactionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	set := bson.M{
		"payoutAttempts.$.status": status,
		"status":                  transactionStatusFor(status),
		"updatedAt":               time.Now().UTC(),
	}
	if providerTransferID != "" {
		set["payoutAttempts.$.providerTransferId"] = providerTransferID
	}
	if failureReason != "" {
		set["payoutAttempts.$.failureReason"] = failureReason
	}

	filter := bson.M{"_id": objectID, "payoutAttempts.transferId": transferID}
	return repo.findOneAndUpdate(ctx, filter, bson.M{"$set": set})
}

// ApplyPayoutStatus is the single integration point for webhook and poll
// reconciliation. The allowed-from set in the filter enforces monotonic
// transitions; a duplicate terminal delivery matches nothing and is resolved
// as an idempotent no-op by re-reading the record.
func (repo *TransactionMongoRepository) ApplyPayoutStatus(ctx context.Context, transferRef string, status constvars.PayoutStatus, utr, failureReason string) (*models.Transaction, error) {
	// An attempt failed locally on initiation timeout may still settle at the
	// provider, so a late terminal delivery is allowed to override it.
	transitionGuard := []bson.M{
		{"status": bson.M{"$in": allowedFromStatuses(status)}},
	}
	if status != constvars.PayoutStatusFailed {
		transitionGuard = append(transitionGuard, bson.M{
			"status":        constvars.PayoutStatusFailed,
			"failureReason": constvars.PayoutFailureReasonTimeout,
		})
	}
	filter := bson.M{
		"payoutAttempts": bson.M{"$elemMatch": bson.M{
			"$and": []bson.M{
				{"$or": []bson.M{
					{"providerTransferId": transferRef},
					{"transferId": transferRef},
				}},
				{"$or": transitionGuard},
			},
		}},
	}

	now := time.Now().UTC()
	set := bson.M{
		"payoutAttempts.$.status": status,
		"status":                  transactionStatusFor(status),
		"updatedAt":               now,
	}
	if status == constvars.PayoutStatusProcessed {
		set["payoutAttempts.$.utr"] = utr
		set["payoutAttempts.$.processedAt"] = now
	}
	if failureReason != "" {
		set["payoutAttempts.$.failureReason"] = failureReason
	}

	transaction, err := repo.findOneAndUpdate(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if transaction != nil {
		return transaction, nil
	}

	// No matching transition. Either the attempt is unknown, the identical
	// terminal status arrived again (no-op), or the delivery would regress.
	existing, err := repo.FindByTransferRef(ctx, transferRef)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrPayoutAttemptNotFound(nil)
	}
	attempt := existing.AttemptByTransferRef(transferRef)
	if attempt != nil && attempt.Status == status {
		return existing, nil
	}
	return nil, exceptions.ErrPayoutConflict(nil)
}

func (repo *TransactionMongoRepository) FindOutstandingPayouts(ctx context.Context, limit int) ([]models.Transaction, error) {
	// Live attempts are polled by the provider's id. Timed-out attempts never
	// received one, so they qualify on our transferId alone.
	filter := bson.M{
		"payoutAttempts": bson.M{"$elemMatch": bson.M{
			"$or": []bson.M{
				{
					"providerTransferId": bson.M{"$exists": true, "$ne": ""},
					"status": bson.M{"$in": []constvars.PayoutStatus{
						constvars.PayoutStatusInitiated,
						constvars.PayoutStatusProcessing,
					}},
				},
				{"status": constvars.PayoutStatusFailed, "failureReason": constvars.PayoutFailureReasonTimeout},
			},
		}},
	}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "updatedAt", Value: 1}})

	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var results []models.Transaction
	for cursor.Next(ctx) {
		var doc transactionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		results = append(results, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return results, nil
}

func (repo *TransactionMongoRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Transaction, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var transaction transactionDocument
	err := repo.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return transaction.toModel(), nil
}

// allowedFromStatuses defines the monotonic transition table. processed may
// never regress; reversed only follows a live or settled attempt.
func allowedFromStatuses(to constvars.PayoutStatus) []constvars.PayoutStatus {
	switch to {
	case constvars.PayoutStatusProcessing:
		return []constvars.PayoutStatus{constvars.PayoutStatusInitiated}
	case constvars.PayoutStatusProcessed:
		return []constvars.PayoutStatus{constvars.PayoutStatusInitiated, constvars.PayoutStatusProcessing}
	case constvars.PayoutStatusFailed:
		return []constvars.PayoutStatus{constvars.PayoutStatusInitiated, constvars.PayoutStatusProcessing}
	case constvars.PayoutStatusReversed:
		return []constvars.PayoutStatus{constvars.PayoutStatusInitiated, constvars.PayoutStatusProcessing, constvars.PayoutStatusProcessed}
	default:
		return []constvars.PayoutStatus{}
	}
}

func transactionStatusFor(status constvars.PayoutStatus) constvars.TransactionStatus {
	switch status {
	case constvars.PayoutStatusProcessing:
		return constvars.TransactionStatusPayoutProcessing
	case constvars.PayoutStatusProcessed:
		return constvars.TransactionStatusPayoutProcessed
	case constvars.PayoutStatusFailed:
		return constvars.TransactionStatusPayoutFailed
	case constvars.PayoutStatusReversed:
		return constvars.TransactionStatusPayoutReversed
	default:
		return constvars.TransactionStatusPayoutInitiated
	}
}

// transactionDocument mirrors models.Transaction with an ObjectID primary key.
type transactionDocument struct {
	ID              primitive.ObjectID          `bson:"_id,omitempty"`
	UpiID           string                      `bson:"upiId"`
	MerchantName    string                      `bson:"merchantName,omitempty"`
	QrType          constvars.QrType            `bson:"qrType"`
	InrAmount       string                      `bson:"inrAmount"`
	UsdcAmountPaid  string                      `bson:"usdcAmountPaid,omitempty"`
	ExchangeRate    string                      `bson:"exchangeRate,omitempty"`
	ChainID         int                         `bson:"chainId,omitempty"`
	WalletAddress   string                      `bson:"walletAddress,omitempty"`
	ChainTxHash     string                      `bson:"chainTxHash,omitempty"`
	IsSuccess       bool                        `bson:"isSuccess"`
	PayoutTriggered bool                        `bson:"payoutTriggered"`
	Status          constvars.TransactionStatus `bson:"status"`
	PayoutAttempts  []models.PayoutAttempt      `bson:"payoutAttempts,omitempty"`
	ScannedAt       time.Time                   `bson:"scannedAt"`
	PaidAt          *time.Time                  `bson:"paidAt,omitempty"`
	UpdatedAt       time.Time                   `bson:"updatedAt"`
}

func (d *transactionDocument) toModel() *models.Transaction {
	return &models.Transaction{
		ID:              d.ID.Hex(),
		UpiID:           d.UpiID,
		MerchantName:    d.MerchantName,
		QrType:          d.QrType,
		InrAmount:       d.InrAmount,
		UsdcAmountPaid:  d.UsdcAmountPaid,
		ExchangeRate:    d.ExchangeRate,
		ChainID:         d.ChainID,
		WalletAddress:   d.WalletAddress,
		ChainTxHash:     d.ChainTxHash,
		IsSuccess:       d.IsSuccess,
		PayoutTriggered: d.PayoutTriggered,
		Status:          d.Status,
		PayoutAttempts:  d.PayoutAttempts,
		ScannedAt:       d.ScannedAt,
		PaidAt:          d.PaidAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
