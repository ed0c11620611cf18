package archive

import (
	"bytes"
	"context"
	"sync"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/exceptions"
	"spendin-service/internal/pkg/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	archiveServiceInstance contracts.ArchiveService
	onceArchiveService     sync.Once
)

// minioArchive keeps raw provider webhook payloads as audit objects. Objects
// are written verbatim so a dispute can be settled against exactly what the
// provider delivered.
type minioArchive struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

func NewMinioArchive(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.ArchiveService {
	onceArchiveService.Do(func() {
		archiveServiceInstance = &minioArchive{
			MinioClient: minioClient,
			BucketName:  bucketName,
			Log:         logger,
		}
	})
	return archiveServiceInstance
}

func (m *minioArchive) StoreWebhookPayload(ctx context.Context, provider, providerTransferID string, payload []byte) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	objectName := utils.GenerateArchiveObjectName(provider, providerTransferID)
	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(payload),
		int64(len(payload)),
		minio.PutObjectOptions{ContentType: constvars.MIMEApplicationJSON},
	)
	if err != nil {
		m.Log.Error("minioArchive.StoreWebhookPayload error writing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrArchiveWrite(err, m.BucketName)
	}

	m.Log.Info("minioArchive.StoreWebhookPayload stored payload",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return objectName, nil
}
