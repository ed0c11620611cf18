package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateTransferID produces a payout transfer id following the
// TXN_<epochMillis>_<random6> uppercase policy.
func GenerateTransferID() (string, error) {
	suffix, err := randomUppercase(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TXN_%d_%s", time.Now().UnixMilli(), suffix), nil
}

func randomUppercase(length int) (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	max := big.NewInt(int64(len(alphabet)))

	out := make([]byte, length)
	for i := range out {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[num.Int64()]
	}
	return string(out), nil
}

func GenerateArchiveObjectName(provider, providerTransferID string) string {
	timestamp := time.Now().UTC().Format("20060102_150405.000000000")
	return fmt.Sprintf("webhooks/%s/%s_%s.json", provider, providerTransferID, timestamp)
}
