package responses

import (
	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
)

// ParsedQrResponse is the parser output. Invalid payloads still carry the
// best-effort decoded record together with the validation errors.
type ParsedQrResponse struct {
	QrType  constvars.QrType   `json:"qr_type"`
	IsValid bool               `json:"is_valid"`
	Data    models.UpiQrRecord `json:"data"`
	Errors  []string           `json:"errors,omitempty"`
}
