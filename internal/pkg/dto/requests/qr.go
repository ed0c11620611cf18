package requests

// ParseQr carries the raw scanner output. Length is bounded at the HTTP
// boundary, not inside the parser.
type ParseQr struct {
	QrString string `json:"qr_string" validate:"required"`
}
