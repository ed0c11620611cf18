package contracts

import "spendin-service/internal/pkg/dto/responses"

// QrParserUsecase parses and formats UPI QR payloads. Parse is a pure
// function over the input string and never fails on malformed input.
type QrParserUsecase interface {
	Parse(raw string) *responses.ParsedQrResponse
	FormatSummary(parsed *responses.ParsedQrResponse) string
}
