package qrparser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/app/models"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

var (
	qrParserUsecaseInstance contracts.QrParserUsecase
	onceQrParserUsecase     sync.Once
)

var (
	vpaRegexp       = regexp.MustCompile(constvars.RegexUpiVpa)
	inrAmountRegexp = regexp.MustCompile(constvars.RegexInrAmount)
)

type qrParserUsecase struct {
	Log *zap.Logger
}

func NewQrParserUsecase(logger *zap.Logger) contracts.QrParserUsecase {
	onceQrParserUsecase.Do(func() {
		qrParserUsecaseInstance = &qrParserUsecase{Log: logger}
	})
	return qrParserUsecaseInstance
}

// Parse decodes a UPI deep-link into a structured record. Malformed input
// degrades gracefully: the scheme check may fail and fields may be rejected,
// but a record plus errors always comes back, never a panic.
func (uc *qrParserUsecase) Parse(raw string) *responses.ParsedQrResponse {
	trimmed := strings.TrimSpace(raw)

	var parseErrors []string
	record := models.UpiQrRecord{
		CurrencyCode: constvars.UpiDefaultCurrency,
	}

	query := trimmed
	if strings.HasPrefix(strings.ToLower(trimmed), constvars.UpiPayPrefix) {
		query = trimmed[len(constvars.UpiPayPrefix):]
	} else {
		parseErrors = append(parseErrors, fmt.Sprintf("payload does not start with %q", constvars.UpiPayPrefix))
		// Best effort: user-entered text may still carry a query portion.
		if idx := strings.Index(trimmed, "?"); idx >= 0 {
			query = trimmed[idx+1:]
		}
	}

	values := parseQueryLenient(query)
	for key, value := range values {
		switch key {
		case constvars.UpiKeyPayeeAddress:
			record.PayeeAddress = value
		case constvars.UpiKeyPayeeName:
			record.PayeeName = value
		case constvars.UpiKeyAmount:
			record.Amount = value
		case constvars.UpiKeyCurrency:
			if value != "" {
				record.CurrencyCode = value
			}
		case constvars.UpiKeyMerchantCode:
			record.MerchantCategoryCode = value
		case constvars.UpiKeyTransactionRef:
			record.TransactionRef = value
		case constvars.UpiKeyTransactionNote:
			record.TransactionNote = value
		default:
			if record.Extras == nil {
				record.Extras = make(map[string]string)
			}
			record.Extras[key] = value
		}
	}

	if record.PayeeAddress == "" {
		parseErrors = append(parseErrors, "payee address (pa) is required")
	} else if !vpaRegexp.MatchString(record.PayeeAddress) {
		parseErrors = append(parseErrors, fmt.Sprintf("payee address %q is not a valid VPA", record.PayeeAddress))
	}

	if record.Amount != "" && !inrAmountRegexp.MatchString(record.Amount) {
		parseErrors = append(parseErrors, fmt.Sprintf("amount %q must be a non-negative decimal with at most 2 decimal places", record.Amount))
	}

	return &responses.ParsedQrResponse{
		QrType:  record.Classify(),
		IsValid: len(parseErrors) == 0,
		Data:    record,
		Errors:  parseErrors,
	}
}

// FormatSummary renders a parse result as a multi-line human readable block.
// Pure projection, consumed by display collaborators.
func (uc *qrParserUsecase) FormatSummary(parsed *responses.ParsedQrResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "UPI QR (%s)\n", parsed.QrType)
	fmt.Fprintf(&b, "Payee: %s\n", parsed.Data.PayeeAddress)
	if parsed.Data.PayeeName != "" {
		fmt.Fprintf(&b, "Name: %s\n", parsed.Data.PayeeName)
	}
	if parsed.Data.HasAmount() {
		fmt.Fprintf(&b, "Amount: %s %s\n", parsed.Data.Amount, parsed.Data.CurrencyCode)
	}
	if parsed.Data.MerchantCategoryCode != "" {
		fmt.Fprintf(&b, "Merchant Category: %s\n", parsed.Data.MerchantCategoryCode)
	}
	if parsed.Data.TransactionRef != "" {
		fmt.Fprintf(&b, "Reference: %s\n", parsed.Data.TransactionRef)
	}
	if parsed.IsValid {
		b.WriteString("Valid: yes")
	} else {
		fmt.Fprintf(&b, "Valid: no (%s)", strings.Join(parsed.Errors, "; "))
	}
	return b.String()
}

// parseQueryLenient decodes key/value pairs keeping whatever survives
// decoding. url.ParseQuery aborts the whole string on one bad pair; QR text
// typed by hand should not lose every other field to that.
func parseQueryLenient(query string) map[string]string {
	values := make(map[string]string)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			decodedKey = key
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			decodedValue = value
		}
		if decodedKey == "" {
			continue
		}
		// First occurrence wins, matching scanner behavior on duplicate keys.
		if _, exists := values[decodedKey]; !exists {
			values[decodedKey] = decodedValue
		}
	}
	return values
}
