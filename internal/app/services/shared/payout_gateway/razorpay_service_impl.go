package payout_gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"spendin-service/internal/app/config"
	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	razorpayServiceInstance contracts.PayoutGatewayService
	onceRazorpayService     sync.Once
)

type razorpayService struct {
	BaseUrl     string
	KeyID       string
	KeySecret   string
	MaxTransfer string
	Timeout     time.Duration
	Log         *zap.Logger
}

type razorpayPayoutResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Utr           string `json:"utr"`
	FailureReason string `json:"failure_reason"`
	Error         struct {
		Description string `json:"description"`
	} `json:"error"`
}

type razorpayFundAccountResponse struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

func NewRazorpayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PayoutGatewayService {
	onceRazorpayService.Do(func() {
		channel := internalConfig.Payout.Razorpay
		razorpayServiceInstance = &razorpayService{
			BaseUrl:     channel.BaseUrl,
			KeyID:       channel.ClientID,
			KeySecret:   channel.ClientSecret,
			MaxTransfer: channel.MaxTransferInr,
			Timeout:     time.Duration(channel.TimeoutInSeconds) * time.Second,
			Log:         logger,
		}
	})
	return razorpayServiceInstance
}

func (s *razorpayService) Provider() constvars.PayoutProvider {
	return constvars.PayoutProviderRazorpay
}

func (s *razorpayService) MaxTransferInr() string {
	return s.MaxTransfer
}

func (s *razorpayService) InitiateTransfer(ctx context.Context, request *contracts.TransferRequest) (*contracts.TransferResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("razorpayService.InitiateTransfer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransferIDKey, request.TransferID),
		zap.String(constvars.LoggingBeneficiaryRefKey, request.BeneficiaryRef),
	)

	mode := "UPI"
	if request.Mode == constvars.TransferModeImps {
		mode = "IMPS"
	}

	payload := map[string]interface{}{
		"fund_account_id": request.BeneficiaryRef,
		"amount":          request.AmountInr,
		"currency":        constvars.UpiDefaultCurrency,
		"mode":            mode,
		"purpose":         "payout",
		"reference_id":    request.TransferID,
		"narration":       request.Remarks,
	}

	respBody, err := s.doRequest(ctx, constvars.MethodPost, "/v1/payouts", payload)
	if err != nil {
		return nil, err
	}

	var payout razorpayPayoutResponse
	if err := json.Unmarshal(respBody, &payout); err != nil {
		return nil, exceptions.ErrPayoutProviderRejected(err)
	}
	return s.normalizePayout(&payout)
}

func (s *razorpayService) GetTransferStatus(ctx context.Context, providerTransferID string) (*contracts.TransferResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("razorpayService.GetTransferStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderTransferIDKey, providerTransferID),
	)

	respBody, err := s.doRequest(ctx, constvars.MethodGet, "/v1/payouts/"+providerTransferID, nil)
	if err != nil {
		return nil, err
	}

	var payout razorpayPayoutResponse
	if err := json.Unmarshal(respBody, &payout); err != nil {
		return nil, exceptions.ErrPayoutProviderRejected(err)
	}
	return s.normalizePayout(&payout)
}

func (s *razorpayService) AddBeneficiary(ctx context.Context, details *contracts.BeneficiaryDetails) (*contracts.BeneficiaryResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("razorpayService.AddBeneficiary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	payload := map[string]interface{}{
		"account_type": "vpa",
		"vpa": map[string]string{
			"address": details.VpaAddress,
		},
		"contact": map[string]string{
			"name":  details.Name,
			"email": details.Email,
			"contact": details.Phone,
			"type":  "vendor",
		},
	}

	respBody, err := s.doRequest(ctx, constvars.MethodPost, "/v1/fund_accounts", payload)
	if err != nil {
		return nil, err
	}

	var fundAccount razorpayFundAccountResponse
	if err := json.Unmarshal(respBody, &fundAccount); err != nil {
		return nil, exceptions.ErrPayoutProviderRejected(err)
	}
	if fundAccount.ID == "" {
		return nil, exceptions.ErrPayoutProviderRejected(fmt.Errorf("missing fund account id"))
	}

	status := "inactive"
	if fundAccount.Active {
		status = "active"
	}
	return &contracts.BeneficiaryResult{BeneficiaryRef: fundAccount.ID, Status: status}, nil
}

func (s *razorpayService) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		requestJSON, err := json.Marshal(payload)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewBuffer(requestJSON)
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, s.BaseUrl+path, body)
	if err != nil {
		return nil, exceptions.ErrBuildRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.SetBasicAuth(s.KeyID, s.KeySecret)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrPayoutProviderUnreachable(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrPayoutProviderUnreachable(err)
	}

	if resp.StatusCode >= 400 {
		return nil, exceptions.ErrPayoutProviderRejected(fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)))
	}
	return respBody, nil
}

func (s *razorpayService) normalizePayout(payout *razorpayPayoutResponse) (*contracts.TransferResult, error) {
	if payout.ID == "" {
		return nil, exceptions.ErrPayoutProviderRejected(fmt.Errorf("missing payout id: %s", payout.Error.Description))
	}

	result := &contracts.TransferResult{
		ProviderTransferID: payout.ID,
		Utr:                payout.Utr,
	}
	switch payout.Status {
	case "queued", "pending":
		result.Status = constvars.PayoutStatusInitiated
	case "processing":
		result.Status = constvars.PayoutStatusProcessing
	case "processed":
		result.Status = constvars.PayoutStatusProcessed
	case "reversed":
		result.Status = constvars.PayoutStatusReversed
	case "cancelled", "rejected", "failed":
		result.Status = constvars.PayoutStatusFailed
		result.FailureReason = payout.FailureReason
		if result.FailureReason == "" {
			result.FailureReason = payout.Status
		}
	default:
		return nil, exceptions.ErrPayoutProviderRejected(fmt.Errorf("unrecognized payout status %q", payout.Status))
	}
	return result, nil
}
