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
	cashfreeServiceInstance contracts.PayoutGatewayService
	onceCashfreeService     sync.Once
)

type cashfreeService struct {
	BaseUrl        string
	ClientID       string
	ClientSecret   string
	MaxTransfer    string
	Timeout        time.Duration
	Log            *zap.Logger
}

// cashfreeTransferResponse covers both the V1 envelope (data.referenceId,
// textual status) and the V2 flat shape (cf_transfer_id, status). Whichever
// arrives is normalized into contracts.TransferResult before returning.
type cashfreeTransferResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	TransferID   string `json:"transfer_id"`
	CfTransferID string `json:"cf_transfer_id"`
	StatusCode   string `json:"status_code"`
	Utr          string `json:"transfer_utr"`
	Data         struct {
		ReferenceID json.Number `json:"referenceId"`
		Utr         string      `json:"utr"`
		TransferID  string      `json:"transferId"`
	} `json:"data"`
}

type cashfreeBeneficiaryResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	BeneficiaryID     string `json:"beneficiary_id"`
	BeneficiaryStatus string `json:"beneficiary_status"`
	Data              struct {
		BeneficiaryID string `json:"beneId"`
	} `json:"data"`
}

func NewCashfreeService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PayoutGatewayService {
	onceCashfreeService.Do(func() {
		channel := internalConfig.Payout.Cashfree
		cashfreeServiceInstance = &cashfreeService{
			BaseUrl:      channel.BaseUrl,
			ClientID:     channel.ClientID,
			ClientSecret: channel.ClientSecret,
			MaxTransfer:  channel.MaxTransferInr,
			Timeout:      time.Duration(channel.TimeoutInSeconds) * time.Second,
			Log:          logger,
		}
	})
	return cashfreeServiceInstance
}

func (s *cashfreeService) Provider() constvars.PayoutProvider {
	return constvars.PayoutProviderCashfree
}

func (s *cashfreeService) MaxTransferInr() string {
	return s.MaxTransfer
}

func (s *cashfreeService) InitiateTransfer(ctx context.Context, request *contracts.TransferRequest) (*contracts.TransferResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("cashfreeService.InitiateTransfer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransferIDKey, request.TransferID),
		zap.String(constvars.LoggingBeneficiaryRefKey, request.BeneficiaryRef),
	)

	payload := map[string]interface{}{
		"transfer_id":     request.TransferID,
		"transfer_amount": request.AmountInr,
		"transfer_mode":   request.Mode,
		"beneficiary_details": map[string]string{
			"beneficiary_id": request.BeneficiaryRef,
		},
		"transfer_remarks": request.Remarks,
	}

	respBody, err := s.doRequest(ctx, constvars.MethodPost, "/payout/transfers", payload)
	if err != nil {
		return nil, err
	}

	var transfer cashfreeTransferResponse
	if err := json.Unmarshal(respBody, &transfer); err != nil {
		return nil, exceptions.ErrPayoutProviderRejected(err)
	}
	return s.normalizeTransfer(&transfer, request.TransferID)
}

func (s *cashfreeService) GetTransferStatus(ctx context.Context, providerTransferID string) (*contracts.TransferResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("cashfreeService.GetTransferStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderTransferIDKey, providerTransferID),
	)

	path := fmt.Sprintf("/payout/transfers?cf_transfer_id=%s", providerTransferID)
	respBody, err := s.doRequest(ctx, constvars.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var transfer cashfreeTransferResponse
	if err := json.Unmarshal(respBody, &transfer); err != nil {
		return nil, exceptions.ErrPayoutProviderRejected(err)
	}
	return s.normalizeTransfer(&transfer, providerTransferID)
}

func (s *cashfreeService) AddBeneficiary(ctx context.Context, details *contracts.BeneficiaryDetails) (*contracts.BeneficiaryResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("cashfreeService.AddBeneficiary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	payload := map[string]interface{}{
		"beneficiary_name": details.Name,
		"beneficiary_instrument_details": map[string]string{
			"vpa":                 details.VpaAddress,
			"bank_account_number": details.BankAccount,
			"bank_ifsc":           details.Ifsc,
		},
		"beneficiary_contact_details": map[string]string{
			"beneficiary_email": details.Email,
			"beneficiary_phone": details.Phone,
		},
	}

	respBody, err := s.doRequest(ctx, constvars.MethodPost, "/payout/beneficiary", payload)
	if err != nil {
		return nil, err
	}

	var beneficiary cashfreeBeneficiaryResponse
	if err := json.Unmarshal(respBody, &beneficiary); err != nil {
		return nil, exceptions.ErrPayoutProviderRejected(err)
	}

	// Normalize V1 (data.beneId) vs V2 (beneficiary_id) into one shape.
	ref := beneficiary.BeneficiaryID
	if ref == "" {
		ref = beneficiary.Data.BeneficiaryID
	}
	status := beneficiary.BeneficiaryStatus
	if status == "" {
		status = beneficiary.Status
	}
	if ref == "" {
		return nil, exceptions.ErrPayoutProviderRejected(fmt.Errorf("missing beneficiary id: %s", beneficiary.Message))
	}
	return &contracts.BeneficiaryResult{BeneficiaryRef: ref, Status: status}, nil
}

func (s *cashfreeService) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
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
	req.Header.Set("x-client-id", s.ClientID)
	req.Header.Set("x-client-secret", s.ClientSecret)

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

func (s *cashfreeService) normalizeTransfer(transfer *cashfreeTransferResponse, fallbackID string) (*contracts.TransferResult, error) {
	providerID := transfer.CfTransferID
	if providerID == "" {
		providerID = transfer.Data.TransferID
	}
	if providerID == "" && transfer.Data.ReferenceID.String() != "" {
		providerID = transfer.Data.ReferenceID.String()
	}
	if providerID == "" {
		providerID = fallbackID
	}

	utr := transfer.Utr
	if utr == "" {
		utr = transfer.Data.Utr
	}

	status := transfer.Status
	if transfer.StatusCode != "" {
		status = transfer.StatusCode
	}

	result := &contracts.TransferResult{
		ProviderTransferID: providerID,
		Utr:                utr,
	}
	switch status {
	case "SUCCESS", "COMPLETED":
		result.Status = constvars.PayoutStatusProcessed
	case "PENDING", "RECEIVED":
		result.Status = constvars.PayoutStatusInitiated
	case "PROCESSING", "IN_PROGRESS", "APPROVAL_PENDING":
		result.Status = constvars.PayoutStatusProcessing
	case "REVERSED":
		result.Status = constvars.PayoutStatusReversed
	case "FAILED", "REJECTED", "ERROR":
		result.Status = constvars.PayoutStatusFailed
		result.FailureReason = transfer.Message
	default:
		return nil, exceptions.ErrPayoutProviderRejected(fmt.Errorf("unrecognized transfer status %q", status))
	}
	return result, nil
}
