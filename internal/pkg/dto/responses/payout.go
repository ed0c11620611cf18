package responses

// ReconcileItemResult reports one attempt's outcome within a batch check.
// TransferRef is the provider's transfer id, or our own transferId for
// attempts the provider never answered.
type ReconcileItemResult struct {
	TransferRef string `json:"transfer_ref"`
	Status      string `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ReconcileBatchResult aggregates a bounded batch reconciliation. One item's
// failure never aborts the batch.
type ReconcileBatchResult struct {
	Checked int                   `json:"checked"`
	Updated int                   `json:"updated"`
	Failed  int                   `json:"failed"`
	Items   []ReconcileItemResult `json:"items"`
}

// BeneficiaryResponse is the canonical add-beneficiary API response.
type BeneficiaryResponse struct {
	BeneficiaryRef string `json:"beneficiary_ref"`
	Status         string `json:"status"`
}
