package responses

type SessionResponse struct {
	Token         string `json:"token"`
	WalletAddress string `json:"wallet_address"`
	ExpiresInHour int    `json:"expires_in_hour"`
}
