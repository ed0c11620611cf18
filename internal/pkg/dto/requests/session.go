package requests

// CreateSession exchanges a wallet address for a bearer session token.
type CreateSession struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
}
