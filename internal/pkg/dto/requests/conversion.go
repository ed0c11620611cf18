package requests

type CreateQuote struct {
	InrAmount string `json:"inr_amount" validate:"required,inr_amount"`
	ChainID   int    `json:"chain_id" validate:"required"`
}
