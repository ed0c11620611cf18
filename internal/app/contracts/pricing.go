package contracts

import (
	"context"
	"time"
)

// StablecoinRate is a point-in-time stablecoin INR quote used as the USD/INR
// proxy (peg drift is intentionally visible to callers).
type StablecoinRate struct {
	InrPerUsd string    `json:"inr_per_usd"`
	AsOf      time.Time `json:"as_of"`
}

// PricingService fetches the live rate. Implementations must distinguish an
// unreachable source from a zero or garbage rate; neither may yield a quote.
type PricingService interface {
	GetStablecoinInrRate(ctx context.Context) (*StablecoinRate, error)
}
