package pricing

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"context"

	"spendin-service/internal/app/config"
	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	pricingServiceInstance contracts.PricingService
	oncePricingService     sync.Once
)

// pricingService quotes USDT's INR spot price as the USD/INR proxy. The quote
// asset is a stablecoin on purpose: peg drift should flow through to quotes
// rather than being hidden behind a direct USD/INR feed.
type pricingService struct {
	BaseUrl   string
	Timeout   time.Duration
	redisRepo contracts.RedisRepository
	limiter   *rate.Limiter
	Log       *zap.Logger
}

type spotPriceResponse struct {
	Tether struct {
		Inr          float64 `json:"inr"`
		LastUpdateAt int64   `json:"last_updated_at"`
	} `json:"tether"`
}

func NewPricingService(internalConfig *config.InternalConfig, redisRepo contracts.RedisRepository, logger *zap.Logger) contracts.PricingService {
	oncePricingService.Do(func() {
		pricingServiceInstance = &pricingService{
			BaseUrl:   internalConfig.Pricing.BaseUrl,
			Timeout:   time.Duration(internalConfig.Pricing.TimeoutInSeconds) * time.Second,
			redisRepo: redisRepo,
			limiter:   rate.NewLimiter(rate.Limit(internalConfig.Pricing.RequestsPerSecond), internalConfig.Pricing.Burst),
			Log:       logger,
		}
	})
	return pricingServiceInstance
}

func (s *pricingService) GetStablecoinInrRate(ctx context.Context) (*contracts.StablecoinRate, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if cached, err := s.readCache(ctx); err == nil && cached != nil {
		s.Log.Debug("pricingService.GetStablecoinInrRate cache hit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingExchangeRateKey, cached.InrPerUsd),
		)
		return cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, exceptions.ErrPriceSourceUnreachable(err)
	}

	url := fmt.Sprintf("%s/simple/price?ids=tether&vs_currencies=inr&include_last_updated_at=true", s.BaseUrl)
	reqCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, constvars.MethodGet, url, nil)
	if err != nil {
		return nil, exceptions.ErrBuildRequest(err)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		s.Log.Error("pricingService.GetStablecoinInrRate error calling price source",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPriceSourceUnreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrPriceSourceUnreachable(fmt.Errorf("price source returned status %d", resp.StatusCode))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrPriceSourceUnreachable(err)
	}

	var spot spotPriceResponse
	if err := json.Unmarshal(bodyBytes, &spot); err != nil {
		return nil, exceptions.ErrPriceSourceUnreachable(err)
	}

	// A zero or missing rate is never usable. Rejecting it here keeps a
	// stale-zero quote from ever reaching the conversion engine.
	if spot.Tether.Inr <= 0 {
		return nil, exceptions.ErrPriceSourceZeroRate(fmt.Errorf("rate %f", spot.Tether.Inr))
	}

	asOf := time.Now().UTC()
	if spot.Tether.LastUpdateAt > 0 {
		asOf = time.Unix(spot.Tether.LastUpdateAt, 0).UTC()
	}

	result := &contracts.StablecoinRate{
		InrPerUsd: fmt.Sprintf("%g", spot.Tether.Inr),
		AsOf:      asOf,
	}

	if err := s.redisRepo.Set(ctx, constvars.RateCacheKey, result, constvars.RateCacheTTLSeconds*time.Second); err != nil {
		s.Log.Warn("pricingService.GetStablecoinInrRate failed to cache rate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	s.Log.Info("pricingService.GetStablecoinInrRate fetched live rate",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingExchangeRateKey, result.InrPerUsd),
	)
	return result, nil
}

func (s *pricingService) readCache(ctx context.Context) (*contracts.StablecoinRate, error) {
	raw, err := s.redisRepo.Get(ctx, constvars.RateCacheKey)
	if err != nil || raw == "" {
		return nil, err
	}
	var cached contracts.StablecoinRate
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, err
	}
	if cached.InrPerUsd == "" {
		return nil, nil
	}
	return &cached, nil
}
