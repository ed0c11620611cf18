package conversion

import (
	"fmt"
	"sync"
	"time"

	"context"

	"spendin-service/internal/app/contracts"
	"spendin-service/internal/pkg/constvars"
	"spendin-service/internal/pkg/dto/responses"
	"spendin-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	conversionUsecaseInstance contracts.ConversionUsecase
	onceConversionUsecase     sync.Once
)

type conversionUsecase struct {
	PricingService contracts.PricingService
	Log            *zap.Logger
}

func NewConversionUsecase(pricingService contracts.PricingService, logger *zap.Logger) contracts.ConversionUsecase {
	onceConversionUsecase.Do(func() {
		conversionUsecaseInstance = &conversionUsecase{
			PricingService: pricingService,
			Log:            logger,
		}
	})
	return conversionUsecaseInstance
}

// Convert quotes the USDC amount payable for inrAmount on chainID. The USDC
// leg assumes the 1 USDC = 1 USD peg; the INR leg uses the stablecoin spot
// rate from the pricing collaborator. Every monetary output is rounded to 6
// places, half away from zero, so repeated quotes cannot drift.
func (uc *conversionUsecase) Convert(ctx context.Context, inrAmount string, chainID int) (*responses.ConversionQuote, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	inr, err := decimal.NewFromString(inrAmount)
	if err != nil {
		return nil, exceptions.ErrInvalidInrAmount(err)
	}
	if inr.LessThan(decimal.NewFromFloat(0.01)) {
		return nil, exceptions.ErrInvalidInrAmount(fmt.Errorf("amount %s below minimum", inrAmount))
	}

	rate, err := uc.PricingService.GetStablecoinInrRate(ctx)
	if err != nil {
		uc.Log.Error("conversionUsecase.Convert error fetching rate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	inrPerUsd, err := decimal.NewFromString(rate.InrPerUsd)
	if err != nil || !inrPerUsd.IsPositive() {
		return nil, exceptions.ErrPriceSourceZeroRate(fmt.Errorf("unusable rate %q", rate.InrPerUsd))
	}

	usdAmount := inr.DivRound(inrPerUsd, constvars.MoneyScale)
	usdcAmount := usdAmount
	exchangeRate := decimal.NewFromInt(1).DivRound(inrPerUsd, constvars.MoneyScale)
	networkFee := networkFeeFor(chainID)
	totalUsdc := usdcAmount.Add(networkFee).Round(constvars.MoneyScale)

	quote := &responses.ConversionQuote{
		InrAmount:       inr.Round(2).StringFixed(2),
		UsdAmount:       usdAmount.StringFixed(constvars.MoneyScale),
		UsdcAmount:      usdcAmount.StringFixed(constvars.MoneyScale),
		ExchangeRate:    exchangeRate.StringFixed(constvars.MoneyScale),
		NetworkFee:      networkFee.String(),
		TotalUsdcAmount: totalUsdc.StringFixed(constvars.MoneyScale),
		ChainID:         chainID,
		NetworkName:     networkNameFor(chainID),
		QuotedAt:        time.Now().UTC(),
		RateAsOf:        rate.AsOf,
	}

	uc.Log.Info("conversionUsecase.Convert quoted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInrAmountKey, quote.InrAmount),
		zap.String(constvars.LoggingUsdcAmountKey, quote.TotalUsdcAmount),
		zap.Int(constvars.LoggingChainIDKey, chainID),
	)
	return quote, nil
}

// networkFeeFor looks up the flat USDC fee for a chain. Unsupported chains
// get the default fee so the conversion path stays available.
func networkFeeFor(chainID int) decimal.Decimal {
	if fee, ok := constvars.ChainNetworkFees[chainID]; ok {
		return decimal.RequireFromString(fee)
	}
	return decimal.RequireFromString(constvars.DefaultNetworkFee)
}

func networkNameFor(chainID int) string {
	if name, ok := constvars.ChainNames[chainID]; ok {
		return name
	}
	return constvars.DefaultChainName
}
