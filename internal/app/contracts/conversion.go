package contracts

import (
	"context"

	"spendin-service/internal/pkg/dto/responses"
)

type ConversionUsecase interface {
	Convert(ctx context.Context, inrAmount string, chainID int) (*responses.ConversionQuote, error)
}
