package app

import (
	"context"
	"time"

	"github.com/guttosm/tickr/internal/domain/models"
	"github.com/guttosm/tickr/internal/finnhub"
)

// MarketData is the slice of the Finnhub API the dispatcher needs.
// This decouples mode handling from HTTP so tests can stub it.
type MarketData interface {
	FetchQuote(ctx context.Context, ticker, apiKey string) (*models.Quote, error)
	FetchCandles(ctx context.Context, kind models.Kind, ticker, resolution string, from, to time.Time, apiKey string) (*models.CandleSeries, error)
	ListExchanges(ctx context.Context, apiKey string) (string, error)
	ListSymbols(ctx context.Context, exchange, apiKey string) (string, error)
}

var _ MarketData = (*finnhub.Client)(nil)
