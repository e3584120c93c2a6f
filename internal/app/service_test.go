package app

import (
	"context"
	"time"

	"github.com/guttosm/tickr/internal/domain/models"
)

// stubMarketData records calls and returns canned results.
type stubMarketData struct {
	quote     *models.Quote
	series    *models.CandleSeries
	listing   string
	err       error
	calls     []string
	kind      models.Kind
	from, to  time.Time
	exchange  string
	gotAPIKey string
}

func (s *stubMarketData) FetchQuote(_ context.Context, ticker, apiKey string) (*models.Quote, error) {
	s.calls = append(s.calls, "quote:"+ticker)
	s.gotAPIKey = apiKey
	return s.quote, s.err
}

func (s *stubMarketData) FetchCandles(_ context.Context, kind models.Kind, ticker, _ string, from, to time.Time, apiKey string) (*models.CandleSeries, error) {
	s.calls = append(s.calls, "candles:"+ticker)
	s.kind, s.from, s.to, s.gotAPIKey = kind, from, to, apiKey
	return s.series, s.err
}

func (s *stubMarketData) ListExchanges(_ context.Context, apiKey string) (string, error) {
	s.calls = append(s.calls, "exchanges")
	s.gotAPIKey = apiKey
	return s.listing, s.err
}

func (s *stubMarketData) ListSymbols(_ context.Context, exchange, apiKey string) (string, error) {
	s.calls = append(s.calls, "symbols:"+exchange)
	s.exchange, s.gotAPIKey = exchange, apiKey
	return s.listing, s.err
}

var _ MarketData = (*stubMarketData)(nil)
