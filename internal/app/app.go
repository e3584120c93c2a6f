package app

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-module/carbon"

	"github.com/guttosm/tickr/config"
	"github.com/guttosm/tickr/internal/domain/models"
	"github.com/guttosm/tickr/internal/logger"
	"github.com/guttosm/tickr/internal/output"
	"github.com/guttosm/tickr/internal/present"
)

// ProgramName is shown in the usage line.
const ProgramName = "tickr"

// App sequences a single invocation: mode selection, API call, presentation.
//
// Responsibilities:
//   - Picks the mode from Settings (see SelectMode).
//   - Calls MarketData for the ticker or listing.
//   - Writes terminal lines and CSV rows to the Sink.
type App struct {
	settings config.Settings
	md       MarketData
	sink     *output.Sink
	now      func() time.Time
}

// AppOption customizes an App.
type AppOption func(*App)

// WithClock overrides the clock used for the default candle window.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) { a.now = now }
}

// New builds an App. settings is copied; md and sink are used as-is.
func New(settings config.Settings, md MarketData, sink *output.Sink, opts ...AppOption) *App {
	a := &App{settings: settings, md: md, sink: sink, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the selected mode. Every failure is returned; nothing is retried.
func (a *App) Run(ctx context.Context) error {
	s := a.settings
	mode, err := SelectMode(s)
	if err != nil {
		return err
	}
	logger.L().Debug().Str("mode", mode.String()).Str("ticker", s.Ticker).Bool("stock", s.IsStock).Msg("dispatch")

	switch mode {
	case ModeHelp:
		return a.sink.Text(config.Usage(ProgramName))

	case ModeListSymbols:
		listing, err := a.md.ListSymbols(ctx, s.Exchange, s.APIKey)
		if err != nil {
			return fmt.Errorf("looking up symbols on %s: %w", s.Exchange, err)
		}
		return a.sink.Line(present.Listing(present.SymbolsBanner(s.Exchange), listing))

	case ModeListExchanges:
		listing, err := a.md.ListExchanges(ctx, s.APIKey)
		if err != nil {
			return fmt.Errorf("looking up exchanges, please check your API key: %w", err)
		}
		return a.sink.Line(present.Listing(present.ExchangesBanner, listing))

	case ModeQuote:
		return a.quote(ctx, s.Ticker)

	case ModeCandles:
		return a.candles(ctx, s.Ticker)
	}
	return fmt.Errorf("unhandled mode %s", mode)
}

func (a *App) quote(ctx context.Context, ticker string) error {
	q, err := a.md.FetchQuote(ctx, ticker, a.settings.APIKey)
	if err != nil {
		return fmt.Errorf("quote %s: %w", ticker, err)
	}

	line := present.QuoteCSV(ticker, *q)
	if a.settings.IsVerbose {
		line = present.QuoteVerbose(ticker, *q)
	}
	if err := a.sink.Line(line); err != nil {
		return err
	}
	return a.sink.Row(present.QuoteHeader, present.QuoteRow(ticker, *q))
}

func (a *App) candles(ctx context.Context, ticker string) error {
	kind := models.KindCrypto
	if a.settings.IsStock {
		kind = models.KindStock
	}
	from, to := a.window()
	logger.L().Debug().Str("ticker", ticker).Str("kind", string(kind)).Time("from", from).Time("to", to).Msg("candle window")

	series, err := a.md.FetchCandles(ctx, kind, ticker, a.settings.Resolution, from, to, a.settings.APIKey)
	if err != nil {
		return fmt.Errorf("candles %s: %w", ticker, err)
	}

	for _, line := range present.CandleLines(ticker, series, a.settings.IsVerbose) {
		if err := a.sink.Line(line); err != nil {
			return err
		}
	}
	for _, c := range series.Candles() {
		if err := a.sink.Row(present.CandleHeader, present.CandleRow(ticker, c)); err != nil {
			return err
		}
	}
	return nil
}

// window returns the explicit --from/--to range, filling a missing bound so the
// range spans 24 hours; with neither bound it is the trailing 24 hours.
func (a *App) window() (time.Time, time.Time) {
	from, to := a.settings.From, a.settings.To
	switch {
	case from.IsZero() && to.IsZero():
		return Window(a.now())
	case from.IsZero():
		from = carbon.CreateFromTimestamp(to.Unix(), carbon.UTC).SubDay().Carbon2Time()
	case to.IsZero():
		to = carbon.CreateFromTimestamp(from.Unix(), carbon.UTC).AddDay().Carbon2Time()
	}
	return from.UTC(), to.UTC()
}

// Window is the trailing 24-hour range ending at now, truncated to whole seconds.
func Window(now time.Time) (time.Time, time.Time) {
	end := carbon.CreateFromTimestamp(now.Unix(), carbon.UTC)
	return end.SubDay().Carbon2Time().UTC(), end.Carbon2Time().UTC()
}
