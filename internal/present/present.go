// Package present turns decoded API values into terminal or CSV text.
//
// Every function here is pure: the same input always yields the same bytes.
package present

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tickr/internal/domain/models"
)

// CSV headers written once at the top of an output file.
var (
	QuoteHeader  = []string{"ticker", "current", "change", "percent_change", "high", "low", "open", "previous_close", "timestamp"}
	CandleHeader = []string{"ticker", "timestamp", "open", "high", "low", "close", "volume"}
)

const (
	ExchangesBanner = "Available Exchanges (for use with -e/--exchange):"
	timeLayout      = time.RFC3339
)

// QuoteVerbose renders a quote as a single human-readable line.
//
// Example:
//
//	TSLA: price 261.74 USD | change 1.5 (0.58%) | high 263 | low 258.1 | open 259 | prev close 260.24 | at 2023-11-14T22:13:20Z
func QuoteVerbose(ticker string, q models.Quote) string {
	return fmt.Sprintf(
		"%s: price %s USD | change %s (%s%%) | high %s | low %s | open %s | prev close %s | at %s",
		ticker,
		q.Current.String(),
		q.Change.String(),
		pct(q.PercentChange),
		q.High.String(),
		q.Low.String(),
		q.Open.String(),
		q.PreviousClose.String(),
		q.Time().Format(timeLayout),
	)
}

// QuoteRow returns the CSV fields of a quote, aligned with QuoteHeader.
// Values are written unrounded.
func QuoteRow(ticker string, q models.Quote) []string {
	return []string{
		ticker,
		q.Current.String(),
		q.Change.String(),
		q.PercentChange.String(),
		q.High.String(),
		q.Low.String(),
		q.Open.String(),
		q.PreviousClose.String(),
		strconv.FormatInt(q.Timestamp, 10),
	}
}

// QuoteCSV renders a quote as a comma-separated line.
func QuoteCSV(ticker string, q models.Quote) string {
	return strings.Join(QuoteRow(ticker, q), ",")
}

// CandleRow returns the CSV fields of one bar, aligned with CandleHeader.
func CandleRow(ticker string, c models.Candle) []string {
	return []string{
		ticker,
		strconv.FormatInt(c.Time.Unix(), 10),
		c.Open.String(),
		c.High.String(),
		c.Low.String(),
		c.Close.String(),
		c.Volume.String(),
	}
}

// CandleLines renders one line per bar.
//
// Verbose:
//
//	TSLA 2023-11-14T22:13:20Z close 261.74 (open 259 high 263 low 258.1 volume 1200)
//
// Otherwise the CandleRow fields joined by commas.
func CandleLines(ticker string, s *models.CandleSeries, verbose bool) []string {
	bars := s.Candles()
	lines := make([]string, 0, len(bars))
	for _, c := range bars {
		if verbose {
			lines = append(lines, fmt.Sprintf(
				"%s %s close %s (open %s high %s low %s volume %s)",
				ticker, c.Time.Format(timeLayout), c.Close, c.Open, c.High, c.Low, c.Volume,
			))
			continue
		}
		lines = append(lines, strings.Join(CandleRow(ticker, c), ","))
	}
	return lines
}

// SymbolsBanner heads a symbol listing for exchange.
func SymbolsBanner(exchange string) string {
	return fmt.Sprintf("Available Symbols on %s (for use with -t/--ticker):", exchange)
}

// Listing renders a banner followed by the tab-indented entries.
func Listing(banner, entries string) string {
	return banner + "\n\t" + entries
}

// pct rounds a percent change to two decimals for display.
func pct(v decimal.Decimal) string {
	return v.Round(2).String()
}
