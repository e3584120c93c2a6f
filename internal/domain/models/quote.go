package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time price snapshot for a ticker, as returned by
// GET /quote.
//
// Fields follow the Finnhub payload keys:
//   - c:  current price
//   - d:  change
//   - dp: percent change
//   - h:  high of the day
//   - l:  low of the day
//   - o:  open of the day
//   - pc: previous close
//   - t:  unix timestamp (seconds)
type Quote struct {
	Current       decimal.Decimal `json:"c"`
	Change        decimal.Decimal `json:"d"`
	PercentChange decimal.Decimal `json:"dp"`
	High          decimal.Decimal `json:"h"`
	Low           decimal.Decimal `json:"l"`
	Open          decimal.Decimal `json:"o"`
	PreviousClose decimal.Decimal `json:"pc"`
	Timestamp     int64           `json:"t"`
	Error         string          `json:"error,omitempty"`
}

// Time returns the quote timestamp in UTC.
func (q Quote) Time() time.Time {
	return time.Unix(q.Timestamp, 0).UTC()
}
