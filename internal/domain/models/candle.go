package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects which market a candle request targets.
type Kind string

const (
	KindStock  Kind = "stock"
	KindCrypto Kind = "crypto"
)

// Candle statuses reported in the "s" field.
const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
)

// Candle is a single OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// CandleSeries is the column-oriented OHLCV payload of the candle endpoints.
// All slices are parallel: index i of each one describes the same bar.
type CandleSeries struct {
	Open       []decimal.Decimal `json:"o"`
	High       []decimal.Decimal `json:"h"`
	Low        []decimal.Decimal `json:"l"`
	Close      []decimal.Decimal `json:"c"`
	Volume     []decimal.Decimal `json:"v"`
	Timestamps []int64           `json:"t"`
	Status     string            `json:"s"`
	Error      string            `json:"error,omitempty"`
}

// Len returns the number of bars in the series.
func (s *CandleSeries) Len() int { return len(s.Timestamps) }

// Validate rejects a series whose status is not "ok" or whose columns differ in length.
func (s *CandleSeries) Validate() error {
	if s.Status != StatusOK {
		return fmt.Errorf("candle status %q", s.Status)
	}
	n := len(s.Timestamps)
	columns := []struct {
		name string
		n    int
	}{
		{"o", len(s.Open)},
		{"h", len(s.High)},
		{"l", len(s.Low)},
		{"c", len(s.Close)},
		{"v", len(s.Volume)},
	}
	for _, col := range columns {
		if col.n != n {
			return fmt.Errorf("column %q has %d values, want %d", col.name, col.n, n)
		}
	}
	return nil
}

// Candles zips the columns into bars. Call Validate first.
func (s *CandleSeries) Candles() []Candle {
	out := make([]Candle, 0, s.Len())
	for i, ts := range s.Timestamps {
		out = append(out, Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   s.Open[i],
			High:   s.High[i],
			Low:    s.Low[i],
			Close:  s.Close[i],
			Volume: s.Volume[i],
		})
	}
	return out
}
