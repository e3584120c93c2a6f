package app

import (
	"errors"
	"fmt"

	"github.com/guttosm/tickr/config"
)

// Mode is what a single invocation does.
type Mode int

const (
	ModeHelp Mode = iota
	ModeListSymbols
	ModeListExchanges
	ModeQuote
	ModeCandles
)

func (m Mode) String() string {
	switch m {
	case ModeHelp:
		return "help"
	case ModeListSymbols:
		return "list-symbols"
	case ModeListExchanges:
		return "list-exchanges"
	case ModeQuote:
		return "quote"
	case ModeCandles:
		return "candles"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Option combination errors.
var (
	ErrMissingAPIKey        = errors.New("please specify your API key using -k/--apikey (or FINNHUB_API_KEY); a free key is available at https://finnhub.io/register")
	ErrMissingTicker        = errors.New("please specify a ticker using -t/--ticker or an input file using -i/--infile")
	ErrTickerAndInFile      = errors.New("-t/--ticker and -i/--infile cannot be used together")
	ErrInputFileUnsupported = errors.New("reading tickers from an input file (-i/--infile) is not supported yet")
	ErrMissingResolution    = errors.New("please specify a candle resolution using -r/--res (1, 5, 15, 30, 60, D, W, M) or ask for a quote with -q/--quote")
)

// SelectMode picks the mode from the settings, in priority order:
//
//  1. help (even without an API key)
//  2. missing API key (fatal)
//  3. list symbols: --list, an exchange, crypto
//  4. list exchanges: --list, crypto
//  5. fetch: quote or candles, stock or crypto; needs exactly one of ticker/input file
func SelectMode(s config.Settings) (Mode, error) {
	if s.IsHelp {
		return ModeHelp, nil
	}
	if !s.HasAPIKey() {
		return 0, ErrMissingAPIKey
	}
	if s.IsList && !s.IsStock {
		if s.HasExchange() {
			return ModeListSymbols, nil
		}
		return ModeListExchanges, nil
	}

	switch {
	case !s.HasTicker() && !s.HasInFile():
		return 0, ErrMissingTicker
	case s.HasTicker() && s.HasInFile():
		return 0, ErrTickerAndInFile
	case s.HasInFile():
		return 0, ErrInputFileUnsupported
	}

	if s.IsQuote {
		return ModeQuote, nil
	}
	if !s.HasResolution() {
		return 0, ErrMissingResolution
	}
	return ModeCandles, nil
}
