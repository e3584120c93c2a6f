package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/golang-module/carbon"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// None is the value string options hold when they were not provided.
const None = "none"

// DefaultBaseURL is the Finnhub REST API root.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// ErrUsage is returned for unknown flags or malformed option values.
var ErrUsage = errors.New("invalid usage, run with -h/--help for instructions")

// Settings holds the options of a single invocation.
//
// It is built once by Parse and passed by value; nothing mutates it afterwards.
//
// Example ENV equivalent:
//
//	FINNHUB_API_KEY=c9abc...
//	FINNHUB_BASE_URL=https://finnhub.io/api/v1
type Settings struct {
	APIKey     string // Finnhub token (-k/--apikey or FINNHUB_API_KEY)
	Ticker     string // e.g. TSLA or BINANCE:BTCUSDT
	Exchange   string // crypto exchange used with --list
	Resolution string // candle resolution: 1, 5, 15, 30, 60, D, W, M
	InFile     string
	OutFile    string

	IsStock   bool
	IsQuote   bool
	IsList    bool
	IsVerbose bool
	IsHelp    bool

	From time.Time // explicit candle range start, zero when unset
	To   time.Time // explicit candle range end, zero when unset

	BaseURL string
}

// HasTicker reports whether a ticker was provided.
func (s Settings) HasTicker() bool { return isSet(s.Ticker) }

// HasExchange reports whether an exchange was provided.
func (s Settings) HasExchange() bool { return isSet(s.Exchange) }

// HasAPIKey reports whether an API key was provided.
func (s Settings) HasAPIKey() bool { return isSet(s.APIKey) }

// HasInFile reports whether an input file was provided.
func (s Settings) HasInFile() bool { return isSet(s.InFile) }

// HasOutFile reports whether an output file was provided.
func (s Settings) HasOutFile() bool { return isSet(s.OutFile) }

// HasResolution reports whether a candle resolution was provided.
func (s Settings) HasResolution() bool { return isSet(s.Resolution) }

// HasRange reports whether an explicit candle range was provided.
func (s Settings) HasRange() bool { return !s.From.IsZero() || !s.To.IsZero() }

func isSet(v string) bool { return v != "" && v != None }

// newFlagSet declares every option of the program.
func newFlagSet(program string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(program, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP("apikey", "k", None, "(required) specifies your api key")
	fs.StringP("ticker", "t", None, "(required unless using -i) specifies the ticker to be used (e.g. TSLA for stock | BINANCE:BTCUSDT for crypto)")
	fs.StringP("res", "r", None, "(required unless using -q) specifies the resolution for candles (1, 5, 15, 30, 60, D, W, M)")
	fs.StringP("infile", "i", None, "(required unless using -t) specifies an input file containing comma-separated tickers")
	fs.StringP("outfile", "o", None, "(optional) specifies an output file to save comma-separated outputs")
	fs.StringP("exchange", "e", None, "(optional - crypto) specifies the exchange from which to look up tickers/symbols from (use with -l/--list)")
	fs.String("from", "", "(optional - candles) start of the candle range (unix seconds or date/time)")
	fs.String("to", "", "(optional - candles) end of the candle range (unix seconds or date/time)")
	fs.BoolP("stock", "s", false, "specifies that the program must look up stock instead of crypto (default)")
	fs.BoolP("quote", "q", false, "specifies that the program must look up a quote instead of candles (default)")
	fs.BoolP("list", "l", false, "displays available crypto exchanges or ticker/symbols (see -e/--exchange)")
	fs.BoolP("verbose", "v", false, "displays more information on the terminal during outputs")
	fs.BoolP("help", "h", false, "displays this help menu")

	// -h is handled by dispatch, not by pflag; parse errors are returned, not printed.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	return fs
}

// Parse maps raw arguments (without the program name) into Settings.
//
// Responsibilities:
//   - Parses GNU-style short and long flags with pflag.
//   - Reads FINNHUB_API_KEY and FINNHUB_BASE_URL from .env and the environment.
//   - Converts --from/--to into UTC instants.
//
// Returns:
//   - Settings: the immutable options of this invocation.
//   - error: wraps ErrUsage for unknown flags, malformed values or stray arguments.
//
// Precedence (from lowest to highest):
//  1. Defaults ("none"/false).
//  2. Values from .env file (if present).
//  3. Environment variables (FINNHUB_API_KEY, FINNHUB_BASE_URL).
//  4. Flags.
//
// Cross-option validation (ticker vs. input file, list vs. fetch) is left to the caller.
func Parse(args []string) (Settings, error) {
	fs := newFlagSet("tickr")
	if err := fs.Parse(args); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if extra := fs.Args(); len(extra) > 0 {
		return Settings{}, fmt.Errorf("%w: unexpected arguments %q", ErrUsage, extra)
	}

	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err == nil {
		// .env keys keep their variable names; map them onto option keys.
		if key := v.GetString("finnhub_api_key"); key != "" {
			v.SetDefault("apikey", key)
		}
		if u := v.GetString("finnhub_base_url"); u != "" {
			v.SetDefault("base_url", u)
		}
	}

	// Only the key and host come from the environment; every other option is flag-only.
	_ = v.BindEnv("apikey", "FINNHUB_API_KEY")
	_ = v.BindEnv("base_url", "FINNHUB_BASE_URL")

	if err := v.BindPFlags(fs); err != nil {
		return Settings{}, fmt.Errorf("bind flags: %w", err)
	}

	s := Settings{
		APIKey:     orNone(v.GetString("apikey")),
		Ticker:     orNone(v.GetString("ticker")),
		Exchange:   orNone(v.GetString("exchange")),
		Resolution: orNone(v.GetString("res")),
		InFile:     orNone(v.GetString("infile")),
		OutFile:    orNone(v.GetString("outfile")),
		IsStock:    v.GetBool("stock"),
		IsQuote:    v.GetBool("quote"),
		IsList:     v.GetBool("list"),
		IsVerbose:  v.GetBool("verbose"),
		IsHelp:     v.GetBool("help"),
		BaseURL:    strings.TrimRight(v.GetString("base_url"), "/"),
	}

	var err error
	if s.From, err = parseInstant(v.GetString("from")); err != nil {
		return Settings{}, fmt.Errorf("%w: --from: %v", ErrUsage, err)
	}
	if s.To, err = parseInstant(v.GetString("to")); err != nil {
		return Settings{}, fmt.Errorf("%w: --to: %v", ErrUsage, err)
	}
	if !s.From.IsZero() && !s.To.IsZero() && !s.From.Before(s.To) {
		return Settings{}, fmt.Errorf("%w: --from must be before --to", ErrUsage)
	}

	return s, nil
}

// Usage returns the help menu.
func Usage(program string) string {
	fs := newFlagSet(program)
	return fmt.Sprintf("Usage: %s [options]\n\nOptions:\n%s", program, fs.FlagUsages())
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return None
	}
	return v
}

// parseInstant accepts unix seconds or anything carbon can parse ("2024-01-02",
// "2024-01-02 15:04:05", RFC3339). Empty input yields the zero time.
func parseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	c := carbon.Parse(raw, carbon.UTC)
	if c.Error != nil {
		return time.Time{}, c.Error
	}
	t := c.Carbon2Time()
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("cannot parse %q", raw)
	}
	return t.UTC(), nil
}
