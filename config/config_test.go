package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets the variables Parse reads so the developer's shell does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FINNHUB_API_KEY", "FINNHUB_BASE_URL"} {
		t.Setenv(k, "")
	}
}

// TestParse_Defaults verifies every option takes its documented default when absent.
func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for name, got := range map[string]string{
		"apikey": s.APIKey, "ticker": s.Ticker, "exchange": s.Exchange,
		"res": s.Resolution, "infile": s.InFile, "outfile": s.OutFile,
	} {
		if got != None {
			t.Fatalf("%s: want %q got %q", name, None, got)
		}
	}
	if s.IsStock || s.IsQuote || s.IsList || s.IsVerbose || s.IsHelp {
		t.Fatalf("flags must default to false: %+v", s)
	}
	if s.HasRange() {
		t.Fatalf("range must be unset: %v..%v", s.From, s.To)
	}
	if s.BaseURL != DefaultBaseURL {
		t.Fatalf("base url: want %q got %q", DefaultBaseURL, s.BaseURL)
	}
}

func TestParse_ShortAndLongFlags(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		name string
		args []string
	}{
		{name: "short", args: []string{"-k", "KEY", "-t", "TSLA", "-r", "D", "-i", "in.csv", "-o", "out.csv", "-e", "binance", "-s", "-q", "-l", "-v", "-h"}},
		{name: "long", args: []string{"--apikey=KEY", "--ticker", "TSLA", "--res", "D", "--infile", "in.csv", "--outfile", "out.csv", "--exchange", "binance", "--stock", "--quote", "--list", "--verbose", "--help"}},
		{name: "combined shorthands", args: []string{"-sqlvh", "-kKEY", "-tTSLA", "-rD", "-iin.csv", "-oout.csv", "-ebinance"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse(tc.args)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			want := Settings{
				APIKey: "KEY", Ticker: "TSLA", Exchange: "binance", Resolution: "D",
				InFile: "in.csv", OutFile: "out.csv",
				IsStock: true, IsQuote: true, IsList: true, IsVerbose: true, IsHelp: true,
				BaseURL: DefaultBaseURL,
			}
			if s != want {
				t.Fatalf("want %+v\ngot  %+v", want, s)
			}
		})
	}
}

func TestParse_UsageErrors(t *testing.T) {
	clearEnv(t)

	cases := [][]string{
		{"--unknown"},
		{"-x"},
		{"-k"},                      // missing value
		{"-q=maybe"},                // malformed bool
		{"-t", "TSLA", "stray"},     // positional arguments
		{"--from", "not-a-date"},    // malformed time
		{"--from", "200", "--to", "100"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := Parse(args); !errors.Is(err, ErrUsage) {
				t.Fatalf("expected ErrUsage, got %v", err)
			}
		})
	}
}

func TestParse_Range(t *testing.T) {
	clearEnv(t)

	s, err := Parse([]string{"--from", "1700000000", "--to", "2023-11-16"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !s.From.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("from: got %v", s.From)
	}
	if !s.To.Equal(time.Date(2023, 11, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to: got %v", s.To)
	}
	if !s.HasRange() {
		t.Fatalf("expected range to be set")
	}
}

func TestParse_EnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINNHUB_API_KEY", "from-env")
	t.Setenv("FINNHUB_BASE_URL", "http://localhost:9999/api/v1/")

	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.APIKey != "from-env" {
		t.Fatalf("api key: want from-env got %q", s.APIKey)
	}
	if s.BaseURL != "http://localhost:9999/api/v1" {
		t.Fatalf("base url: got %q", s.BaseURL)
	}

	// Flag beats env.
	s, err = Parse([]string{"-k", "from-flag"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.APIKey != "from-flag" {
		t.Fatalf("api key: want from-flag got %q", s.APIKey)
	}
}

// TestParse_IgnoresUndocumentedEnv verifies only FINNHUB_API_KEY and
// FINNHUB_BASE_URL are read from the environment.
func TestParse_IgnoresUndocumentedEnv(t *testing.T) {
	clearEnv(t)
	for k, v := range map[string]string{
		"FINNHUB_HELP":     "true",
		"FINNHUB_TICKER":   "AAPL",
		"FINNHUB_QUOTE":    "true",
		"FINNHUB_LIST":     "true",
		"FINNHUB_STOCK":    "true",
		"FINNHUB_EXCHANGE": "binance",
		"FINNHUB_RES":      "D",
		"FINNHUB_OUTFILE":  "out.csv",
		"FINNHUB_FROM":     "1700000000",
		"FINNHUB_APIKEY":   "prefixed",
	} {
		t.Setenv(k, v)
	}

	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := Settings{
		APIKey: None, Ticker: None, Exchange: None, Resolution: None,
		InFile: None, OutFile: None, BaseURL: DefaultBaseURL,
	}
	if s != want {
		t.Fatalf("environment leaked into settings\nwant %+v\ngot  %+v", want, s)
	}
}

func TestParse_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FINNHUB_API_KEY=dotenv-key\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.APIKey != "dotenv-key" {
		t.Fatalf("api key: want dotenv-key got %q", s.APIKey)
	}
}

func TestSettings_Has(t *testing.T) {
	s := Settings{Ticker: "TSLA", Exchange: None, APIKey: ""}
	if !s.HasTicker() || s.HasExchange() || s.HasAPIKey() {
		t.Fatalf("unexpected Has* results for %+v", s)
	}
}

func TestUsage(t *testing.T) {
	u := Usage("tickr")
	if !strings.HasPrefix(u, "Usage: tickr [options]") {
		t.Fatalf("unexpected usage header: %q", u)
	}
	for _, flag := range []string{"-k, --apikey", "-t, --ticker", "-r, --res", "-i, --infile", "-o, --outfile", "-e, --exchange", "-s, --stock", "-q, --quote", "-l, --list", "-v, --verbose", "-h, --help"} {
		if !strings.Contains(u, flag) {
			t.Fatalf("usage is missing %q", flag)
		}
	}
}
