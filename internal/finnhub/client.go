package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/guttosm/tickr/internal/domain/models"
	"github.com/guttosm/tickr/internal/logger"
)

// Endpoint paths relative to the API root.
const (
	QuotePath        = "/quote"
	StockCandlePath  = "/stock/candle"
	CryptoCandlePath = "/crypto/candle"
	ExchangePath     = "/crypto/exchange"
	SymbolPath       = "/crypto/symbol"

	RequestIDHeader = "X-Request-ID"
)

// Client talks to the Finnhub REST API.
//
// Every call is a single GET; there are no retries and no timeout beyond what the
// underlying *http.Client enforces.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (useful for proxies and tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient constructs a Client against the Finnhub REST API.
//
// Parameters:
//   - baseURL (string): API root, e.g. "https://finnhub.io/api/v1"; a trailing slash is dropped.
//   - opts (...Option): optional overrides such as WithHTTPClient.
//
// Returns:
//   - *Client: a client ready for quote, candle and listing calls.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchQuote retrieves the latest quote for ticker.
func (c *Client) FetchQuote(ctx context.Context, ticker, apiKey string) (*models.Quote, error) {
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("token", apiKey)

	body, err := c.get(ctx, "quote", QuotePath, q)
	if err != nil {
		return nil, err
	}

	var quote models.Quote
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, &TransportError{Op: "quote", Err: fmt.Errorf("decode: %w", err)}
	}
	if quote.Error != "" {
		return nil, &RemoteError{Op: "quote", StatusCode: http.StatusOK, Message: quote.Error}
	}
	return &quote, nil
}

// FetchCandles retrieves OHLCV candles for ticker between from and to.
//
// Parameters:
//   - ctx (context.Context): cancels the HTTP call.
//   - kind (models.Kind): KindStock or KindCrypto, selects the endpoint.
//   - ticker, resolution (string): e.g. "BINANCE:BTCUSDT" and "60".
//   - from, to (time.Time): range bounds, sent as unix seconds.
//   - apiKey (string): Finnhub token.
//
// Returns:
//   - *models.CandleSeries: a validated series (status "ok", aligned columns).
//   - error: *RemoteError for error payloads, no_data or misaligned columns;
//     *HTTPError or *TransportError for transport-level failures.
func (c *Client) FetchCandles(ctx context.Context, kind models.Kind, ticker, resolution string, from, to time.Time, apiKey string) (*models.CandleSeries, error) {
	var path string
	switch kind {
	case models.KindStock:
		path = StockCandlePath
	case models.KindCrypto:
		path = CryptoCandlePath
	default:
		return nil, fmt.Errorf("unknown candle kind %q", kind)
	}
	op := string(kind) + " candles"

	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("resolution", resolution)
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))
	q.Set("token", apiKey)

	body, err := c.get(ctx, op, path, q)
	if err != nil {
		return nil, err
	}

	var series models.CandleSeries
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	if series.Error != "" {
		return nil, &RemoteError{Op: op, StatusCode: http.StatusOK, Message: series.Error}
	}
	if err := series.Validate(); err != nil {
		return nil, &RemoteError{Op: op, StatusCode: http.StatusOK, Message: err.Error()}
	}
	return &series, nil
}

// ListExchanges returns the supported crypto exchanges, one per line.
func (c *Client) ListExchanges(ctx context.Context, apiKey string) (string, error) {
	q := url.Values{}
	q.Set("token", apiKey)

	body, err := c.get(ctx, "exchanges", ExchangePath, q)
	if err != nil {
		return "", err
	}
	raw, err := compactListing("exchanges", body)
	if err != nil {
		return "", err
	}
	return stripListing(raw), nil
}

// ListSymbols returns the crypto symbols traded on exchange, one per line.
func (c *Client) ListSymbols(ctx context.Context, exchange, apiKey string) (string, error) {
	q := url.Values{}
	q.Set("exchange", exchange)
	q.Set("token", apiKey)

	body, err := c.get(ctx, "symbols", SymbolPath, q)
	if err != nil {
		return "", err
	}
	raw, err := compactListing("symbols", body)
	if err != nil {
		return "", err
	}
	// Objects carry description/displaySymbol/symbol; only the symbol is usable with -t.
	if symbols := gjson.Get(raw, "#.symbol"); symbols.IsArray() && len(symbols.Array()) > 0 {
		raw = symbols.Raw
	}
	return stripListing(raw), nil
}

// compactListing validates a listing body and detects API errors by substring.
func compactListing(op string, body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", &TransportError{Op: op, Err: errors.New("decode: invalid json")}
	}
	raw := gjson.GetBytes(body, "@ugly").Raw
	if strings.Contains(raw, "error") {
		msg := gjson.Get(raw, "error").String()
		if msg == "" {
			msg = raw
		}
		return "", &RemoteError{Op: op, StatusCode: http.StatusOK, Message: msg}
	}
	return raw, nil
}

var listingStripper = strings.NewReplacer("[", "", "]", "", `"`, "", "{", "", "}", "", ",", "\n\t")

// stripListing drops JSON punctuation and puts one entry per line.
func stripListing(raw string) string {
	return listingStripper.Replace(raw)
}

// get performs a GET against path and returns the body of a 200 response.
//
// Non-200 responses with an "error" JSON field become *RemoteError; other
// non-200 responses become *HTTPError. Network and read failures become
// *TransportError.
func (c *Client) get(ctx context.Context, op, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	rid := uuid.NewString()
	req.Header.Set(RequestIDHeader, rid)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.L().Debug().Str("request_id", rid).Str("op", op).Err(err).Msg("finnhub request failed")
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	logger.L().Debug().
		Str("request_id", rid).
		Str("method", http.MethodGet).
		Str("path", path).
		Str("query", redact(q)).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Int("bytes", len(body)).
		Msg("finnhub_request")

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(body, "error"); msg.Exists() && msg.String() != "" {
			return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Message: msg.String()}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// redact renders the query string with the token masked.
func redact(q url.Values) string {
	masked := url.Values{}
	for k, v := range q {
		if k == "token" {
			masked.Set(k, "***")
			continue
		}
		masked[k] = v
	}
	return masked.Encode()
}
