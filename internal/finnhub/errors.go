package finnhub

import "fmt"

// RemoteError is returned when the API answers but the payload signals a failure:
// a non-empty "error" field, a candle status other than "ok", or an error marker
// inside a listing.
type RemoteError struct {
	Op         string // e.g. "quote", "stock candles", "exchanges"
	StatusCode int    // HTTP status, 200 when the failure was only in the payload
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 && e.StatusCode != 200 {
		return fmt.Sprintf("finnhub %s failed (status %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("finnhub %s failed: %s", e.Op, e.Message)
}

// HTTPError represents a non-200 response whose body carried no error payload.
// It has no underlying cause; match it with errors.As.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server responded with a %d status code", e.StatusCode)
}

// TransportError wraps network failures and bodies that could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("finnhub %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
