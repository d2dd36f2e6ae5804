package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/metrics"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/rate"
)

// TransportError marks a failure to reach the venue or a venue-side outage
// (connection errors, timeouts, 5xx responses). Callers use it to decide
// whether an operation is safe to retry.
type TransportError struct {
	Venue string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", e.Venue, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err indicates a transport-level failure:
// either a TransportError produced by this package or a generic network
// error / timeout from the stack below.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// StatusError carries a non-retryable HTTP failure response from the venue.
type StatusError struct {
	Venue  string
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Venue, e.Status, string(e.Body))
}

// Backoff returns the retry sleep duration for the given attempt number.
func Backoff(attempt int) time.Duration {
	switch attempt {
	case 0:
		return 100 * time.Millisecond
	case 1:
		return 250 * time.Millisecond
	default:
		return 500 * time.Millisecond
	}
}

// Executor handles rate-limited, retrying HTTP execution with JSON decoding.
type Executor struct {
	logger       *zap.Logger
	rateMgr      *rate.Manager
	http         *http.Client
	retryMax     int
	venueTag     string
	errorHandler func(status int, body []byte) error
}

// New creates an Executor. errorHandler is called on 4xx failure responses to
// produce a venue-specific error. If nil, a StatusError is returned. retryMax
// counts retries beyond the first attempt; 0 means single-shot.
func New(
	logger *zap.Logger,
	rateMgr *rate.Manager,
	httpClient *http.Client,
	retryMax int,
	venueTag string,
	errorHandler func(status int, body []byte) error,
) *Executor {
	return &Executor{
		logger:       logger,
		rateMgr:      rateMgr,
		http:         httpClient,
		retryMax:     retryMax,
		venueTag:     venueTag,
		errorHandler: errorHandler,
	}
}

// PostJSON marshals payload, executes a POST with rate limiting and retries,
// and JSON-decodes the response into out. The request is rebuilt per attempt
// so retries never reuse a consumed body. rateLimitKey scopes the rate
// limiter per endpoint class.
func (e *Executor) PostJSON(ctx context.Context, url string, payload any, rateLimitKey string, out any) error {
	if e.rateMgr != nil {
		if err := e.rateMgr.Wait(ctx, rateLimitKey); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= e.retryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &TransportError{Venue: e.venueTag, Err: ctx.Err()}
			case <-time.After(Backoff(attempt - 1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		done, err := e.attempt(req, attempt, out)
		if done {
			return err
		}
		lastErr = err
	}

	return &TransportError{
		Venue: e.venueTag,
		Err:   fmt.Errorf("request failed after %d attempts: %w", e.retryMax+1, lastErr),
	}
}

// attempt performs one request. It reports done=true when the result is
// final (success or a non-retryable failure) and done=false when the caller
// should retry.
func (e *Executor) attempt(req *http.Request, attempt int, out any) (bool, error) {
	start := time.Now()
	resp, err := e.http.Do(req)
	if err != nil {
		metrics.IncVenueRequest(req.URL.Path, "transport_error")
		e.logger.Warn(e.venueTag+".http_failed",
			zap.String("url", req.URL.String()),
			zap.Error(err),
			zap.Int("attempt", attempt))
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	elapsed := time.Since(start)

	metrics.IncVenueRequest(req.URL.Path, strconv.Itoa(resp.StatusCode))
	metrics.ObserveDuration(metrics.VenueRequestDuration, start, req.URL.Path)

	if resp.StatusCode >= 500 {
		e.logger.Warn(e.venueTag+".server_error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.String()),
			zap.Duration("latency", elapsed))
		return false, fmt.Errorf("server error: %d", resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		if e.errorHandler != nil {
			return true, e.errorHandler(resp.StatusCode, body)
		}
		return true, &StatusError{Venue: e.venueTag, Status: resp.StatusCode, Body: body}
	}

	if out != nil && len(body) == 0 {
		// The caller expects a payload; an empty 200 is venue data loss,
		// not an empty result set.
		e.logger.Warn(e.venueTag+".empty_response",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode))
		return true, fmt.Errorf("decode failed: empty response body")
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			e.logger.Warn(e.venueTag+".decode_failed",
				zap.Error(err),
				zap.String("url", req.URL.String()),
				zap.String("body", string(body)))
			return true, fmt.Errorf("decode failed: %w", err)
		}
	}

	e.logger.Debug(e.venueTag+".http_success",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return true, nil
}
