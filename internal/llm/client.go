package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/akihabara-market/internal/common"
)

// Client sends a single user prompt to a chat-completion model and returns
// the text of the first choice.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for a provider client and the Assistant.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Referer     string
	Title       string
	Language    string
	Timeout     time.Duration
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	Temperature float64
	MaxRetries  int
	RateLimit   int
	MaxTokens   int
}

const defaultTimeout = 30 * time.Second

// ErrMissingAPIKey is returned by NewClient when no key is configured.
var ErrMissingAPIKey = fmt.Errorf("%w: API key", common.ErrMissingConfig)

// APIError is a non-2xx answer from a provider.
type APIError struct {
	Provider   string
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, msg)
}

// Temporary reports whether repeating the request could succeed. Client
// errors other than 429 will fail the same way again.
func (e *APIError) Temporary() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode < 400 || e.StatusCode >= 500
}

// Unwrap lets rate-limit answers match common.ErrRateLimit.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusTooManyRequests {
		return common.ErrRateLimit
	}
	return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// retryable classifies a provider error for common.WithRetry.
func retryable(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &common.RetryableError{Err: err, Retryable: apiErr.Temporary()}
	}
	if errors.Is(err, common.ErrEmptyCompletion) {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	if errors.Is(err, context.Canceled) {
		return &common.RetryableError{Err: err, Retryable: false}
	}
	return &common.RetryableError{Err: err, Retryable: true}
}
