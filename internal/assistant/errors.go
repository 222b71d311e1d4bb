package assistant

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

type ErrorKind string

const (
	ErrorRateLimited    ErrorKind = "rate_limited"
	ErrorQuotaExhausted ErrorKind = "quota_exhausted"
	ErrorUpstream       ErrorKind = "upstream_error"
)

// HTTPStatus is the status returned to the browser for this kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case ErrorRateLimited:
		return http.StatusTooManyRequests
	case ErrorQuotaExhausted:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Message is the user-facing text for this kind.
func (k ErrorKind) Message() string {
	switch k {
	case ErrorRateLimited:
		return "Rate limited, please try again shortly."
	case ErrorQuotaExhausted:
		return "Service temporarily unavailable."
	default:
		return "AI service error"
	}
}

// UpstreamError is a failure talking to the model API. It is always fatal
// to the request.
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model API %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model API %s: %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusTooManyRequests:
		return ErrorRateLimited
	case http.StatusPaymentRequired:
		return ErrorQuotaExhausted
	default:
		return ErrorUpstream
	}
}

func newStatusError(status int, err error) *UpstreamError {
	return &UpstreamError{Kind: kindForStatus(status), StatusCode: status, Err: err}
}

// ClassifyUpstream maps any model-transport error to an UpstreamError.
func ClassifyUpstream(err error) *UpstreamError {
	if err == nil {
		return nil
	}

	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return newStatusError(apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return newStatusError(reqErr.HTTPStatusCode, err)
	}

	return &UpstreamError{Kind: ErrorUpstream, Err: err}
}
