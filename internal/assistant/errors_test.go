package assistant

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestClassifyUpstream(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   ErrorKind
		wantStatus int
	}{
		{"api 429", &openai.APIError{HTTPStatusCode: 429}, ErrorRateLimited, http.StatusTooManyRequests},
		{"api 402", &openai.APIError{HTTPStatusCode: 402}, ErrorQuotaExhausted, http.StatusPaymentRequired},
		{"api 503", &openai.APIError{HTTPStatusCode: 503}, ErrorUpstream, http.StatusInternalServerError},
		{"request 429", &openai.RequestError{HTTPStatusCode: 429, Err: errors.New("too many")}, ErrorRateLimited, http.StatusTooManyRequests},
		{"wrapped", fmt.Errorf("calling model: %w", &openai.APIError{HTTPStatusCode: 402}), ErrorQuotaExhausted, http.StatusPaymentRequired},
		{"transport", errors.New("connection reset"), ErrorUpstream, http.StatusInternalServerError},
		{"already classified", newStatusError(429, errors.New("x")), ErrorRateLimited, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyUpstream(tt.err)
			if got.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, got.Kind)
			}
			if got.Kind.HTTPStatus() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, got.Kind.HTTPStatus())
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classified error lost its cause")
			}
		})
	}
}

func TestClassifyUpstreamNil(t *testing.T) {
	if ClassifyUpstream(nil) != nil {
		t.Error("expected nil for nil error")
	}
}
