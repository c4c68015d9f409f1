// SPDX-License-Identifier: EPL-2.0

package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ik5/swarantara/internal/pipeline"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	transient := errors.New("connection reset")

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{"first try", []error{nil}, 1, nil},
		{"recovers", []error{transient, transient, nil}, 3, nil},
		{"gives up", []error{transient, transient, transient, nil}, 3, transient},
		{"server error retried", []error{&APIError{StatusCode: 503}, nil}, 2, nil},
		{"client error final", []error{&APIError{StatusCode: 400}, nil}, 1, nil},
		{"bad format final", []error{fmt.Errorf("x: %w", pipeline.ErrUnexpectedFormat), nil}, 1, pipeline.ErrUnexpectedFormat},
		{"canceled final", []error{context.Canceled, nil}, 1, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			err := WithRetry(context.Background(), fastRetry(3), func() error {
				e := tt.errs[calls]
				calls++
				return e
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.name == "client error final" {
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
					t.Errorf("error = %v, want 400 APIError", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) && !(err == nil && tt.wantErr == nil) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithRetry_ContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour, Multiplier: 1}

	calls := 0
	err := WithRetry(ctx, cfg, func() error {
		calls++
		cancel()
		return errors.New("boom")
	})

	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Errorf("WithRetry() = %v after %d calls, want canceled after 1", err, calls)
	}
}

func TestWithRetry_ZeroAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	_ = WithRetry(context.Background(), RetryConfig{}, func() error {
		calls++
		return errors.New("boom")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := map[int]bool{
		http.StatusOK:                  false,
		http.StatusBadRequest:          false,
		http.StatusUnauthorized:        false,
		http.StatusRequestTimeout:      true,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
	}

	for code, want := range tests {
		if got := IsRetryableHTTPStatus(code); got != want {
			t.Errorf("IsRetryableHTTPStatus(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestAPIError_Message(t *testing.T) {
	t.Parallel()

	err := &APIError{Service: "translate", StatusCode: 429, Body: "rate limited"}
	if got := err.Error(); got != "API error: translate returned 429: rate limited" {
		t.Errorf("Error() = %q", got)
	}
	if got := pipeline.UserMessage(fmt.Errorf("translating: %w", err)); got != err.Error() {
		t.Errorf("UserMessage() = %q, want %q", got, err.Error())
	}

	bare := &APIError{Service: "text-to-speech", StatusCode: 500}
	if got := bare.Error(); got != "API error: text-to-speech returned 500" {
		t.Errorf("Error() = %q", got)
	}
}
