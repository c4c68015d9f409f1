// SPDX-License-Identifier: EPL-2.0

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ik5/swarantara/internal/pipeline"
)

var (
	_ pipeline.SpeechToText = (*SpeechClient)(nil)
	_ pipeline.Translator   = (*TranslateClient)(nil)
	_ pipeline.TextToSpeech = (*SynthesisClient)(nil)
)

// maxErrorBody caps how much of an error response ends up in APIError.
const maxErrorBody = 4 << 10

// Config is shared by the three service clients.
type Config struct {
	BaseURL string
	APIKey  string
	// KeyHeader carries APIKey. Defaults to "api-subscription-key".
	KeyHeader string
	Timeout   time.Duration
	Retry     RetryConfig
}

type client struct {
	service    string
	baseURL    string
	apiKey     string
	keyHeader  string
	retry      RetryConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a service client.
type Option func(*client)

// WithHTTPClient replaces the default client built from Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) { c.httpClient = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *client) { c.logger = l }
}

func newClient(service string, cfg Config, opts []Option) (*client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w (%s)", ErrMissingBaseURL, service)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	keyHeader := cfg.KeyHeader
	if keyHeader == "" {
		keyHeader = "api-subscription-key"
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryConfig()
	}

	c := &client{
		service:    service,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		keyHeader:  keyHeader,
		retry:      retry,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("service", service)

	return c, nil
}

// post sends body to path with retries and decodes a JSON answer into out.
// body is rebuilt for every attempt.
func (c *client) post(ctx context.Context, path string, body func() (io.Reader, string, error), out any) error {
	attempt := 0

	return WithRetry(ctx, c.retry, func() error {
		attempt++

		rd, contentType, err := body()
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, rd)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set(c.keyHeader, c.apiKey)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("request failed", "path", path, "attempt", attempt, "error", err)
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		c.logger.Debug("response", "path", path, "status", resp.StatusCode,
			"attempt", attempt, "elapsed", time.Since(start))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return &APIError{
				Service:    c.service,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(msg)),
			}
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding %s response: %w", pipeline.ErrUnexpectedFormat, c.service, err)
		}

		return nil
	})
}

func jsonBody(v any) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
