// SPDX-License-Identifier: EPL-2.0

// Package gcp transcribes recordings with Google Cloud Speech-to-Text v2. It
// is an alternative to the default HTTP speech service and satisfies
// pipeline.SpeechToText.
package gcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/auth/credentials"
	speech "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/ik5/swarantara/internal/pipeline"
	"github.com/ik5/swarantara/internal/remote"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	speechAPIEndpointPort = 443
	cloudPlatformScope    = "https://www.googleapis.com/auth/cloud-platform"
	serviceName           = "google-speech"
)

var ErrMissingProject = errors.New("gcp: project id is required")

var _ pipeline.SpeechToText = (*Transcriber)(nil)

type Config struct {
	ProjectID       string
	CredentialsJSON string
	Location        string
	Model           string
	Retry           remote.RetryConfig
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// Transcriber sends whole WAV containers to the synchronous Recognize call
// and lets the service detect the encoding from the header.
type Transcriber struct {
	recognizer string
	model      string
	retry      remote.RetryConfig
	recognize  recognizeFunc
	closeFn    func() error
	logger     *slog.Logger
}

// New dials the regional endpoint for cfg.Location. Credentials come from
// cfg.CredentialsJSON or, when empty, the application default chain.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Transcriber, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, ErrMissingProject
	}
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}

	detect := &credentials.DetectOptions{Scopes: []string{cloudPlatformScope}}
	if cfg.CredentialsJSON != "" {
		detect.CredentialsJSON = []byte(cfg.CredentialsJSON)
	}
	creds, err := credentials.DetectDefault(detect)
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}

	opts := []option.ClientOption{option.WithAuthCredentials(creds)}
	if location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", location, speechAPIEndpointPort)))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating speech client: %w", err)
	}

	t := newTranscriber(cfg, location, func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	}, logger)
	t.closeFn = client.Close

	return t, nil
}

func newTranscriber(cfg Config, location string, recognize recognizeFunc, logger *slog.Logger) *Transcriber {
	if logger == nil {
		logger = slog.Default()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "long"
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = remote.DefaultRetryConfig()
	}

	return &Transcriber{
		recognizer: fmt.Sprintf("projects/%s/locations/%s/recognizers/_", cfg.ProjectID, location),
		model:      model,
		retry:      retry,
		recognize:  recognize,
		closeFn:    func() error { return nil },
		logger:     logger.With("service", serviceName, "model", model),
	}
}

func (t *Transcriber) Close() error { return t.closeFn() }

func (t *Transcriber) request(wav []byte, languageTag string) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Recognizer: t.recognizer,
		Config: &speechpb.RecognitionConfig{
			Model:         t.model,
			LanguageCodes: []string{languageTag},
			DecodingConfig: &speechpb.RecognitionConfig_AutoDecodingConfig{
				AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
			},
			Features: &speechpb.RecognitionFeatures{EnableAutomaticPunctuation: true},
		},
		AudioSource: &speechpb.RecognizeRequest_Content{Content: wav},
	}
}

// Transcribe joins the top alternative of every result.
func (t *Transcriber) Transcribe(ctx context.Context, wav []byte, languageTag string) (string, error) {
	req := t.request(wav, languageTag)

	var resp *speechpb.RecognizeResponse
	err := remote.WithRetry(ctx, t.retry, func() error {
		var err error
		resp, err = t.recognize(ctx, req)
		if err != nil {
			t.logger.Warn("recognize failed", "language", languageTag, "error", err)
			return toAPIError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(resp.GetResults()))
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if text := strings.TrimSpace(alts[0].GetTranscript()); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}

var grpcToHTTP = map[codes.Code]int{
	codes.InvalidArgument:   http.StatusBadRequest,
	codes.Unauthenticated:   http.StatusUnauthorized,
	codes.PermissionDenied:  http.StatusForbidden,
	codes.NotFound:          http.StatusNotFound,
	codes.ResourceExhausted: http.StatusTooManyRequests,
	codes.Unavailable:       http.StatusServiceUnavailable,
	codes.DeadlineExceeded:  http.StatusGatewayTimeout,
	codes.Internal:          http.StatusInternalServerError,
}

// toAPIError maps gRPC statuses onto remote.APIError so retries and user
// messages treat both backends alike.
func toAPIError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	code, ok := grpcToHTTP[st.Code()]
	if !ok {
		code = http.StatusInternalServerError
	}

	return &remote.APIError{Service: serviceName, StatusCode: code, Body: st.Message()}
}
