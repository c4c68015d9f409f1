// SPDX-License-Identifier: EPL-2.0

package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

const DefaultSpeechModel = "saarika:v2"

// SpeechClient calls the speech-to-text endpoint.
type SpeechClient struct {
	*client
	model string
}

func NewSpeechClient(cfg Config, model string, opts ...Option) (*SpeechClient, error) {
	c, err := newClient("speech-to-text", cfg, opts)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultSpeechModel
	}
	return &SpeechClient{client: c, model: model}, nil
}

type transcriptResponse struct {
	Transcript   string `json:"transcript"`
	LanguageCode string `json:"language_code"`
}

// Transcribe uploads a WAV container as multipart form data.
func (c *SpeechClient) Transcribe(ctx context.Context, wav []byte, languageTag string) (string, error) {
	var out transcriptResponse

	err := c.post(ctx, "/speech-to-text", func() (io.Reader, string, error) {
		body := &bytes.Buffer{}
		w := multipart.NewWriter(body)

		part, err := w.CreateFormFile("file", "recording.wav")
		if err != nil {
			return nil, "", fmt.Errorf("creating form file: %w", err)
		}
		if _, err := part.Write(wav); err != nil {
			return nil, "", fmt.Errorf("writing audio: %w", err)
		}
		if err := w.WriteField("language_code", languageTag); err != nil {
			return nil, "", fmt.Errorf("writing language field: %w", err)
		}
		if err := w.WriteField("model", c.model); err != nil {
			return nil, "", fmt.Errorf("writing model field: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("closing writer: %w", err)
		}

		return body, w.FormDataContentType(), nil
	}, &out)
	if err != nil {
		return "", err
	}

	return out.Transcript, nil
}
