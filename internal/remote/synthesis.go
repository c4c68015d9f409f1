// SPDX-License-Identifier: EPL-2.0

package remote

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ik5/swarantara/internal/pipeline"
)

const DefaultSpeaker = "meera"

// SynthesisClient calls the text-to-speech endpoint.
type SynthesisClient struct {
	*client
	speaker string
}

func NewSynthesisClient(cfg Config, speaker string, opts ...Option) (*SynthesisClient, error) {
	c, err := newClient("text-to-speech", cfg, opts)
	if err != nil {
		return nil, err
	}
	if speaker == "" {
		speaker = DefaultSpeaker
	}
	return &SynthesisClient{client: c, speaker: speaker}, nil
}

type synthesisRequest struct {
	Inputs             []string `json:"inputs"`
	TargetLanguageCode string   `json:"target_language_code"`
	Speaker            string   `json:"speaker,omitempty"`
}

type synthesisResponse struct {
	Audios []string `json:"audios"`
}

// Synthesize returns the first audio file of the answer, usually a WAV.
// An answer without audio yields nil and no error.
func (c *SynthesisClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	var out synthesisResponse

	err := c.post(ctx, "/text-to-speech", jsonBody(synthesisRequest{
		Inputs:             []string{text},
		TargetLanguageCode: language,
		Speaker:            c.speaker,
	}), &out)
	if err != nil {
		return nil, err
	}

	if len(out.Audios) == 0 {
		return nil, nil
	}

	audio, err := base64.StdEncoding.DecodeString(out.Audios[0])
	if err != nil {
		return nil, fmt.Errorf("%w: audio is not base64: %w", pipeline.ErrUnexpectedFormat, err)
	}

	return audio, nil
}
