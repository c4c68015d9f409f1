//go:build !portaudio

// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/ik5/swarantara/internal/pipeline"
)

// Microphone is unavailable without PortAudio.
type Microphone struct{}

func NewMicrophone(int, time.Duration, *slog.Logger) *Microphone {
	return &Microphone{}
}

func (m *Microphone) Start(context.Context) (pipeline.Recording, error) {
	return nil, ErrMicrophoneUnsupported
}
