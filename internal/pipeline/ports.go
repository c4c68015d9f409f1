// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"

	"github.com/ik5/swarantara/audio"
)

// Recorder opens a capture device. Start acquires the device; the returned
// Recording owns it until Stop.
type Recorder interface {
	// Start fails with ErrMicrophoneUnavailable when a capture device
	// cannot be opened.
	Start(ctx context.Context) (Recording, error)
}

// Recording is an active capture. Stop releases the device and returns what
// was captured, even when it also returns an error.
type Recording interface {
	Stop() (*audio.Buffer, error)
}

// SpeechToText transcribes a WAV container. languageTag is a regional tag
// such as "hi-IN".
type SpeechToText interface {
	Transcribe(ctx context.Context, wav []byte, languageTag string) (string, error)
}

// Translator translates text. source is a regional tag, target a bare
// language code.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// TextToSpeech synthesizes text in the given language code and returns a
// playable audio file.
type TextToSpeech interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}
