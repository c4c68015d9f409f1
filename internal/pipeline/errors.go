// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidTransition     = errors.New("invalid state transition")
	ErrMicrophoneUnavailable = errors.New("microphone unavailable")
	ErrEmptyRecording        = errors.New("no audio recorded")
	ErrEmptyTranscript       = errors.New("empty transcript")
	ErrEmptyTranslation      = errors.New("empty translation")
	ErrEmptySpeech           = errors.New("empty synthesized audio")
	ErrUnknownLanguage       = errors.New("unknown language")
	ErrSameLanguage          = errors.New("source and target language are the same")

	// ErrUnexpectedFormat is wrapped by service clients when a response
	// cannot be understood.
	ErrUnexpectedFormat = errors.New("unexpected response format")
)

// apiErrorPrefix marks remote failures whose text is shown as is.
const apiErrorPrefix = "API error:"

const genericMessage = "An error occurred during the translation process. Please try again."

var userMessages = []struct {
	err error
	msg string
}{
	{ErrMicrophoneUnavailable, "Microphone unavailable. Check that an input device is connected and that this user may record from it."},
	{ErrEmptyRecording, "No audio recorded. Please try again and speak clearly."},
	{ErrEmptyTranscript, "No text was transcribed from the audio. Please try again and speak clearly."},
	{ErrEmptyTranslation, "Translation failed. Please try again later."},
	{ErrEmptySpeech, "Text-to-speech conversion failed. Please try again later."},
	{ErrUnexpectedFormat, "The translation service returned an unexpected format. Please try again or select a different language."},
}

// UserMessage turns a pipeline failure into the sentence shown to the
// person using the translator. It returns "" for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	text := err.Error()
	if i := strings.Index(text, apiErrorPrefix); i >= 0 {
		return text[i:]
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || text == "" {
		return genericMessage
	}

	return "Error: " + text
}
