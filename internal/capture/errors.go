// SPDX-License-Identifier: EPL-2.0

package capture

import "errors"

var (
	ErrMicrophoneUnsupported = errors.New("microphone capture not available: rebuild with -tags portaudio")
	ErrAlreadyStopped        = errors.New("recording already stopped")
)
