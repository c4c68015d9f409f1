// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize     = errors.New("dst size must be multiple of channels")
	ErrInvalidAudioBuffer = errors.New("invalid audio buffer")
	ErrInvalidSampleRate  = errors.New("sample rate must be positive")
	ErrUnknownFormat      = errors.New("unknown audio format")
)
