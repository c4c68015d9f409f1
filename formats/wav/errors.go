// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrOnlyPCMSupported     = errors.New("only linear PCM supported")
	ErrUnsupportedBitDepth  = errors.New("unsupported bit depth")
	ErrDataTooLarge         = errors.New("audio data exceeds WAV size limit")
)
