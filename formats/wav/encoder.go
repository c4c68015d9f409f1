// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/utils"
)

const bytesPerSample = 2

type encodeConfig struct {
	rounding utils.Rounding
}

// Option tunes Encode.
type Option func(*encodeConfig)

// WithRounding selects how scaled samples become integers. The default is
// utils.Truncate.
func WithRounding(r utils.Rounding) Option {
	return func(c *encodeConfig) { c.rounding = r }
}

// Encode serializes channel 0 of buf as a mono 16-bit PCM WAV container.
//
// The result is always HeaderSize + NumFrames()*2 bytes long. Other channels
// are ignored, so stereo input yields the left channel only. Samples are
// clamped to [-1, 1]; negative values scale by 32768 and the rest by 32767.
//
// Encode returns an error wrapping audio.ErrInvalidAudioBuffer when buf has no
// channels or no positive sample rate. It does not modify buf and is safe for
// concurrent use.
func Encode(buf *audio.Buffer, opts ...Option) ([]byte, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	cfg := encodeConfig{rounding: utils.Truncate}
	for _, opt := range opts {
		opt(&cfg)
	}

	samples := buf.Channel(0)
	if uint64(len(samples))*bytesPerSample > math.MaxUint32-(HeaderSize-8) {
		return nil, fmt.Errorf("%w: %d frames", ErrDataTooLarge, len(samples))
	}

	dataSize := len(samples) * bytesPerSample
	out := make([]byte, HeaderSize+dataSize)

	PutHeader(out, Header{
		SampleRate:  buf.SampleRate,
		NumChannels: 1,
		BitDepth:    16,
		DataSize:    uint32(dataSize),
	})

	pcm := out[HeaderSize:]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*bytesPerSample:], uint16(utils.QuantizeInt16(s, cfg.rounding)))
	}

	return out, nil
}
