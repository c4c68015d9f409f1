// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// chunkFrames is how many samples WriteWAV16 converts per Write call.
const chunkFrames = 8192

// WriteWAV16 streams a mono 16-bit PCM WAV at sampleRate to w.
// It writes the same header as Encode, then the samples in chunks.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedWavLayout, sampleRate)
	}
	if uint64(len(samples))*bytesPerSample > math.MaxUint32-(HeaderSize-8) {
		return fmt.Errorf("%w: %d samples", ErrDataTooLarge, len(samples))
	}

	header := make([]byte, HeaderSize)
	PutHeader(header, Header{
		SampleRate:  sampleRate,
		NumChannels: 1,
		BitDepth:    16,
		DataSize:    uint32(len(samples) * bytesPerSample),
	})

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkFrames)*bytesPerSample)
	for start := 0; start < len(samples); start += chunkFrames {
		chunk := samples[start:min(start+chunkFrames, len(samples))]
		out := buf[:len(chunk)*bytesPerSample]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*bytesPerSample:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}
