// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/ik5/swarantara/utils"
)

// Buffer is fully decoded audio held in memory, one slice per channel.
// Every channel holds the same number of frames.
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for i := range data {
		data[i] = make([]float32, frames)
	}

	return &Buffer{SampleRate: sampleRate, Data: data}
}

func (b *Buffer) NumChannels() int { return len(b.Data) }

// NumFrames is the number of samples per channel.
func (b *Buffer) NumFrames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Channel returns the samples of channel i. It panics when i is out of range.
func (b *Buffer) Channel(i int) []float32 { return b.Data[i] }

func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.NumFrames()) * time.Second / time.Duration(b.SampleRate)
}

// Validate reports ErrInvalidAudioBuffer when b cannot be encoded.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidAudioBuffer)
	}
	if len(b.Data) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidAudioBuffer)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidAudioBuffer, b.SampleRate)
	}

	frames := len(b.Data[0])
	for i, ch := range b.Data[1:] {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidAudioBuffer, i+1, len(ch), frames)
		}
	}

	return nil
}

// PCM16LE interleaves all channels into signed 16-bit little-endian bytes.
func (b *Buffer) PCM16LE(r utils.Rounding) []byte {
	channels := b.NumChannels()
	frames := b.NumFrames()
	out := make([]byte, frames*channels*2)

	off := 0
	for f := range frames {
		for c := range channels {
			binary.LittleEndian.PutUint16(out[off:], uint16(utils.QuantizeInt16(b.Data[c][f], r)))
			off += 2
		}
	}

	return out
}

// ReadBuffer drains src into a Buffer, de-interleaving its channels.
// A trailing partial frame is dropped. src is not closed.
func ReadBuffer(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrInvalidAudioBuffer, channels)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	buf := &Buffer{
		SampleRate: src.SampleRate(),
		Data:       make([][]float32, channels),
	}
	tmp := make([]float32, size)

	next := 0 // channel that receives the next interleaved value
	empty := 0
	for {
		n, err := src.ReadSamples(tmp)
		if n == 0 && err == nil {
			empty++
			if empty >= maxEmptyReads {
				break
			}
			continue
		}
		empty = 0

		for _, v := range tmp[:n] {
			buf.Data[next] = append(buf.Data[next], v)
			next++
			if next == channels {
				next = 0
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	frames := len(buf.Data[channels-1])
	for c := range buf.Data {
		if buf.Data[c] == nil {
			buf.Data[c] = []float32{}
		}
		buf.Data[c] = buf.Data[c][:frames]
	}

	return buf, nil
}

// Source streams the buffer as interleaved samples.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.NumChannels() }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.NumChannels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	total := s.buf.NumFrames()
	if s.pos >= total {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, total-s.pos)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.Data[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= total {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
