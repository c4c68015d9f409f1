// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic audio sources shared by tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by FailingSource.
var ErrInjected = errors.New("audiotest: injected read failure")

// Waveform yields the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// Source generates frames from a Waveform. It satisfies audio.Source
// without importing it.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform
	closed     bool
}

func NewSource(sampleRate, channels, frames int, wave Waveform) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(i, _ int) float32 {
		t := float64(i) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewInterleavedSource replays interleaved samples. A trailing partial frame
// is ignored.
func NewInterleavedSource(sampleRate, channels int, samples []float32) *Source {
	return NewSource(sampleRate, channels, len(samples)/channels, func(i, ch int) float32 {
		return samples[i*channels+ch]
	})
}

// NewChannelTagSource writes value ch+1 on every channel so tests can tell
// channels apart.
func NewChannelTagSource(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(_, ch int) float32 {
		return float32(ch+1) / 10
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

// Reset rewinds the source.
func (s *Source) Reset() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}

// FailingSource wraps a Source and fails with ErrInjected after After
// successful reads.
type FailingSource struct {
	*Source
	After int
	reads int
}

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	if f.reads >= f.After {
		return 0, ErrInjected
	}
	f.reads++
	n, err := f.Source.ReadSamples(dst)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}
