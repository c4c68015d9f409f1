// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/swarantara/utils"
)

// maxEmptyReads bounds how many (0, nil) reads are tolerated before the
// source is treated as exhausted.
const maxEmptyReads = 64

// Resampler converts src to another sample rate with Catmull-Rom
// interpolation. Channel count is preserved. When downsampling, a one-pole
// low-pass is applied to incoming frames to tame aliasing.
type Resampler struct {
	src      Source
	srcRate  int64
	rate     int64
	channels int

	// win[1] and win[2] bracket the current output position; real marks
	// slots holding frames that came from src rather than edge padding.
	win  [4][]float32
	real [4]bool

	// base is the source frame index held in win[1]; emitted counts output
	// frames. Positions are kept as integers so lengths are exact.
	base    int64
	emitted int64

	primed  bool
	drained bool

	in    []float32
	inPos int
	inLen int

	smooth bool
	alpha  float32
	state  []float32
}

// NewResampler resamples src to rate Hz.
func NewResampler(src Source, rate int) (*Resampler, error) {
	if rate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidSampleRate, src.SampleRate(), rate)
	}

	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: source reports %d channels", ErrInvalidAudioBuffer, channels)
	}

	chunk := 1024 * channels

	r := &Resampler{
		src:      src,
		srcRate:  int64(src.SampleRate()),
		rate:     int64(rate),
		channels: channels,
		in:       make([]float32, chunk),
		smooth:   src.SampleRate() > rate,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return int(r.rate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It returns false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.drained {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inLen = n - n%r.channels
		r.inPos = 0

		switch {
		case err == io.EOF:
			r.drained = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				r.drained = true
			}
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.smooth {
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

// advance shifts the window by one frame, padding with the last frame once
// the source runs dry.
func (r *Resampler) advance() error {
	last := r.win[0]
	copy(r.win[:], r.win[1:])
	copy(r.real[:], r.real[1:])
	r.win[3] = last

	ok, err := r.nextFrame(r.win[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.win[3], r.win[2])
	}
	r.real[3] = ok

	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.win[1])
	if err != nil {
		return err
	}
	r.primed = true
	if !ok {
		return nil
	}

	if r.smooth {
		// Start the filter from the first raw frame instead of silence.
		raw := r.in[r.inPos-r.channels : r.inPos]
		copy(r.win[1], raw)
		copy(r.state, raw)
	}

	copy(r.win[0], r.win[1])
	r.real[1] = true

	for i := 2; i < 4; i++ {
		ok, err := r.nextFrame(r.win[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.win[i], r.win[i-1])
		}
		r.real[i] = ok
	}

	return nil
}

// ReadSamples fills dst with interleaved frames at the target rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	var pts [4]float32
	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		num := r.emitted * r.srcRate
		target := num / r.rate
		for r.base < target {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
			r.base++
		}

		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		t := float32(num%r.rate) / float32(r.rate)
		for c := range r.channels {
			for i := range pts {
				pts[i] = r.win[i][c]
			}
			dst[written*r.channels+c] = utils.Catmull(pts, t)
		}

		written++
		r.emitted++
	}

	return written * r.channels, nil
}
