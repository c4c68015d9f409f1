// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelPicker exposes a single channel of a multi-channel source as mono.
type ChannelPicker struct {
	src     Source
	channel int
	tmp     []float32
}

// NewChannelPicker selects channel (zero based) from src.
func NewChannelPicker(src Source, channel int) (*ChannelPicker, error) {
	if channel < 0 || channel >= src.Channels() {
		return nil, fmt.Errorf("%w: channel %d of %d", ErrInvalidAudioBuffer, channel, src.Channels())
	}

	return &ChannelPicker{
		src:     src,
		channel: channel,
		tmp:     make([]float32, 4096),
	}, nil
}

func (p *ChannelPicker) SampleRate() int { return p.src.SampleRate() }
func (p *ChannelPicker) Channels() int   { return 1 }
func (p *ChannelPicker) BufSize() int    { return p.src.BufSize() }

func (p *ChannelPicker) Close() error {
	if err := p.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (p *ChannelPicker) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := p.src.Channels()
	if channels == 1 {
		return p.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(p.tmp) < need {
		p.tmp = make([]float32, need)
	}
	p.tmp = p.tmp[:need]

	n, err := p.src.ReadSamples(p.tmp)
	frames := n / channels
	for f := range frames {
		dst[f] = p.tmp[f*channels+p.channel]
	}

	return frames, err
}
