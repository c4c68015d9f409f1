// SPDX-License-Identifier: EPL-2.0

package swarantara

import (
	"fmt"

	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/formats/wav"
)

// CaptureChannel is the only channel that reaches the encoder.
const CaptureChannel = 0

// Prepare reduces src to CaptureChannel and, when targetRate is positive and
// differs from the source rate, resamples it. The returned source owns src.
func Prepare(src audio.Source, targetRate int) (audio.Source, error) {
	mono, err := audio.NewChannelPicker(src, CaptureChannel)
	if err != nil {
		return nil, err
	}

	if targetRate <= 0 || targetRate == mono.SampleRate() {
		return mono, nil
	}

	rs, err := audio.NewResampler(mono, targetRate)
	if err != nil {
		return nil, err
	}

	return rs, nil
}

// CollectSource drains src through Prepare into a mono Buffer and closes it.
func CollectSource(src audio.Source, targetRate int) (*audio.Buffer, error) {
	prepared, err := Prepare(src, targetRate)
	if err != nil {
		return nil, err
	}
	defer prepared.Close()

	buf, err := audio.ReadBuffer(prepared)
	if err != nil {
		return nil, fmt.Errorf("collecting capture: %w", err)
	}

	return buf, nil
}

// EncodeSource drains src, keeping channel 0 at targetRate, and returns the
// canonical WAV container. targetRate <= 0 keeps the source rate.
func EncodeSource(src audio.Source, targetRate int, opts ...wav.Option) ([]byte, error) {
	buf, err := CollectSource(src, targetRate)
	if err != nil {
		return nil, err
	}

	out, err := wav.Encode(buf, opts...)
	if err != nil {
		return nil, fmt.Errorf("encoding capture: %w", err)
	}

	return out, nil
}
